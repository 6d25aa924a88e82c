package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"

	TokenStoreSQL   = "sql"
	TokenStoreRedis = "redis"
)

type Config struct {
	APIPort            string `yaml:"api_port"`
	JWTSecret          string `yaml:"jwt_secret"`
	JWTExpirationHours int    `yaml:"jwt_expiration_hours"`

	DBDriver   string `yaml:"db_driver"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`
	DBConnStr  string `yaml:"db_dsn"`
	SQLitePath string `yaml:"sqlite_path"`

	TokenStore    string `yaml:"token_store"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// EnforceOwnership restricts post/comment update and delete to the author.
	EnforceOwnership      bool `yaml:"enforce_ownership"`
	RequestTimeoutSeconds int  `yaml:"request_timeout_seconds"`
}

func defaults() *Config {
	return &Config{
		APIPort:               "8080",
		JWTSecret:             "defaultsecret",
		JWTExpirationHours:    72,
		DBDriver:              DriverPostgres,
		DBHost:                "localhost",
		DBPort:                "5432",
		DBUser:                "user",
		DBPassword:            "password",
		DBName:                "blog_db",
		DBSslMode:             "disable",
		SQLitePath:            "data/blog.db",
		TokenStore:            TokenStoreSQL,
		RedisAddr:             "localhost:6379",
		RequestTimeoutSeconds: 60,
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and the environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := defaults()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.APIPort = getEnv("API_PORT", cfg.APIPort)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpirationHours = getEnvAsInt("JWT_EXPIRATION_HOURS", cfg.JWTExpirationHours)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBSslMode = getEnv("DB_SSLMODE", cfg.DBSslMode)
	cfg.DBConnStr = getEnv("DB_DSN", cfg.DBConnStr)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.TokenStore = getEnv("TOKEN_STORE", cfg.TokenStore)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvAsInt("REDIS_DB", cfg.RedisDB)
	cfg.EnforceOwnership = getEnvAsBool("ENFORCE_OWNERSHIP", cfg.EnforceOwnership)
	cfg.RequestTimeoutSeconds = getEnvAsInt("REQUEST_TIMEOUT_SECONDS", cfg.RequestTimeoutSeconds)

	if cfg.DBConnStr == "" && cfg.DBDriver == DriverPostgres {
		cfg.DBConnStr = "host=" + cfg.DBHost +
			" port=" + cfg.DBPort +
			" user=" + cfg.DBUser +
			" password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName +
			" sslmode=" + cfg.DBSslMode
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.TokenStore {
	case TokenStoreSQL, TokenStoreRedis:
	default:
		return fmt.Errorf("unsupported TOKEN_STORE %q", c.TokenStore)
	}
	if c.JWTExpirationHours <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be positive, got %d", c.JWTExpirationHours)
	}
	return nil
}

func (c *Config) JWTExp() time.Duration {
	return time.Duration(c.JWTExpirationHours) * time.Hour
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

const (
	defaultWriteTimeout = 10 * time.Second
	writeTimeoutMargin  = 5 * time.Second
)

// WriteTimeout is the http.Server write deadline. It outlasts RequestTimeout
// so the router's own timeout response still reaches the client.
func (c *Config) WriteTimeout() time.Duration {
	if rt := c.RequestTimeout(); rt > 0 {
		return rt + writeTimeoutMargin
	}
	return defaultWriteTimeout
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
