package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/api"
	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common/security"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"
	"github.com/KostiukVM/BlogAPI/internal/platform/config"
	"github.com/KostiukVM/BlogAPI/internal/platform/database"
	"github.com/KostiukVM/BlogAPI/internal/platform/redisclient"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file (environment variables still win)")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	issuer := security.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.JWTExp())
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer database.Close(db)
	fmt.Printf("Database connected (%s).\n", cfg.DBDriver)

	// 4. Initialize Repositories
	userRepo := repository.NewSQLUserRepository(db)
	postRepo := repository.NewSQLPostRepository(db)
	commentRepo := repository.NewSQLCommentRepository(db)

	var tokenRepo repository.TokenRepository
	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		rdb, err := redisclient.Connect(cfg)
		if err != nil {
			log.Fatalf("Could not connect token store: %v", err)
		}
		defer redisclient.Close(rdb)
		tokenRepo = repository.NewRedisTokenRepository(rdb)
	default:
		tokenRepo = repository.NewSQLTokenRepository(db)
	}
	fmt.Printf("Token store: %s.\n", cfg.TokenStore)

	// 5. Initialize Services
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, tokenRepo, issuer),
		Posts:    service.NewPostService(postRepo, commentRepo, userRepo, db, cfg.EnforceOwnership),
		Comments: service.NewCommentService(commentRepo, postRepo, cfg.EnforceOwnership),
	}

	// 6. Initialize Router & HTTP Server
	router := api.NewRouter(services, issuer, cfg.RequestTimeout())

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
		return
	}

	log.Println("Server stopped gracefully.")
}
