package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/KostiukVM/BlogAPI/internal/app/seed"
	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"
	"github.com/KostiukVM/BlogAPI/internal/platform/config"
	"github.com/KostiukVM/BlogAPI/internal/platform/database"
)

func main() {
	defaults := seed.DefaultOptions()
	configPath := flag.String("config", "", "optional YAML config file (environment variables still win)")
	posts := flag.Int("posts", defaults.Posts, "number of posts, each with its own author")
	comments := flag.Int("comments", defaults.CommentsPerPost, "comments per post")
	randSeed := flag.Uint64("seed", 0, "random seed for generated text (0 = random)")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	// 2. Initialize Database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer database.Close(db)

	// 3. Initialize Repositories & Services
	userRepo := repository.NewSQLUserRepository(db)
	postRepo := repository.NewSQLPostRepository(db)
	commentRepo := repository.NewSQLCommentRepository(db)
	postService := service.NewPostService(postRepo, commentRepo, userRepo, db, false)
	commentService := service.NewCommentService(commentRepo, postRepo, false)

	// 4. Seed
	res, err := seed.New(userRepo, postService, commentService).Run(context.Background(), seed.Options{
		Posts:           *posts,
		CommentsPerPost: *comments,
		Seed:            *randSeed,
	})
	if err != nil {
		log.Printf("Seeding failed: %v", err)
		return
	}
	fmt.Printf("Seeded %d users, %d posts, %d comments (password %q).\n", len(res.Emails), res.Posts, res.Comments, seed.Password)
}
