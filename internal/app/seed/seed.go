// Package seed fills an empty database with demo users, posts and comments.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common/security"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Password is shared by every seeded account.
const Password = "password"

type Options struct {
	Posts           int
	CommentsPerPost int
	// Seed makes the generated text reproducible; 0 picks a random one.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{Posts: 50, CommentsPerPost: 5}
}

type Result struct {
	Emails   []string
	Posts    int
	Comments int
}

// Seeder creates one author per post, then the post, then its comments, which
// are spread over the authors created so far.
type Seeder struct {
	users    repository.UserRepository
	posts    *service.PostService
	comments *service.CommentService
}

func New(users repository.UserRepository, posts *service.PostService, comments *service.CommentService) *Seeder {
	return &Seeder{users: users, posts: posts, comments: comments}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Posts < 0 || opts.CommentsPerPost < 0 {
		return nil, fmt.Errorf("seed: negative counts %d/%d", opts.Posts, opts.CommentsPerPost)
	}
	faker := gofakeit.New(opts.Seed)

	// one hash for every account, bcrypt is slow on purpose
	hash, err := security.HashPassword(Password)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}

	res := &Result{}
	authors := make([]string, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		user, err := s.createUser(ctx, faker, hash, i)
		if err != nil {
			return nil, err
		}
		authors = append(authors, user.ID)
		res.Emails = append(res.Emails, user.Email)

		post, err := s.posts.CreatePost(ctx, user.ID, service.CreatePostRequest{
			Title:   strings.TrimSuffix(faker.Sentence(6), "."),
			Content: faker.Paragraph(1, 5, 12, " "),
		})
		if err != nil {
			return nil, fmt.Errorf("seed: post %d: %w", i+1, err)
		}
		res.Posts++

		for j := 0; j < opts.CommentsPerPost; j++ {
			_, err := s.comments.CreateComment(ctx, authors[j%len(authors)], service.CreateCommentRequest{
				Content: faker.Sentence(10),
				PostID:  post.ID,
			})
			if err != nil {
				return nil, fmt.Errorf("seed: comment %d of post %d: %w", j+1, i+1, err)
			}
			res.Comments++
		}
	}
	return res, nil
}

func (s *Seeder) createUser(ctx context.Context, faker *gofakeit.Faker, hash string, i int) (*model.User, error) {
	first := faker.FirstName()
	ts := time.Now().UTC().Truncate(time.Microsecond)
	user := &model.User{
		ID:             uuid.NewString(),
		Name:           first + " " + faker.LastName(),
		Email:          fmt.Sprintf("%s.%s@example.com", emailLocal(first), uuid.NewString()[:8]),
		HashedPassword: hash,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("seed: user %d: %w", i+1, err)
	}
	return user, nil
}

func emailLocal(name string) string {
	local := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return -1
	}, name)
	if local == "" {
		return "user"
	}
	return local
}
