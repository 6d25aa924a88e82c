package seed

import (
	"context"
	"testing"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common/security"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"
	"github.com/KostiukVM/BlogAPI/internal/platform/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	seeder   *Seeder
	auth     *service.AuthService
	posts    *service.PostService
	comments *service.CommentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	users := repository.NewSQLUserRepository(db)
	postRepo := repository.NewSQLPostRepository(db)
	commentRepo := repository.NewSQLCommentRepository(db)
	tokens := repository.NewSQLTokenRepository(db)

	posts := service.NewPostService(postRepo, commentRepo, users, db, false)
	comments := service.NewCommentService(commentRepo, postRepo, false)
	return &fixture{
		seeder:   New(users, posts, comments),
		auth:     service.NewAuthService(users, tokens, security.NewTokenIssuer([]byte("secret"), time.Hour)),
		posts:    posts,
		comments: comments,
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 50, opts.Posts)
	assert.Equal(t, 5, opts.CommentsPerPost)
}

func TestRunCreatesRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.seeder.Run(ctx, Options{Posts: 4, CommentsPerPost: 3, Seed: 42})
	require.NoError(t, err)
	assert.Len(t, res.Emails, 4)
	assert.Equal(t, 4, res.Posts)
	assert.Equal(t, 12, res.Comments)

	posts, err := f.posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	for _, p := range posts {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Slug)
		require.NotNil(t, p.CommentsCount)
		assert.Equal(t, 3, *p.CommentsCount)
	}

	comments, err := f.comments.ListComments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, comments, 12)

	for _, email := range res.Emails {
		userPosts, err := f.posts.ListUserPosts(ctx, ownerOf(t, f, email))
		require.NoError(t, err)
		assert.Len(t, userPosts, 1, "one post per seeded author")
	}
}

// ownerOf signs in as a seeded account and returns its id.
func ownerOf(t *testing.T, f *fixture, email string) string {
	t.Helper()
	resp, err := f.auth.Login(context.Background(), service.LoginRequest{Email: email, Password: Password})
	require.NoError(t, err)
	return resp.User.ID
}

func TestRunRejectsNegativeCounts(t *testing.T) {
	f := newFixture(t)
	_, err := f.seeder.Run(context.Background(), Options{Posts: -1})
	assert.Error(t, err)
}

func TestEmailLocal(t *testing.T) {
	assert.Equal(t, "dangelo", emailLocal("D'Angelo"))
	assert.Equal(t, "maryann", emailLocal("Mary Ann"))
	assert.Equal(t, "user", emailLocal("Łó"))
}
