package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type PostService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	userRepo         repository.UserRepository
	db               *sql.DB // For transactions
	enforceOwnership bool
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	db *sql.DB,
	enforceOwnership bool,
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		userRepo:         userRepo,
		db:               db,
		enforceOwnership: enforceOwnership,
	}
}

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest fields are optional but may not be blank when present.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitnil,min=1,max=255"`
	Content *string `json:"content,omitempty" validate:"omitnil,min=1"`
}

func (s *PostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*model.PostWithComments, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.List(ctx, post.ID)
	if err != nil {
		return nil, common.Errorf("failed to load comments of post %s: %w", id, err)
	}
	count := len(comments)
	post.CommentsCount = &count
	return &model.PostWithComments{Post: *post, Comments: comments}, nil
}

// CreatePost stores a post owned by userID, the authenticated caller.
func (s *PostService) CreatePost(ctx context.Context, userID string, req CreatePostRequest) (*model.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	ts := now()
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Slug:      slug.Make(req.Title),
		Content:   req.Content,
		UserID:    userID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, common.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actorID, id string, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(s.enforceOwnership, actorID, post.UserID); err != nil {
		return nil, err
	}

	common.TrimPtr(req.Title)
	common.TrimPtr(req.Content)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	post.UpdatedAt = now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, common.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost removes the post and its comments in one transaction.
func (s *PostService) DeletePost(ctx context.Context, actorID, id string) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(s.enforceOwnership, actorID, post.UserID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.commentRepo.DeleteByPostID(ctx, tx, post.ID); err != nil {
		return common.Errorf("failed to delete comments of post: %w", err)
	}
	if err := s.postRepo.Delete(ctx, tx, post.ID); err != nil {
		return common.Errorf("failed to delete post: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return common.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListUserPosts returns the posts of userID, each with its comments.
func (s *PostService) ListUserPosts(ctx context.Context, userID string) ([]model.PostWithComments, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.Errorf("failed to list posts of user %s: %w", userID, err)
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	byPost, err := s.commentRepo.ListByPostIDs(ctx, ids)
	if err != nil {
		return nil, common.Errorf("failed to load comments: %w", err)
	}

	out := make([]model.PostWithComments, len(posts))
	for i, p := range posts {
		comments := byPost[p.ID]
		if comments == nil {
			comments = []model.Comment{}
		}
		out[i] = model.PostWithComments{Post: p, Comments: comments}
	}
	return out, nil
}
