package service

import (
	"context"
	"errors"
	"strings"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"

	"github.com/google/uuid"
)

const msgPostIDInvalid = "The selected post id is invalid."

type CommentService struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	enforceOwnership bool
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, enforceOwnership bool) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, enforceOwnership: enforceOwnership}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
	PostID  string `json:"post_id" validate:"required"`
}

type UpdateCommentRequest struct {
	Content *string `json:"content,omitempty" validate:"omitnil,min=1"`
}

// ListComments returns every comment, or only those of postID when set.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	comments, err := s.commentRepo.List(ctx, postID)
	if err != nil {
		return nil, common.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListPostComments is ListComments for a post that must exist.
func (s *CommentService) ListPostComments(ctx context.Context, postID string) ([]model.Comment, error) {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, common.Errorf("failed to check post: %w", err)
	}
	if !ok {
		return nil, common.NotFound("Post")
	}
	return s.ListComments(ctx, postID)
}

func (s *CommentService) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	return s.commentRepo.FindByID(ctx, id)
}

func (s *CommentService) CreateComment(ctx context.Context, userID string, req CreateCommentRequest) (*model.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	req.PostID = strings.TrimSpace(req.PostID)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	ok, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, common.Errorf("failed to check post: %w", err)
	}
	if !ok {
		return nil, common.FieldError("post_id", msgPostIDInvalid)
	}

	ts := now()
	comment := &model.Comment{
		ID:        uuid.NewString(),
		PostID:    req.PostID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// the post was deleted after the existence check
			return nil, common.FieldError("post_id", msgPostIDInvalid)
		}
		return nil, common.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID, id string, req UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(s.enforceOwnership, actorID, comment.UserID); err != nil {
		return nil, err
	}

	common.TrimPtr(req.Content)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}
	comment.UpdatedAt = now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, common.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, actorID, id string) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(s.enforceOwnership, actorID, comment.UserID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, comment.ID)
}
