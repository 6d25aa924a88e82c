package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	// List returns all comments, or only those of postID when it is non-empty.
	List(ctx context.Context, postID string) ([]model.Comment, error)
	ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error
	DeleteByPostID(ctx context.Context, tx *sql.Tx, postID string) error
}

type sqlCommentRepository struct {
	db *sql.DB
}

func NewSQLCommentRepository(db *sql.DB) CommentRepository {
	return &sqlCommentRepository{db: db}
}

const commentColumns = `id, post_id, user_id, content, created_at, updated_at`

func (r *sqlCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (id, post_id, user_id, content, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.PostID, c.UserID, c.Content, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("comment references a missing post or user: %w", common.ErrConflict)
		}
		return fmt.Errorf("sqlCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	c := &model.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("Comment")
		}
		return nil, fmt.Errorf("sqlCommentRepository.FindByID: %w", err)
	}
	return c, nil
}

func (r *sqlCommentRepository) List(ctx context.Context, postID string) ([]model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at, id`
	var args []interface{}
	if postID != "" {
		query = `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at, id`
		args = append(args, postID)
	}
	comments, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlCommentRepository.List: %w", err)
	}
	return comments, nil
}

func (r *sqlCommentRepository) ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]model.Comment, error) {
	byPost := make(map[string][]model.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return byPost, nil
	}
	args := make([]interface{}, len(postIDs))
	for i, id := range postIDs {
		args[i] = id
	}
	query := `SELECT ` + commentColumns + ` FROM comments
	          WHERE post_id IN (` + placeholders(1, len(postIDs)) + `) ORDER BY created_at, id`
	comments, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlCommentRepository.ListByPostIDs: %w", err)
	}
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	return byPost, nil
}

func (r *sqlCommentRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *sqlCommentRepository) Update(ctx context.Context, c *model.Comment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`,
		c.Content, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("sqlCommentRepository.Update: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("sqlCommentRepository.Update: %w", err)
	}
	if !ok {
		return common.NotFound("Comment")
	}
	return nil
}

func (r *sqlCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sqlCommentRepository.Delete: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("sqlCommentRepository.Delete: %w", err)
	}
	if !ok {
		return common.NotFound("Comment")
	}
	return nil
}

func (r *sqlCommentRepository) DeleteByPostID(ctx context.Context, tx *sql.Tx, postID string) error {
	if _, err := pick(r.db, tx).ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("sqlCommentRepository.DeleteByPostID: %w", err)
	}
	return nil
}
