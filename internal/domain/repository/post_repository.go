package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	// List and ListByUser fill CommentsCount.
	List(ctx context.Context) ([]model.Post, error)
	ListByUser(ctx context.Context, userID string) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type sqlPostRepository struct {
	db *sql.DB
}

func NewSQLPostRepository(db *sql.DB) PostRepository {
	return &sqlPostRepository{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.content, p.user_id, p.created_at, p.updated_at`

const postCountColumn = `(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count`

func (r *sqlPostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `INSERT INTO posts (id, title, slug, content, user_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Slug, p.Content, p.UserID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return common.NotFound("User")
		}
		return fmt.Errorf("sqlPostRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`
	p := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("Post")
		}
		return nil, fmt.Errorf("sqlPostRepository.FindByID: %w", err)
	}
	return p, nil
}

func (r *sqlPostRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE id = $1`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("sqlPostRepository.Exists: %w", err)
	}
	return n > 0, nil
}

func (r *sqlPostRepository) List(ctx context.Context) ([]model.Post, error) {
	query := `SELECT ` + postColumns + `, ` + postCountColumn + `
	          FROM posts p ORDER BY p.created_at DESC, p.id`
	posts, err := r.queryWithCounts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlPostRepository.List: %w", err)
	}
	return posts, nil
}

func (r *sqlPostRepository) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	query := `SELECT ` + postColumns + `, ` + postCountColumn + `
	          FROM posts p WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id`
	posts, err := r.queryWithCounts(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlPostRepository.ListByUser: %w", err)
	}
	return posts, nil
}

func (r *sqlPostRepository) queryWithCounts(ctx context.Context, query string, args ...interface{}) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		var count int
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &count); err != nil {
			return nil, err
		}
		p.CommentsCount = &count
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *sqlPostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `UPDATE posts SET title = $1, slug = $2, content = $3, updated_at = $4
	          WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, p.Title, p.Slug, p.Content, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("sqlPostRepository.Update: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("sqlPostRepository.Update: %w", err)
	}
	if !ok {
		return common.NotFound("Post")
	}
	return nil
}

func (r *sqlPostRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := pick(r.db, tx).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sqlPostRepository.Delete: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("sqlPostRepository.Delete: %w", err)
	}
	if !ok {
		return common.NotFound("Post")
	}
	return nil
}
