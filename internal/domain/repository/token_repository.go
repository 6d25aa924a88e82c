package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
)

// TokenRepository keeps the server-side records of issued bearer tokens.
// A token is live while its record exists and has not expired.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AccessToken) error
	Find(ctx context.Context, id string) (*model.AccessToken, error)
	Touch(ctx context.Context, id string, usedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type sqlTokenRepository struct {
	db *sql.DB
}

func NewSQLTokenRepository(db *sql.DB) TokenRepository {
	return &sqlTokenRepository{db: db}
}

func (r *sqlTokenRepository) Create(ctx context.Context, t *model.AccessToken) error {
	query := `INSERT INTO personal_access_tokens (id, user_id, name, created_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.UserID, t.Name, t.CreatedAt, t.ExpiresAt); err != nil {
		return fmt.Errorf("sqlTokenRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlTokenRepository) Find(ctx context.Context, id string) (*model.AccessToken, error) {
	query := `SELECT id, user_id, name, created_at, last_used_at, expires_at
	          FROM personal_access_tokens WHERE id = $1`
	t := &model.AccessToken{}
	var lastUsed sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &lastUsed, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("Token")
		}
		return nil, fmt.Errorf("sqlTokenRepository.Find: %w", err)
	}
	if lastUsed.Valid {
		t.LastUsedAt = &lastUsed.Time
	}
	if !t.ExpiresAt.After(time.Now()) {
		return nil, common.NotFound("Token")
	}
	return t, nil
}

func (r *sqlTokenRepository) Touch(ctx context.Context, id string, usedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE personal_access_tokens SET last_used_at = $1 WHERE id = $2`, usedAt, id)
	if err != nil {
		return fmt.Errorf("sqlTokenRepository.Touch: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("sqlTokenRepository.Touch: %w", err)
	}
	if !ok {
		return common.NotFound("Token")
	}
	return nil
}

func (r *sqlTokenRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM personal_access_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sqlTokenRepository.Delete: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("sqlTokenRepository.Delete: %w", err)
	}
	if !ok {
		return common.NotFound("Token")
	}
	return nil
}
