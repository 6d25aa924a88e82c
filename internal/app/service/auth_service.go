package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/common/security"
	"github.com/KostiukVM/BlogAPI/internal/domain/model"
	"github.com/KostiukVM/BlogAPI/internal/domain/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const msgEmailTaken = "A user with this email address already exists."

type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	issuer    *security.TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, issuer *security.TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokenRepo: tokenRepo, issuer: issuer}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID  string
	TokenID string
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, common.FieldError("email", msgEmailTaken)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ts := now()
	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// lost a race with a concurrent registration
			return nil, common.FieldError("email", msgEmailTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &RegisterResponse{Message: "User registered successfully"}, nil
}

// Login issues a new bearer token. A missing account and a wrong password both
// yield ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	issued, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	record := &model.AccessToken{
		ID:        issued.ID,
		UserID:    user.ID,
		Name:      model.AccessTokenName,
		CreatedAt: issued.IssuedAt,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	user.HashedPassword = ""
	return &AuthResponse{Token: issued.Token, User: user}, nil
}

// Authenticate resolves verified token claims to the caller. The token record
// must still exist and belong to the user named in the claims.
func (s *AuthService) Authenticate(ctx context.Context, claims jwt.MapClaims) (*Identity, error) {
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}
	tokenID, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}

	record, err := s.tokenRepo.Find(ctx, tokenID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if record.UserID != userID {
		return nil, common.ErrUnauthorized
	}

	if err := s.tokenRepo.Touch(ctx, tokenID, now()); err != nil {
		log.Printf("WARN: failed to record use of token %s: %v", tokenID, err)
	}
	return &Identity{UserID: userID, TokenID: tokenID}, nil
}

// Logout revokes exactly the token the caller presented.
func (s *AuthService) Logout(ctx context.Context, id *Identity) error {
	if id == nil {
		return common.ErrUnauthorized
	}
	if err := s.tokenRepo.Delete(ctx, id.TokenID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
