package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garydamm/hackathon-manager/internal/common"
	"github.com/garydamm/hackathon-manager/internal/common/ratelimit"
	"github.com/garydamm/hackathon-manager/internal/common/security"
	"github.com/garydamm/hackathon-manager/internal/domain/model"
	"github.com/garydamm/hackathon-manager/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo    repository.UserRepository
	limiter     ratelimit.Limiter
	limitWindow time.Duration
}

func NewAuthService(userRepo repository.UserRepository, limiter ratelimit.Limiter, limitWindow time.Duration) *AuthService {
	return &AuthService{userRepo: userRepo, limiter: limiter, limitWindow: limitWindow}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	LoginField string `json:"login_field"` // Can be username or email
	Password   string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on duplicate username/email
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.LoginField == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	// Throttle per login identity so a burst against one account cannot
	// brute-force it.
	allowed, err := s.limiter.CheckAndRecord(ctx, "login:"+req.LoginField, s.limitWindow)
	if err != nil {
		return nil, fmt.Errorf("login rate limit check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("too many login attempts for %s: %w", req.LoginField, common.ErrRateLimited)
	}

	var user *model.User

	// Try finding by email first, then by username
	user, err = s.userRepo.FindByEmail(ctx, req.LoginField)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			user, err = s.userRepo.FindByUsername(ctx, req.LoginField)
		}
	}

	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}
