package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/auth"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	userDomain "github.com/David-19-dev/abdouperformence-sub001/internal/domain/user"
)

// LoginRequest is the request DTO for admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthService handles back-office authentication.
type AuthService struct {
	users      userDomain.Repository
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.Repository, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtManager: jwtManager, logger: logger}
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var domErr *domain.Error
		if errors.As(err, &domErr) && domErr.Kind == domain.KindNotFound {
			return nil, domain.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash(), req.Password) {
		return nil, domain.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.jwtManager.GenerateToken(u.ID(), u.Email(), string(u.Role()))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin login", zap.String("email", u.Email()))
	return &LoginResponse{Token: token, Name: u.Name(), Role: string(u.Role())}, nil
}

// EnsureAdmin creates the bootstrap admin account when no user exists for
// the given email. Used at startup so a fresh deployment is reachable.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	var domErr *domain.Error
	if !errors.As(err, &domErr) || domErr.Kind != domain.KindNotFound {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(name, email, hash, userDomain.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, u); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}

	s.logger.Info("bootstrap admin created", zap.String("email", u.Email()))
	return nil
}
