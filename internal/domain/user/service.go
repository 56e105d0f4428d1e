// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/pkg/auth"
)

// Welcomer sends the post-registration e-mail
type Welcomer interface {
	SendWelcomeEmail(ctx context.Context, userEmail, userName string) error
}

// Service handles registration, login and logout
type Service struct {
	repo      Repository
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	denylist  auth.Denylist
	welcomer  Welcomer
	now       func() time.Time
}

// NewService creates a new user service
func NewService(repo Repository, passwords *auth.PasswordManager, tokens *auth.JWTManager, denylist auth.Denylist, welcomer Welcomer) *Service {
	return &Service{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		denylist:  denylist,
		welcomer:  welcomer,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	UserName string `json:"userName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User      *User     `json:"user"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates a customer account. Logging in is a separate step.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:    NormalizeEmail(req.Email),
		UserName: strings.TrimSpace(req.UserName),
		Password: hashed,
		Role:     auth.RoleUser,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.welcomer != nil {
		if err := s.welcomer.SendWelcomeEmail(ctx, u.Email, u.UserName); err != nil {
			logrus.WithError(err).WithField("user_id", u.ID).Warn("failed to send welcome email")
		}
	}

	logrus.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := s.passwords.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.UserName, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now()
	if err := s.repo.TouchLogin(ctx, u.ID, now); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Warn("failed to record login time")
	}

	return &AuthResponse{
		User:      u,
		Token:     token,
		ExpiresAt: now.Add(s.tokens.Expiry()),
	}, nil
}

// Logout revokes the token until it would have expired
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.denylist == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := auth.RemainingLifetime(claims, s.now())
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, ttl)
}

// Contact returns where to e-mail a user
func (s *Service) Contact(ctx context.Context, userID uint) (string, string, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.Email, u.UserName, nil
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, userID uint) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}
