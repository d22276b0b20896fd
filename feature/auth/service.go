package auth

import (
	"context"
	"errors"
	"fmt"

	"disasterhub/core/token"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service errors surfaced to the handler as client errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role selected")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Service handles user authentication against the users table.
type Service struct {
	db     *gorm.DB
	tokens *token.Service
	logger *zap.Logger
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, tokens *token.Service, logger *zap.Logger) *Service {
	return &Service{db: db, tokens: tokens, logger: logger}
}

// Login checks the credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, username, password string) (string, string, error) {
	var user User
	err := s.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", ErrInvalidCredentials
	}
	if err != nil {
		return "", "", fmt.Errorf("look up user: %w", err)
	}

	tok, err := s.tokens.Generate(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return tok, user.Role, nil
}

// Register creates a new user with one of the valid roles and issues a
// token so the client is logged in immediately.
func (s *Service) Register(ctx context.Context, username, password, role string) (string, error) {
	if !roleIsValid(role) {
		return "", ErrInvalidRole
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return "", ErrUsernameTaken
	}

	user := User{Username: username, Password: password, Role: role}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Generate(user.ID, user.Username, user.Role)
}

func roleIsValid(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
