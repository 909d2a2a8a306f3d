package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"recipe-share/internal/auth"
	"recipe-share/internal/domain"
	"recipe-share/internal/repository"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// UserService describes registration and login.
type UserService interface {
	Register(ctx context.Context, email, password string, name *string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, logger logrus.FieldLogger) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// dummyHash is compared against when the email is unknown so both login
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("recipe-share-unknown-user"), bcrypt.DefaultCost)
	return hash
})

func (s *userService) Register(ctx context.Context, email, password string, name *string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, invalidInput("email is required")
	}
	if password == "" {
		return nil, invalidInput("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, invalidInput("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         trimOptional(name),
	}

	// the unique index decides; no lookup beforehand
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.WithField("email", email).Warn("registration rejected: email already registered")
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", user.ID).Info("user registered")
	return result, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			s.logger.WithField("email", email).Warn("login failed")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("login failed")
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *userService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      sanitizeUser(user),
	}, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
