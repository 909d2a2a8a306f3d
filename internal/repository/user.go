package repository

import (
	"context"

	"recipe-share/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	// Create inserts the user and fills in ID and CreatedAt. It returns
	// ErrDuplicate when the email is already taken.
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
