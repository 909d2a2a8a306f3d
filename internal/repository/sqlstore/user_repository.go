package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"recipe-share/internal/domain"
	"recipe-share/internal/repository"
)

type userRow struct {
	ID           int64          `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Name         sql.NullString `db:"name"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	user := &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
	if r.Name.Valid {
		name := r.Name.String
		user.Name = &name
	}
	return user
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO users (email, password_hash, name, created_at)
VALUES (?, ?, ?, ?)
RETURNING id`),
		user.Email,
		user.PasswordHash,
		user.Name,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", mapError(err))
	}

	user.ID = id
	user.CreatedAt = now
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
SELECT id, email, password_hash, name, created_at
FROM users
WHERE email = ?`),
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", mapError(err))
	}
	return row.toDomain(), nil
}
