package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"recipe-share/internal/domain"
	"recipe-share/internal/repository"
)

type ratingRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	RecipeID  int64     `db:"recipe_id"`
	Stars     int       `db:"stars"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r ratingRow) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        r.ID,
		UserID:    r.UserID,
		RecipeID:  r.RecipeID,
		Stars:     r.Stars,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

const selectRating = `
SELECT id, user_id, recipe_id, stars, created_at, updated_at
FROM ratings`

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) repository.RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert relies on the (user_id, recipe_id) unique constraint: the insert is
// skipped on conflict and the existing row is updated in the same transaction.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (bool, error) {
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	created := true
	var id int64
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
INSERT INTO ratings (user_id, recipe_id, stars, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, recipe_id) DO NOTHING
RETURNING id`),
		rating.UserID,
		rating.RecipeID,
		rating.Stars,
		now,
		now,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		created = false
		err = tx.QueryRowxContext(ctx, tx.Rebind(`
UPDATE ratings
SET stars = ?, updated_at = ?
WHERE user_id = ? AND recipe_id = ?
RETURNING id`),
			rating.Stars,
			now,
			rating.UserID,
			rating.RecipeID,
		).Scan(&id)
	}
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", mapError(err))
	}

	var row ratingRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(selectRating+`
WHERE id = ?`), id); err != nil {
		return false, fmt.Errorf("reload rating: %w", mapError(err))
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit rating: %w", err)
	}

	*rating = *row.toDomain()
	return created, nil
}
