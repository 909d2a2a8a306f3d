package repository

import (
	"context"

	"recipe-share/internal/domain"
)

// RecipeFilter narrows a recipe listing. Zero values mean "no restriction".
type RecipeFilter struct {
	// OwnerID restricts the listing to recipes owned by this user.
	OwnerID int64
	// TitleContains keeps recipes whose title contains the term, ignoring case.
	TitleContains string
	// ViewerID selects whose rating is attached as UserRating. Zero attaches none.
	ViewerID int64
}

// RecipeRepository exposes persistence operations for recipes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) (int64, error)
	// Get returns the recipe with viewerID's own rating attached.
	Get(ctx context.Context, id, viewerID int64) (*domain.Recipe, error)
	// List returns recipes newest first.
	List(ctx context.Context, filter RecipeFilter) ([]domain.Recipe, error)
	// DeleteOwned removes the recipe only if ownerID owns it. It returns
	// ErrNotFound for a missing recipe and ErrNotOwner otherwise.
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}

// RatingRepository manages per-user recipe ratings.
type RatingRepository interface {
	// Upsert stores the rating, overwriting the stars of an existing
	// (user, recipe) row. created reports whether a new row was inserted.
	// A missing recipe or user yields ErrForeignKey.
	Upsert(ctx context.Context, rating *domain.Rating) (created bool, err error)
}
