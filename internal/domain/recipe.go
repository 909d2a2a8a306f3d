package domain

import "time"

const (
	MinStars = 1
	MaxStars = 5
)

// Recipe is a user-owned recipe. All recipes are publicly readable; only the
// owner may delete one.
type Recipe struct {
	ID           int64
	Title        string
	Description  *string
	Ingredients  string
	Instructions string
	UserID       int64
	CreatedAt    time.Time

	// UserRating holds the requesting user's own stars for this recipe, if any.
	// It is never populated with another user's rating.
	UserRating *int
}

// Rating is a single user's star rating of a recipe. A user has at most one
// rating per recipe.
type Rating struct {
	ID        int64
	UserID    int64
	RecipeID  int64
	Stars     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidStars reports whether stars is within the accepted 1..5 range.
func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}
