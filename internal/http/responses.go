package http

import (
	"time"

	"recipe-share/internal/domain"
	"recipe-share/internal/service"
)

type UserResponse struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type RecipeResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Ingredients  string  `json:"ingredients"`
	Instructions string  `json:"instructions"`
	UserID       int64   `json:"userId"`
	CreatedAt    string  `json:"createdAt"`
	UserRating   *int    `json:"userRating"`
}

type RatingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	RecipeID  int64  `json:"recipeId"`
	Stars     int    `json:"stars"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

func authToResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      userToResponse(result.User),
	}
}

func recipeToResponse(recipe domain.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:           recipe.ID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		UserID:       recipe.UserID,
		CreatedAt:    recipe.CreatedAt.UTC().Format(time.RFC3339),
		UserRating:   recipe.UserRating,
	}
}

func recipesToResponse(recipes []domain.Recipe) []RecipeResponse {
	resp := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		resp[i] = recipeToResponse(recipes[i])
	}
	return resp
}

func ratingToResponse(rating *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		UserID:    rating.UserID,
		RecipeID:  rating.RecipeID,
		Stars:     rating.Stars,
		CreatedAt: rating.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rating.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
