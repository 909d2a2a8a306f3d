package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"recipe-share/internal/domain"
	"recipe-share/internal/repository"
)

// CreateRecipeInput carries the caller-supplied recipe fields. The owner is
// never part of it.
type CreateRecipeInput struct {
	Title        string
	Description  *string
	Ingredients  string
	Instructions string
}

// RecipeService coordinates recipe and rating operations. A requester id of
// zero means an anonymous caller.
type RecipeService interface {
	CreateRecipe(ctx context.Context, ownerID int64, in CreateRecipeInput) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, requesterID int64, search string) ([]domain.Recipe, error)
	ListOwnedRecipes(ctx context.Context, ownerID int64) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, id, requesterID int64) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id, requesterID int64) error
	RateRecipe(ctx context.Context, requesterID, recipeID int64, stars int) (*domain.Rating, bool, error)
}

type recipeService struct {
	recipes repository.RecipeRepository
	ratings repository.RatingRepository
	logger  logrus.FieldLogger
}

func NewRecipeService(recipes repository.RecipeRepository, ratings repository.RatingRepository, logger logrus.FieldLogger) RecipeService {
	return &recipeService{
		recipes: recipes,
		ratings: ratings,
		logger:  logger,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, ownerID int64, in CreateRecipeInput) (*domain.Recipe, error) {
	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}

	recipe := &domain.Recipe{
		Title:        strings.TrimSpace(in.Title),
		Description:  trimOptional(in.Description),
		Ingredients:  strings.TrimSpace(in.Ingredients),
		Instructions: strings.TrimSpace(in.Instructions),
		UserID:       ownerID,
	}
	switch {
	case recipe.Title == "":
		return nil, invalidInput("title is required")
	case recipe.Ingredients == "":
		return nil, invalidInput("ingredients are required")
	case recipe.Instructions == "":
		return nil, invalidInput("instructions are required")
	}

	if _, err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"recipe_id": recipe.ID, "user_id": ownerID}).Info("recipe created")
	return recipe, nil
}

func (s *recipeService) ListRecipes(ctx context.Context, requesterID int64, search string) ([]domain.Recipe, error) {
	return s.recipes.List(ctx, repository.RecipeFilter{
		TitleContains: strings.TrimSpace(search),
		ViewerID:      requesterID,
	})
}

func (s *recipeService) ListOwnedRecipes(ctx context.Context, ownerID int64) ([]domain.Recipe, error) {
	if ownerID <= 0 {
		return nil, ErrUnauthenticated
	}
	return s.recipes.List(ctx, repository.RecipeFilter{
		OwnerID:  ownerID,
		ViewerID: ownerID,
	})
}

func (s *recipeService) GetRecipe(ctx context.Context, id, requesterID int64) (*domain.Recipe, error) {
	if requesterID <= 0 {
		return nil, ErrUnauthenticated
	}
	if id <= 0 {
		return nil, invalidInput("invalid recipe id")
	}

	recipe, err := s.recipes.Get(ctx, id, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id, requesterID int64) error {
	if requesterID <= 0 {
		return ErrUnauthenticated
	}
	if id <= 0 {
		return invalidInput("invalid recipe id")
	}

	logCtx := s.logger.WithFields(logrus.Fields{"recipe_id": id, "user_id": requesterID})
	err := s.recipes.DeleteOwned(ctx, id, requesterID)
	switch {
	case err == nil:
		logCtx.Info("recipe deleted")
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrRecipeNotFound
	case errors.Is(err, repository.ErrNotOwner):
		logCtx.Warn("delete rejected: not the owner")
		return forbidden("you can delete only your own recipes")
	default:
		return err
	}
}

func (s *recipeService) RateRecipe(ctx context.Context, requesterID, recipeID int64, stars int) (*domain.Rating, bool, error) {
	if requesterID <= 0 {
		return nil, false, ErrUnauthenticated
	}
	if recipeID <= 0 {
		return nil, false, invalidInput("invalid recipe id")
	}
	if !domain.ValidStars(stars) {
		return nil, false, invalidInput("stars must be between 1 and 5")
	}

	rating := &domain.Rating{
		UserID:   requesterID,
		RecipeID: recipeID,
		Stars:    stars,
	}
	created, err := s.ratings.Upsert(ctx, rating)
	if err != nil {
		if errors.Is(err, repository.ErrForeignKey) || errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrRecipeNotFound
		}
		return nil, false, err
	}
	return rating, created, nil
}
