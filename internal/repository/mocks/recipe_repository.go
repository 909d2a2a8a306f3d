package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipe-share/internal/domain"
	"recipe-share/internal/repository"
)

// RecipeRepository is a testify mock of repository.RecipeRepository.
type RecipeRepository struct {
	mock.Mock
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)

func (m *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	args := m.Called(ctx, recipe)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RecipeRepository) Get(ctx context.Context, id, viewerID int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id, viewerID)
	recipe, _ := args.Get(0).(*domain.Recipe)
	return recipe, args.Error(1)
}

func (m *RecipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]domain.Recipe, error) {
	args := m.Called(ctx, filter)
	recipes, _ := args.Get(0).([]domain.Recipe)
	return recipes, args.Error(1)
}

func (m *RecipeRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// RatingRepository is a testify mock of repository.RatingRepository.
type RatingRepository struct {
	mock.Mock
}

var _ repository.RatingRepository = (*RatingRepository)(nil)

func (m *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (bool, error) {
	args := m.Called(ctx, rating)
	return args.Bool(0), args.Error(1)
}
