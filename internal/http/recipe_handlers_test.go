package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeTitles(recipes []RecipeResponse) []string {
	titles := make([]string, len(recipes))
	for i, r := range recipes {
		titles[i] = r.Title
	}
	return titles
}

func TestCreateRecipe(t *testing.T) {
	s := newTestServer(t)
	token, userID := s.register(t, "cook@example.com")

	w := s.do(t, http.MethodPost, "/recipes", gin.H{
		"title":        "Pancakes",
		"description":  "Sunday breakfast",
		"ingredients":  "flour, milk, eggs",
		"instructions": "whisk, rest, fry",
		"userId":       9999,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe RecipeResponse
	decode(t, w, &recipe)
	assert.Positive(t, recipe.ID)
	assert.Equal(t, userID, recipe.UserID, "owner comes from the token, not the body")
	assert.Equal(t, "Pancakes", recipe.Title)
	require.NotNil(t, recipe.Description)
	assert.Equal(t, "Sunday breakfast", *recipe.Description)
	assert.NotEmpty(t, recipe.CreatedAt)
	assert.Nil(t, recipe.UserRating)
}

func TestCreateRecipe_MissingFields(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "cook@example.com")

	w := s.do(t, http.MethodPost, "/recipes", gin.H{"title": "Only a title"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/recipes", gin.H{"title": "x", "ingredients": "y", "instructions": "z"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetRecipe(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.register(t, "owner@example.com")
	viewer, _ := s.register(t, "viewer@example.com")
	recipe := s.createRecipe(t, owner, "Bread")

	w := s.do(t, http.MethodGet, fmt.Sprintf("/recipes/%d", recipe.ID), nil, viewer)
	require.Equal(t, http.StatusOK, w.Code)
	var got RecipeResponse
	decode(t, w, &got)
	assert.Equal(t, recipe.ID, got.ID)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/recipes/abc", nil, viewer).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/recipes/0", nil, viewer).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/recipes/424242", nil, viewer).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, fmt.Sprintf("/recipes/%d", recipe.ID), nil, "").Code)
}

func TestListRecipes_Search(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "cook@example.com")
	s.createRecipe(t, token, "chocolate cake")
	s.createRecipe(t, token, "Tomato Soup")
	s.createRecipe(t, token, "100% Whole Wheat")

	cases := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"100% Whole Wheat", "Tomato Soup", "chocolate cake"}},
		{query: "?search=Cake", want: []string{"chocolate cake"}},
		{query: "?search=%25", want: []string{"100% Whole Wheat"}},
		{query: "?search=pizza", want: []string{}},
	}

	for _, tc := range cases {
		w := s.do(t, http.MethodGet, "/recipes"+tc.query, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var recipes []RecipeResponse
		decode(t, w, &recipes)
		assert.Equal(t, tc.want, recipeTitles(recipes), tc.query)
	}
}

func TestListOwnedRecipes(t *testing.T) {
	s := newTestServer(t)
	alice, aliceID := s.register(t, "alice@example.com")
	bob, _ := s.register(t, "bob@example.com")
	s.createRecipe(t, alice, "Alice Soup")
	s.createRecipe(t, bob, "Bob Stew")
	s.createRecipe(t, alice, "Alice Pie")

	w := s.do(t, http.MethodGet, "/users/recipes", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var recipes []RecipeResponse
	decode(t, w, &recipes)
	assert.Equal(t, []string{"Alice Pie", "Alice Soup"}, recipeTitles(recipes))
	for _, r := range recipes {
		assert.Equal(t, aliceID, r.UserID)
	}
}

func TestDeleteRecipe(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.register(t, "owner@example.com")
	other, _ := s.register(t, "other@example.com")
	recipe := s.createRecipe(t, owner, "Soup")
	path := fmt.Sprintf("/recipes/%d", recipe.ID)

	w := s.do(t, http.MethodDelete, path, nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "you can delete only your own recipes", errorMessage(t, w))
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, nil, owner).Code, "recipe must survive")

	w = s.do(t, http.MethodDelete, path, nil, owner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"message":"recipe deleted","id":%d}`, recipe.ID), w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, path, nil, owner).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, nil, owner).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodDelete, "/recipes/nope", nil, owner).Code)
}

func TestRateRecipe(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.register(t, "owner@example.com")
	rater, raterID := s.register(t, "rater@example.com")
	recipe := s.createRecipe(t, owner, "Curry")

	w := s.do(t, http.MethodPost, "/recipes/rate", gin.H{"recipeId": recipe.ID, "stars": 5}, rater)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first RatingResponse
	decode(t, w, &first)
	assert.Equal(t, raterID, first.UserID)
	assert.Equal(t, recipe.ID, first.RecipeID)
	assert.Equal(t, 5, first.Stars)

	w = s.do(t, http.MethodPost, "/recipes/rate", gin.H{"recipeId": recipe.ID, "stars": 2}, rater)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var second RatingResponse
	decode(t, w, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Stars)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/recipes/%d", recipe.ID), nil, rater)
	require.Equal(t, http.StatusOK, w.Code)
	var got RecipeResponse
	decode(t, w, &got)
	require.NotNil(t, got.UserRating)
	assert.Equal(t, 2, *got.UserRating)

	w = s.do(t, http.MethodPost, "/recipes/rate", gin.H{"recipeId": recipe.ID, "stars": 3}, owner)
	assert.Equal(t, http.StatusCreated, w.Code, "owners may rate their own recipes")
}

func TestRateRecipe_Rejections(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.register(t, "rater@example.com")
	recipe := s.createRecipe(t, token, "Curry")

	cases := []struct {
		name string
		body any
		want int
	}{
		{name: "zero stars", body: gin.H{"recipeId": recipe.ID, "stars": 0}, want: http.StatusBadRequest},
		{name: "six stars", body: gin.H{"recipeId": recipe.ID, "stars": 6}, want: http.StatusBadRequest},
		{name: "string stars", body: gin.H{"recipeId": recipe.ID, "stars": "5"}, want: http.StatusBadRequest},
		{name: "missing recipe", body: gin.H{"stars": 4}, want: http.StatusBadRequest},
		{name: "unknown recipe", body: gin.H{"recipeId": 987654, "stars": 4}, want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/recipes/rate", tc.body, token)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}

	w := s.do(t, http.MethodPost, "/recipes/rate", gin.H{"recipeId": recipe.ID, "stars": 4}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A registers and creates R, an anonymous caller sees R unrated, B rates R,
// A deletes R, and B's later delete finds nothing.
func TestRecipeLifecycle(t *testing.T) {
	s := newTestServer(t)
	tokenA, idA := s.register(t, "a@example.com")
	recipe := s.createRecipe(t, tokenA, "Shared Lasagne")
	assert.Equal(t, idA, recipe.UserID)

	w := s.do(t, http.MethodGet, "/recipes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var anonymous []RecipeResponse
	decode(t, w, &anonymous)
	require.Len(t, anonymous, 1)
	assert.Equal(t, recipe.ID, anonymous[0].ID)
	assert.Nil(t, anonymous[0].UserRating)
	assert.Contains(t, w.Body.String(), `"userRating":null`)

	tokenB, _ := s.register(t, "b@example.com")
	w = s.do(t, http.MethodPost, "/recipes/rate", gin.H{"recipeId": recipe.ID, "stars": 4}, tokenB)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/recipes", nil, tokenB)
	require.Equal(t, http.StatusOK, w.Code)
	var asB []RecipeResponse
	decode(t, w, &asB)
	require.Len(t, asB, 1)
	require.NotNil(t, asB[0].UserRating)
	assert.Equal(t, 4, *asB[0].UserRating)

	w = s.do(t, http.MethodGet, "/recipes", nil, tokenA)
	var asA []RecipeResponse
	decode(t, w, &asA)
	require.Len(t, asA, 1)
	assert.Nil(t, asA[0].UserRating, "another user's rating must not leak")

	path := fmt.Sprintf("/recipes/%d", recipe.ID)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, path, nil, tokenA).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, path, nil, tokenB).Code)
}
