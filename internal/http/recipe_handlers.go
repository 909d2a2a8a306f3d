package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipe-share/internal/metrics"
	"recipe-share/internal/service"
)

type createRecipeRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Ingredients  string  `json:"ingredients"`
	Instructions string  `json:"instructions"`
}

type rateRecipeRequest struct {
	RecipeID int64 `json:"recipeId"`
	Stars    int   `json:"stars"`
}

func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), requesterID(c), c.Query("search"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipesToResponse(recipes))
}

func (h *Handler) listOwnedRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListOwnedRecipes(c.Request.Context(), requesterID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipesToResponse(recipes))
}

func (h *Handler) getRecipe(c *gin.Context) {
	id, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id, requesterID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipeToResponse(*recipe))
}

func (h *Handler) createRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, invalidRequest(err))
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), requesterID(c), service.CreateRecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	metrics.RecordRecipeCreated()
	c.JSON(http.StatusCreated, recipeToResponse(*recipe))
}

func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, requesterID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	metrics.RecordRecipeDeleted()
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted", "id": id})
}

func (h *Handler) rateRecipe(c *gin.Context) {
	var req rateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, invalidRequest(err))
		return
	}

	rating, created, err := h.recipes.RateRecipe(c.Request.Context(), requesterID(c), req.RecipeID, req.Stars)
	if err != nil {
		h.writeError(c, err)
		return
	}

	metrics.RecordRating(created)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ratingToResponse(rating))
}

func (h *Handler) recipeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(c, invalidRequest(errInvalidRecipeID))
		return 0, false
	}
	return id, true
}
