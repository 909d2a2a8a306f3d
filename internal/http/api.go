package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"recipe-share/internal/auth"
	"recipe-share/internal/metrics"
	"recipe-share/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	recipes service.RecipeService
	tokens  *auth.TokenManager
	logger  logrus.FieldLogger
}

func NewHandler(users service.UserService, recipes service.RecipeService, tokens *auth.TokenManager, logger logrus.FieldLogger) *Handler {
	return &Handler{
		users:   users,
		recipes: recipes,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), h.requestLogger(), metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	router.GET("/recipes", h.optionalAuth(), h.listRecipes)

	protected := router.Group("/", h.requireAuth())
	{
		protected.GET("/recipes/:id", h.getRecipe)
		protected.POST("/recipes", h.createRecipe)
		protected.DELETE("/recipes/:id", h.deleteRecipe)
		protected.POST("/recipes/rate", h.rateRecipe)
		protected.GET("/users/recipes", h.listOwnedRecipes)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
