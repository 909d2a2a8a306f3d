package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-share/internal/auth"
	"recipe-share/internal/service"
)

var (
	errMissingCredential   = fmt.Errorf("%w: token missing", service.ErrUnauthenticated)
	errMalformedCredential = fmt.Errorf("%w: expected a bearer token", auth.ErrInvalidToken)
	errInvalidRecipeID     = errors.New("invalid recipe id")
)

// invalidRequest marks request decoding failures as caller errors.
func invalidRequest(err error) error {
	return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
}

// writeError maps err to a status code and aborts the request with an
// {"error": ...} body. Unclassified errors are logged and hidden from the client.
func (h *Handler) writeError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "token missing"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken):
		status, msg = http.StatusForbidden, "token invalid"
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrUserAlreadyExists):
		status, msg = http.StatusConflict, "user already exists"
	case errors.Is(err, service.ErrRecipeNotFound):
		status, msg = http.StatusNotFound, "recipe not found"
	default:
		h.logger.WithError(err).
			WithField(requestIDKey, c.GetString(requestIDKey)).
			WithField("path", c.Request.URL.Path).
			Error("request failed")
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
