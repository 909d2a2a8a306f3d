package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"recipe-share/internal/auth"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestLogger tags every request with an id and logs its outcome once the
// handler chain has finished.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			requestIDKey: requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"route":      c.FullPath(),
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		}
		if userID, ok := auth.UserIDFromContext(c.Request.Context()); ok {
			fields["user_id"] = userID
		}

		entry := h.logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

// requireAuth rejects requests without a valid bearer token.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.authenticate(c, true)
	}
}

// optionalAuth lets requests without a credential through anonymously but
// still rejects a bad token.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.authenticate(c, false)
	}
}

func (h *Handler) authenticate(c *gin.Context, required bool) {
	token, err := bearerToken(c.GetHeader("Authorization"))
	if errors.Is(err, errMissingCredential) && !required {
		c.Next()
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	userID, err := h.tokens.Parse(token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
	c.Next()
}

// bearerToken extracts the token from an Authorization header. A header with
// nothing after the scheme carries no credential at all.
func bearerToken(header string) (string, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingCredential
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return "", errMalformedCredential
	}
	return token, nil
}

// requesterID returns the caller id set by the auth middleware, zero when anonymous.
func requesterID(c *gin.Context) int64 {
	id, _ := auth.UserIDFromContext(c.Request.Context())
	return id
}
