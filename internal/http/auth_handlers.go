package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-share/internal/metrics"
)

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, invalidRequest(err))
		return
	}

	result, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	metrics.RecordRegistration()
	c.JSON(http.StatusCreated, authToResponse(result))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, invalidRequest(err))
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(c, invalidRequest(errors.New("email and password required")))
		return
	}

	result, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordLogin(false)
		h.writeError(c, err)
		return
	}

	metrics.RecordLogin(true)
	c.JSON(http.StatusOK, authToResponse(result))
}

