package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/domain"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.issuer.TTL() / time.Second),
	})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, userToResponse(mustUser(c)))
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
