package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/domain"
)

type saveRecommendationRequest struct {
	Title   string          `json:"title" binding:"required"`
	Payload json.RawMessage `json:"payload" binding:"required"`
}

type SavedRecommendationResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type BadgeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	EarnedAt string `json:"earned_at"`
}

func (h *Handler) saveRecommendation(c *gin.Context) {
	var req saveRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rec, err := h.recommendations.Save(c.Request.Context(), mustUser(c).ID, req.Title, req.Payload)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SavedRecommendationResponse{
		ID:        rec.ID,
		Title:     rec.Title,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339Nano),
	})
}

func (h *Handler) listRecommendations(c *gin.Context) {
	recs, err := h.recommendations.ListHistory(c.Request.Context(), mustUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]SavedRecommendationResponse, len(recs))
	for i, rec := range recs {
		resp[i] = SavedRecommendationResponse{
			ID:        rec.ID,
			Title:     rec.Title,
			Data:      rec.Payload,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	c.JSON(http.StatusOK, gin.H{"history": resp})
}

func (h *Handler) listBadges(c *gin.Context) {
	badges, err := h.badges.Badges(c.Request.Context(), mustUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badgesToResponse(badges)})
}

func badgesToResponse(badges []domain.Badge) []BadgeResponse {
	resp := make([]BadgeResponse, len(badges))
	for i, b := range badges {
		resp[i] = BadgeResponse{
			ID:       b.ID,
			Name:     b.Name,
			EarnedAt: b.EarnedAt.Format(time.RFC3339Nano),
		}
	}
	return resp
}
