package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/domain"
)

type submitQuizRequest struct {
	Topic   string            `json:"topic" binding:"required"`
	Answers map[string]string `json:"answers"`
}

type QuizScoreResponse struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) listTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": h.quiz.Topics()})
}

func (h *Handler) quizQuestions(c *gin.Context) {
	topic := c.DefaultQuery("topic", "Python")
	count, err := strconv.Atoi(c.DefaultQuery("count", "2"))
	if err != nil {
		badRequest(c, fmt.Errorf("%w: count must be an integer", domain.ErrInvalidInput))
		return
	}

	questions, err := h.quiz.Questions(topic, count)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic, "questions": questions})
}

func (h *Handler) submitQuiz(c *gin.Context) {
	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.quiz.Submit(c.Request.Context(), mustUser(c).ID, req.Topic, req.Answers)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) quizScores(c *gin.Context) {
	scores, err := h.quiz.History(c.Request.Context(), mustUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]QuizScoreResponse, len(scores))
	for i, s := range scores {
		resp[i] = QuizScoreResponse{
			ID:        s.ID,
			Topic:     s.Topic,
			Score:     s.Score,
			Total:     s.Total,
			CreatedAt: s.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	c.JSON(http.StatusOK, gin.H{"scores": resp})
}
