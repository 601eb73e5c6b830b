package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/domain"
)

type adviseRequest struct {
	UserSkills string `json:"user_skills"`
}

type AdviceResponse struct {
	TopCareers       []domain.CareerMatch `json:"top_careers"`
	PersonalizedTips string               `json:"personalized_tips"`
	Timestamp        string               `json:"timestamp"`
}

type CareerResponse struct {
	Name           string   `json:"name"`
	RequiredSkills []string `json:"required_skills"`
	Roadmap        []string `json:"roadmap"`
	SalaryEstimate string   `json:"salary_estimate,omitempty"`
}

type interviewFeedbackRequest struct {
	Career  string   `json:"career"`
	Answers []string `json:"answers" binding:"required"`
}

func (h *Handler) advise(c *gin.Context) {
	var req adviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	advice := h.careers.Advise(req.UserSkills)
	c.JSON(http.StatusOK, AdviceResponse{
		TopCareers:       advice.TopCareers,
		PersonalizedTips: advice.Tips,
		Timestamp:        advice.Timestamp.Format(time.RFC3339Nano),
	})
}

func (h *Handler) listCareers(c *gin.Context) {
	careers := h.careers.Careers()
	resp := make([]CareerResponse, len(careers))
	for i, career := range careers {
		resp[i] = CareerResponse{
			Name:           career.Name,
			RequiredSkills: career.RequiredSkills,
			Roadmap:        career.Roadmap,
			SalaryEstimate: career.SalaryEstimate,
		}
	}
	c.JSON(http.StatusOK, gin.H{"careers": resp})
}

func (h *Handler) compareCareers(c *gin.Context) {
	first := strings.TrimSpace(c.Query("c1"))
	second := strings.TrimSpace(c.Query("c2"))
	if first == "" || second == "" {
		badRequest(c, fmt.Errorf("%w: c1 and c2 are required", domain.ErrInvalidInput))
		return
	}

	cmp, err := h.careers.Compare(first, second)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (h *Handler) jobTrends(c *gin.Context) {
	query, points := h.careers.JobTrends(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"query": query, "trend": points})
}

func (h *Handler) interviewQuestions(c *gin.Context) {
	career := c.DefaultQuery("career", "Data Scientist")
	c.JSON(http.StatusOK, gin.H{
		"career":    career,
		"questions": h.interview.Questions(career),
	})
}

func (h *Handler) interviewFeedback(c *gin.Context) {
	var req interviewFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"career":   req.Career,
		"feedback": h.interview.Feedback(req.Career, req.Answers),
	})
}
