package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"career-advisor/internal/auth"
	"career-advisor/internal/report"
	"career-advisor/internal/resume"
	"career-advisor/internal/service"
	"career-advisor/internal/storage"
)

// ReportArchive keeps copies of exported reports. It is optional.
type ReportArchive interface {
	Store(ctx context.Context, userID int64, ext, contentType string, body []byte) (string, error)
	List(ctx context.Context, userID int64) ([]storage.ArchivedReport, error)
}

// Dependencies groups everything the HTTP layer calls into.
type Dependencies struct {
	Users           service.UserService
	Recommendations service.RecommendationService
	Quiz            service.QuizService
	Badges          service.BadgeService
	Careers         service.CareerService
	Interview       service.InterviewService
	Issuer          *auth.Issuer
	Resumes         *resume.Analyzer
	Reports         *report.Renderer
	Archive         ReportArchive
	Logger          logrus.FieldLogger
	AllowOrigins    []string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users           service.UserService
	recommendations service.RecommendationService
	quiz            service.QuizService
	badges          service.BadgeService
	careers         service.CareerService
	interview       service.InterviewService
	issuer          *auth.Issuer
	resumes         *resume.Analyzer
	reports         *report.Renderer
	archive         ReportArchive
	log             logrus.FieldLogger
	allowOrigins    []string
}

func NewHandler(deps Dependencies) *Handler {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		users:           deps.Users,
		recommendations: deps.Recommendations,
		quiz:            deps.Quiz,
		badges:          deps.Badges,
		careers:         deps.Careers,
		interview:       deps.Interview,
		issuer:          deps.Issuer,
		resumes:         deps.Resumes,
		reports:         deps.Reports,
		archive:         deps.Archive,
		log:             log.WithField("component", "http"),
		allowOrigins:    deps.AllowOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.allowOrigins), requestLogger(h.log))

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/advise", h.optionalAuth(), h.advise)
		api.POST("/resume/enhance", h.enhanceResume)
		api.POST("/interview/feedback", h.interviewFeedback)
		api.GET("/careers", h.listCareers)
		api.GET("/quiz/topics", h.listTopics)
		api.GET("/job-trends", h.jobTrends)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	authed := api.Group("", h.requireAuth())
	{
		authed.GET("/me", h.me)
		authed.POST("/recommendations", h.saveRecommendation)
		authed.GET("/recommendations", h.listRecommendations)
		authed.GET("/badges", h.listBadges)
		authed.POST("/resume/upload", h.uploadResume)
		authed.GET("/quiz/questions", h.quizQuestions)
		authed.POST("/quiz/submit", h.submitQuiz)
		authed.GET("/quiz/scores", h.quizScores)
		authed.GET("/interview/questions", h.interviewQuestions)
		authed.GET("/careers/compare", h.compareCareers)
		authed.POST("/reports/export", h.exportReport)
		authed.GET("/reports", h.listReports)
	}
}
