package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-advisor/internal/auth"
	"career-advisor/internal/catalog"
	"career-advisor/internal/report"
	"career-advisor/internal/repository/sqlite"
	"career-advisor/internal/resume"
	"career-advisor/internal/service"
	"career-advisor/internal/storage"
)

type fakeArchive struct {
	stored []string
}

func (f *fakeArchive) Store(_ context.Context, userID int64, ext, _ string, _ []byte) (string, error) {
	loc := fmt.Sprintf("s3://bucket/reports/%d/%d.%s", userID, len(f.stored), ext)
	f.stored = append(f.stored, loc)
	return loc, nil
}

func (f *fakeArchive) List(context.Context, int64) ([]storage.ArchivedReport, error) {
	out := make([]storage.ArchivedReport, len(f.stored))
	for i, loc := range f.stored {
		out[i] = storage.ArchivedReport{Key: loc}
	}
	return out, nil
}

type testServer struct {
	router  *gin.Engine
	issuer  *auth.Issuer
	archive *fakeArchive
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db, nil))
	store := sqlite.NewStore(db)

	c, err := catalog.Default()
	require.NoError(t, err)

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	archive := &fakeArchive{}
	handler := NewHandler(Dependencies{
		Users:           service.NewUserService(store, nil),
		Recommendations: service.NewRecommendationService(store, nil),
		Quiz:            service.NewQuizService(c, store, nil),
		Badges:          service.NewBadgeService(c, store),
		Careers:         service.NewCareerService(c),
		Interview:       service.NewInterviewService(c),
		Issuer:          issuer,
		Resumes:         resume.NewAnalyzer(c, logger),
		Reports:         report.NewRenderer(),
		Archive:         archive,
		Logger:          logger,
		AllowOrigins:    []string{"*"},
	})

	router := gin.New()
	handler.RegisterRoutes(router)
	return &testServer{router: router, issuer: issuer, archive: archive}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) upload(t *testing.T, path, filename, content, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login registers a fresh account and returns its access token.
func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	creds := gin.H{"email": email, "password": "password123"}
	rec := s.do(t, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	return tok.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env ErrorEnvelope
	decode(t, rec, &env)
	return env.Error.Code
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	creds := gin.H{"email": "ada@example.com", "password": "password123"}

	rec := s.do(t, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var user UserResponse
	decode(t, rec, &user)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/api/auth/register", creds, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_identity", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "ada@example.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tok TokenResponse
	decode(t, rec, &tok)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.EqualValues(t, 3600, tok.ExpiresIn)

	rec = s.do(t, http.MethodGet, "/api/me", nil, tok.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var me UserResponse
	decode(t, rec, &me)
	assert.Equal(t, user.ID, me.ID)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "no-at-sign", "password": "password123"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/auth/register", gin.H{"email": "a@b.c"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/recommendations"},
		{http.MethodPost, "/api/recommendations"},
		{http.MethodGet, "/api/badges"},
		{http.MethodGet, "/api/quiz/questions"},
		{http.MethodGet, "/api/quiz/scores"},
		{http.MethodGet, "/api/careers/compare?c1=a&c2=b"},
		{http.MethodPost, "/api/reports/export"},
	} {
		rec := s.do(t, route.method, route.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"), route.path)
	}

	rec := s.do(t, http.MethodGet, "/api/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ghost, err := s.issuer.Issue(4242)
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/me", nil, ghost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdviseOptionalAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/advise", gin.H{"user_skills": "Python, SQL"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var advice AdviceResponse
	decode(t, rec, &advice)
	require.Len(t, advice.TopCareers, 4)
	assert.Equal(t, "Data Scientist", advice.TopCareers[0].Career)
	assert.Equal(t, 40.0, advice.TopCareers[0].MatchScore)
	assert.NotEmpty(t, advice.PersonalizedTips)

	rec = s.do(t, http.MethodPost, "/api/advise", gin.H{"user_skills": "Python"}, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t, "adv@example.com")
	rec = s.do(t, http.MethodPost, "/api/advise", gin.H{"user_skills": ""}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &advice)
	for _, m := range advice.TopCareers {
		assert.Zero(t, m.MatchScore)
	}
}

func TestSaveHistoryAndBadges(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "saver@example.com")

	payload := json.RawMessage(`{"top_careers":[{"career":"AI Engineer","match_score":100}]}`)
	rec := s.do(t, http.MethodPost, "/api/recommendations", gin.H{"title": "Resume Analysis", "payload": payload}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/recommendations", gin.H{"payload": payload}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/recommendations", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		History []SavedRecommendationResponse `json:"history"`
	}
	decode(t, rec, &history)
	require.Len(t, history.History, 1)
	assert.JSONEq(t, string(payload), string(history.History[0].Data))

	other := s.login(t, "other@example.com")
	rec = s.do(t, http.MethodGet, "/api/recommendations", nil, other)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &history)
	assert.Empty(t, history.History)

	rec = s.do(t, http.MethodGet, "/api/badges", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var badges struct {
		Badges []BadgeResponse `json:"badges"`
	}
	decode(t, rec, &badges)
	ids := make([]string, len(badges.Badges))
	for i, b := range badges.Badges {
		ids[i] = b.ID
	}
	assert.Equal(t, []string{"first_save", "top_match", "resume_ready"}, ids)
}

func TestQuizFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "quiz@example.com")

	rec := s.do(t, http.MethodGet, "/api/quiz/questions?topic=Python&count=10", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var qs struct {
		Topic     string `json:"topic"`
		Questions []struct {
			Index   int      `json:"index"`
			Q       string   `json:"q"`
			Options []string `json:"options"`
		} `json:"questions"`
	}
	decode(t, rec, &qs)
	assert.Equal(t, "Python", qs.Topic)
	assert.Len(t, qs.Questions, 2)
	assert.NotContains(t, rec.Body.String(), `"a"`)

	rec = s.do(t, http.MethodGet, "/api/quiz/questions?topic=Rust", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown_topic", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/quiz/questions?count=many", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/quiz/submit", gin.H{"topic": "Python", "answers": gin.H{"0": "3", "1": "def"}}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"topic":"Python","score":2,"total":2}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/quiz/scores", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var scores struct {
		Scores []QuizScoreResponse `json:"scores"`
	}
	decode(t, rec, &scores)
	require.Len(t, scores.Scores, 1)
	assert.Equal(t, 2, scores.Scores[0].Score)

	rec = s.do(t, http.MethodGet, "/api/quiz/topics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"topics":["Python","SQL"]}`, rec.Body.String())
}

func TestResumeEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "cv@example.com")

	rec := s.upload(t, "/api/resume/upload", "cv.txt", "Python and sql projects with my team", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"extracted_text_snippet": "Python and sql projects with my team",
		"extracted_skills": ["Python", "Sql"]
	}`, rec.Body.String())

	rec = s.upload(t, "/api/resume/upload", "cv.txt", "Python", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.upload(t, "/api/resume/upload", "cv.png", "binary", token)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = s.upload(t, "/api/resume/enhance", "cv.txt", "I worked alone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"suggestions":["Add teamwork/leadership examples.","Mention 1-2 key projects with impact metrics."]}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/resume/enhance", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportReport(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "report@example.com")

	body := gin.H{"top_careers": []gin.H{{"career": "Data Scientist", "match_score": 40}}}
	rec := s.do(t, http.MethodPost, "/api/reports/export", body, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=advisor_report.pdf", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
	assert.NotEmpty(t, rec.Header().Get(reportLocationHeader))

	rec = s.do(t, http.MethodPost, "/api/reports/export?format=png", gin.H{"skills": []string{"Python"}}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = s.do(t, http.MethodPost, "/api/reports/export", gin.H{"top_careers": "oops"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=advisor_report.json", rec.Header().Get("Content-Disposition"))
	assert.JSONEq(t, `{"top_careers":"oops"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get(reportLocationHeader))

	rec = s.do(t, http.MethodPost, "/api/reports/export?format=docx", body, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/reports", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var reports struct {
		Reports []storage.ArchivedReport `json:"reports"`
	}
	decode(t, rec, &reports)
	assert.Len(t, reports.Reports, 2)
}

func TestCareerEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "careers@example.com")

	rec := s.do(t, http.MethodGet, "/api/careers/compare?c1=Data%20Scientist&c2=Web%20Developer", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var cmp struct {
		Career1         CareerResponse    `json:"career1"`
		Career2         CareerResponse    `json:"career2"`
		SalaryEstimates map[string]string `json:"salary_estimates"`
	}
	decode(t, rec, &cmp)
	assert.Equal(t, "Data Scientist", cmp.Career1.Name)
	assert.Equal(t, "Web Developer", cmp.Career2.Name)
	assert.Len(t, cmp.SalaryEstimates, 2)

	rec = s.do(t, http.MethodGet, "/api/careers/compare?c1=Data%20Scientist&c2=Astronaut", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))

	rec = s.do(t, http.MethodGet, "/api/careers/compare?c1=Data%20Scientist", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/careers", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Careers []CareerResponse `json:"careers"`
	}
	decode(t, rec, &list)
	assert.Len(t, list.Careers, 4)

	rec = s.do(t, http.MethodGet, "/api/job-trends", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var trends struct {
		Query string `json:"query"`
		Trend []struct {
			Date        string `json:"date"`
			DemandIndex int    `json:"demand_index"`
		} `json:"trend"`
	}
	decode(t, rec, &trends)
	assert.Equal(t, "all", trends.Query)
	assert.Len(t, trends.Trend, 8)
}

func TestInterviewEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "interview@example.com")

	rec := s.do(t, http.MethodGet, "/api/interview/questions", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var qs struct {
		Career    string   `json:"career"`
		Questions []string `json:"questions"`
	}
	decode(t, rec, &qs)
	assert.Equal(t, "Data Scientist", qs.Career)
	assert.Len(t, qs.Questions, 3)

	rec = s.do(t, http.MethodPost, "/api/interview/feedback", gin.H{
		"career":  "Web Developer",
		"answers": []string{"GET is idempotent", "no idea"},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"career": "Web Developer",
		"feedback": [
			{"answer": "GET is idempotent", "keywords_matched": ["GET vs POST"]},
			{"answer": "no idea", "keywords_matched": []}
		]
	}`, rec.Body.String())
}

func TestHealthAndCORS(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/advise", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	out := httptest.NewRecorder()
	s.router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.Equal(t, "*", out.Header().Get("Access-Control-Allow-Origin"))
}
