package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/domain"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

var errorStatuses = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{domain.ErrDuplicateIdentity, http.StatusConflict, "duplicate_identity"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrUnknownTopic, http.StatusNotFound, "unknown_topic"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrUnsupportedDocumentType, http.StatusUnsupportedMediaType, "unsupported_document_type"},
}

// respondError maps domain errors onto status codes. Anything unknown is
// logged and reported as a bare 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.target) {
			if m.status == http.StatusUnauthorized {
				c.Header("WWW-Authenticate", "Bearer")
			}
			RespondError(c, m.status, m.code, err)
			return
		}
	}

	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
}

func badRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "invalid_input", err)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
