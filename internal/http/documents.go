package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"career-advisor/internal/domain"
	"career-advisor/internal/report"
	"career-advisor/internal/resume"
	"career-advisor/internal/storage"
)

const (
	maxUploadBytes       = 10 << 20
	reportLocationHeader = "X-Report-Location"
)

func (h *Handler) uploadResume(c *gin.Context) {
	doc, ok := h.readDocument(c)
	if !ok {
		return
	}

	analysis, err := h.resumes.Upload(doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"extracted_text_snippet": analysis.Snippet,
		"extracted_skills":       analysis.Skills,
	})
}

func (h *Handler) enhanceResume(c *gin.Context) {
	doc, ok := h.readDocument(c)
	if !ok {
		return
	}

	suggestions, err := h.resumes.Enhance(doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// readDocument pulls the multipart "file" field into memory.
func (h *Handler) readDocument(c *gin.Context) (resume.Document, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, fmt.Errorf("%w: multipart field \"file\" is required", domain.ErrInvalidInput))
		return resume.Document{}, false
	}
	if fh.Size > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large", fmt.Errorf("file exceeds %d bytes", maxUploadBytes))
		return resume.Document{}, false
	}

	f, err := fh.Open()
	if err != nil {
		h.respondError(c, fmt.Errorf("open upload: %w", err))
		return resume.Document{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		h.respondError(c, fmt.Errorf("read upload: %w", err))
		return resume.Document{}, false
	}

	return resume.Document{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, true
}

// exportReport renders the request body as a report. When rendering fails
// the raw payload is sent back as a JSON download instead.
func (h *Handler) exportReport(c *gin.Context) {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}
	if !json.Valid(payload) {
		badRequest(c, fmt.Errorf("%w: body must be JSON", domain.ErrInvalidInput))
		return
	}

	user := mustUser(c)
	doc, err := h.reports.Render(payload, format)
	switch {
	case errors.Is(err, domain.ErrRenderFailure):
		h.log.WithError(err).WithField("user_id", user.ID).Warn("report render failed, sending json")
		doc = report.Fallback(payload)
	case err != nil:
		h.respondError(c, err)
		return
	default:
		h.archiveReport(c, user.ID, doc)
	}

	c.Header("Content-Disposition", "attachment; filename="+doc.Filename)
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

func (h *Handler) archiveReport(c *gin.Context, userID int64, doc report.Document) {
	if h.archive == nil {
		return
	}
	location, err := h.archive.Store(c.Request.Context(), userID, doc.Ext, doc.ContentType, doc.Body)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"filename": doc.Filename,
		}).Warn("report archive upload failed")
		return
	}
	c.Header(reportLocationHeader, location)
}

func (h *Handler) listReports(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusOK, gin.H{"reports": []storage.ArchivedReport{}})
		return
	}

	reports, err := h.archive.List(c.Request.Context(), mustUser(c).ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
