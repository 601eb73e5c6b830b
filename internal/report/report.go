// Package report renders saved advisor results into downloadable documents.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"career-advisor/internal/domain"
)

// Format is an export document type.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

const baseName = "advisor_report"

// Document is a rendered export ready to be streamed to the client.
type Document struct {
	Filename    string
	ContentType string
	Ext         string
	Body        []byte
}

// ParseFormat maps a query value to a Format. Empty means PDF.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, s)
}

type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render lays payload out as a report. Any failure is returned wrapped in
// domain.ErrRenderFailure; callers fall back to Fallback.
func (r *Renderer) Render(payload json.RawMessage, format Format) (Document, error) {
	lines, err := r.lines(payload)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrRenderFailure, err)
	}

	var body []byte
	switch format {
	case FormatPDF:
		body, err = renderPDF(lines)
	case FormatPNG:
		body, err = renderPNG(lines)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", domain.ErrRenderFailure, err)
	}

	doc := Document{
		Filename: baseName + "." + string(format),
		Ext:      string(format),
		Body:     body,
	}
	if format == FormatPDF {
		doc.ContentType = "application/pdf"
	} else {
		doc.ContentType = "image/png"
	}
	return doc, nil
}

// Fallback returns the raw payload as an indented JSON download.
func Fallback(payload json.RawMessage) Document {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		buf.Reset()
		buf.Write(payload)
	}
	return Document{
		Filename:    baseName + ".json",
		ContentType: "application/octet-stream",
		Ext:         "json",
		Body:        buf.Bytes(),
	}
}

type careerEntry struct {
	Career        string   `json:"career"`
	MatchScore    float64  `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

func (r *Renderer) lines(payload json.RawMessage) ([]string, error) {
	lines := []string{
		"AI Career Advisor Report",
		"",
		"Generated: " + r.now().UTC().Format(time.RFC3339),
		"",
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(payload, &sections); err != nil {
		// not an object: nothing we know how to lay out
		return append(lines, "No data provided."), nil
	}

	if raw, ok := sections["top_careers"]; ok {
		var careers []careerEntry
		if err := json.Unmarshal(raw, &careers); err != nil {
			return nil, fmt.Errorf("decode top_careers: %w", err)
		}
		lines = append(lines, "=== Career Recommendations ===")
		for i, c := range careers {
			lines = append(lines, "", fmt.Sprintf("%d. %s - Match: %g%%", i+1, c.Career, c.MatchScore))
			if len(c.MatchedSkills) > 0 {
				lines = append(lines, "   Matched: "+strings.Join(c.MatchedSkills, ", "))
			}
			if len(c.MissingSkills) > 0 {
				lines = append(lines, "   Missing: "+strings.Join(c.MissingSkills, ", "))
			}
		}
		return lines, nil
	}

	rawSkills, hasSkills := sections["skills"]
	rawSuggestions, hasSuggestions := sections["suggestions"]
	if !hasSkills && !hasSuggestions {
		return append(lines, "No data provided."), nil
	}

	var skills, suggestions []string
	if hasSkills {
		if err := json.Unmarshal(rawSkills, &skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
	}
	if hasSuggestions {
		if err := json.Unmarshal(rawSuggestions, &suggestions); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
	}

	lines = append(lines, "=== Resume Enhancement Report ===")
	if len(skills) > 0 {
		lines = append(lines, "", "Extracted Skills: "+strings.Join(skills, ", "))
	}
	if len(suggestions) > 0 {
		lines = append(lines, "", "Improvement Suggestions:")
		for _, s := range suggestions {
			lines = append(lines, "- "+s)
		}
	}
	return lines, nil
}
