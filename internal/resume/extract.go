// Package resume pulls plain text out of uploaded resumes and derives skills
// and improvement suggestions from it.
package resume

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"career-advisor/internal/domain"
)

// Kind is a supported document format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "txt"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// Document is one uploaded file.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

var xmlTag = regexp.MustCompile(`<[^>]*>`)

// DetectKind picks the format from the file extension, falling back to the
// declared content type.
func DetectKind(doc Document) (Kind, error) {
	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".txt":
		return KindText, nil
	}

	mediaType, _, _ := strings.Cut(doc.ContentType, ";")
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case mimePDF:
		return KindPDF, nil
	case mimeDOCX:
		return KindDOCX, nil
	case mimeText:
		return KindText, nil
	}

	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedDocumentType, doc.Filename)
}

// extractText returns the document text. Parser errors and panics both come
// back as an error; callers decide whether that is fatal.
func extractText(kind Kind, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%s parser panic: %v", kind, r)
		}
	}()

	switch kind {
	case KindPDF:
		return extractPDFText(data)
	case KindDOCX:
		return extractDocxText(data)
	case KindText:
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedDocumentType, kind)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return sb.String(), fmt.Errorf("pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	// GetContent returns the document.xml body; paragraphs end at </w:p>.
	content := strings.ReplaceAll(doc.Editable().GetContent(), "</w:p>", "\n")
	return html.UnescapeString(xmlTag.ReplaceAllString(content, "")), nil
}
