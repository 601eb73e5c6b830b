package resume

import (
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"career-advisor/internal/catalog"
	"career-advisor/internal/matcher"
)

const snippetRunes = 200

const (
	suggestTeamwork = "Add teamwork/leadership examples."
	suggestProjects = "Mention 1-2 key projects with impact metrics."
)

// Analysis is the result of a resume upload.
type Analysis struct {
	Snippet string
	Skills  []string
}

// Analyzer extracts resume text and runs the keyword rules over it.
type Analyzer struct {
	catalog *catalog.Catalog
	log     logrus.FieldLogger
}

func NewAnalyzer(c *catalog.Catalog, logger logrus.FieldLogger) *Analyzer {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Analyzer{catalog: c, log: logger}
}

// Text returns the text of doc. Only an unsupported format is an error; a
// document that fails to parse yields empty text.
func (a *Analyzer) Text(doc Document) (string, error) {
	kind, err := DetectKind(doc)
	if err != nil {
		return "", err
	}
	text, err := extractText(kind, doc.Data)
	if err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"filename": doc.Filename,
			"kind":     kind,
			"size":     len(doc.Data),
		}).Warn("resume text extraction failed")
		return "", nil
	}
	return text, nil
}

func (a *Analyzer) Upload(doc Document) (Analysis, error) {
	text, err := a.Text(doc)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		Snippet: Snippet(text),
		Skills:  a.ExtractSkills(text),
	}, nil
}

func (a *Analyzer) Enhance(doc Document) ([]string, error) {
	text, err := a.Text(doc)
	if err != nil {
		return nil, err
	}
	return Suggest(text), nil
}

// ExtractSkills lists, sorted and normalized, every catalog skill whose name
// occurs in text, ignoring case.
func (a *Analyzer) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := map[string]struct{}{}
	for _, skill := range a.catalog.Skills() {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found[matcher.Normalize(skill)] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func Suggest(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	if !strings.Contains(lower, "team") {
		out = append(out, suggestTeamwork)
	}
	if !strings.Contains(lower, "project") {
		out = append(out, suggestProjects)
	}
	return out
}

// Snippet returns at most the first 200 runes of text.
func Snippet(text string) string {
	n := 0
	for i := range text {
		if n == snippetRunes {
			return text[:i]
		}
		n++
	}
	return text
}
