package service

import (
	"strings"

	"career-advisor/internal/catalog"
	"career-advisor/internal/domain"
)

// InterviewService runs the scripted mock interview.
type InterviewService interface {
	Questions(career string) []string
	Feedback(career string, answers []string) []domain.InterviewFeedback
}

type interviewService struct {
	catalog *catalog.Catalog
}

func NewInterviewService(c *catalog.Catalog) InterviewService {
	return &interviewService{catalog: c}
}

func (s *interviewService) Questions(career string) []string {
	return s.catalog.InterviewQuestions(career)
}

// Feedback reports, per answer, the keyword groups with at least one word
// present in the answer. Matching is a case-insensitive substring test.
func (s *interviewService) Feedback(_ string, answers []string) []domain.InterviewFeedback {
	groups := s.catalog.InterviewKeywords()
	out := make([]domain.InterviewFeedback, 0, len(answers))
	for _, answer := range answers {
		lower := strings.ToLower(answer)
		matched := []string{}
		for _, g := range groups {
			for _, word := range g.Words {
				if strings.Contains(lower, strings.ToLower(word)) {
					matched = append(matched, g.Label)
					break
				}
			}
		}
		out = append(out, domain.InterviewFeedback{Answer: answer, KeywordsMatched: matched})
	}
	return out
}
