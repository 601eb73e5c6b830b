package service

import (
	"fmt"
	"strings"
	"time"

	"career-advisor/internal/catalog"
	"career-advisor/internal/domain"
	"career-advisor/internal/matcher"
)

const adviceTip = "Focus on missing skills, build 2 projects, and network."

var (
	trendLabels = []string{"2024-01", "2024-04", "2024-07", "2024-10", "2025-01", "2025-04", "2025-07", "2025-09"}
	trendBase   = []int{40, 45, 48, 52, 55, 58, 60, 63}
)

// Advice is the result of one skills analysis.
type Advice struct {
	TopCareers []domain.CareerMatch
	Tips       string
	Timestamp  time.Time
}

// CareerService answers catalog questions: matching, comparison and trends.
type CareerService interface {
	Careers() []catalog.Career
	Advise(skills string) Advice
	Compare(first, second string) (domain.CareerComparison, error)
	JobTrends(query string) (string, []domain.TrendPoint)
}

type careerService struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewCareerService(c *catalog.Catalog) CareerService {
	return &careerService{catalog: c, now: time.Now}
}

func (s *careerService) Careers() []catalog.Career {
	return s.catalog.Careers()
}

func (s *careerService) Advise(skills string) Advice {
	return Advice{
		TopCareers: matcher.Match(skills, s.catalog),
		Tips:       adviceTip,
		Timestamp:  s.now().UTC(),
	}
}

// Compare returns both careers side by side. An unknown name on either side
// is reported as domain.ErrNotFound.
func (s *careerService) Compare(first, second string) (domain.CareerComparison, error) {
	a, ok := s.catalog.Career(first)
	if !ok {
		return domain.CareerComparison{}, fmt.Errorf("career %q: %w", first, domain.ErrNotFound)
	}
	b, ok := s.catalog.Career(second)
	if !ok {
		return domain.CareerComparison{}, fmt.Errorf("career %q: %w", second, domain.ErrNotFound)
	}

	return domain.CareerComparison{
		First:  details(a),
		Second: details(b),
		SalaryEstimates: map[string]string{
			a.Name: a.SalaryEstimate,
			b.Name: b.SalaryEstimate,
		},
	}, nil
}

// JobTrends returns the fixed mock demand series. The query is only echoed back.
func (s *careerService) JobTrends(query string) (string, []domain.TrendPoint) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = "all"
	}
	points := make([]domain.TrendPoint, len(trendLabels))
	for i, label := range trendLabels {
		points[i] = domain.TrendPoint{
			Date:        label,
			DemandIndex: trendBase[i%len(trendBase)] + (i%3)*2,
		}
	}
	return query, points
}

func details(c catalog.Career) domain.CareerDetails {
	return domain.CareerDetails{
		Name:           c.Name,
		RequiredSkills: c.RequiredSkills,
		Roadmap:        c.Roadmap,
	}
}
