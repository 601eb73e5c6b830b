package domain

// CareerMatch is one ranked row produced by the skill matcher.
type CareerMatch struct {
	Career        string   `json:"career"`
	MatchScore    float64  `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Roadmap       []string `json:"roadmap"`
}

// CareerComparison places two catalog careers side by side.
type CareerComparison struct {
	First           CareerDetails     `json:"career1"`
	Second          CareerDetails     `json:"career2"`
	SalaryEstimates map[string]string `json:"salary_estimates"`
}

type CareerDetails struct {
	Name           string   `json:"name"`
	RequiredSkills []string `json:"required_skills"`
	Roadmap        []string `json:"roadmap"`
}

// TrendPoint is one sample of the mock job demand series.
type TrendPoint struct {
	Date        string `json:"date"`
	DemandIndex int    `json:"demand_index"`
}

// InterviewFeedback lists which keyword groups an answer touched.
type InterviewFeedback struct {
	Answer          string   `json:"answer"`
	KeywordsMatched []string `json:"keywords_matched"`
}
