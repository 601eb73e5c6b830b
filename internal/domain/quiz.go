package domain

import "time"

// QuizScore is a single graded quiz attempt.
type QuizScore struct {
	ID        int64
	UserID    int64
	Topic     string
	Score     int
	Total     int
	CreatedAt time.Time
}

// QuizQuestion is a question as served to a client; the answer is never included.
type QuizQuestion struct {
	Index    int      `json:"index"`
	Question string   `json:"q"`
	Options  []string `json:"options"`
}

// QuizResult is the outcome of grading one submission.
type QuizResult struct {
	Topic string `json:"topic"`
	Score int    `json:"score"`
	Total int    `json:"total"`
}
