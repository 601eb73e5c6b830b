package domain

import (
	"encoding/json"
	"time"
)

// SavedRecommendation is an immutable snapshot of a scoring run or resume analysis.
// Payload is kept exactly as the client sent it.
type SavedRecommendation struct {
	ID        int64
	UserID    int64
	Title     string
	Payload   json.RawMessage
	CreatedAt time.Time
}
