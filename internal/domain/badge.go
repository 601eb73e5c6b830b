package domain

import "time"

// Badge is a derived achievement. Badges are never stored; they are computed from history.
type Badge struct {
	ID       string
	Name     string
	EarnedAt time.Time
}
