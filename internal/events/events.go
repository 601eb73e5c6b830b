// Package events fans domain events out to a message broker. Delivery is best
// effort: publishing never fails the request that produced the event.
package events

import (
	"context"
	"time"
)

const (
	TypeUserRegistered      = "user.registered"
	TypeRecommendationSaved = "recommendation.saved"
	TypeQuizSubmitted       = "quiz.submitted"
)

// Event is the JSON body published for every domain event.
type Event struct {
	Type       string         `json:"type"`
	UserID     int64          `json:"user_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Publisher delivers events. Implementations log their own failures.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

func (Nop) Close() error { return nil }

// New builds an Event stamped with the current time.
func New(eventType string, userID int64, attrs map[string]any) Event {
	return Event{
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Attributes: attrs,
	}
}
