package events

import (
	"context"
	"time"
)

// Type names a domain event.
type Type string

const (
	CouplePaired       Type = "couple.paired"
	MomentRecorded     Type = "moment.recorded"
	AchievementGranted Type = "achievement.granted"
	CoinsSpent         Type = "coins.spent"
)

// Event is the message body sent to subscribers.
type Event struct {
	Type       Type      `json:"type"`
	CoupleID   string    `json:"coupleId"`
	AccountID  string    `json:"accountId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher defines the interface for a component that delivers domain events.
type Publisher interface {
	// Publish sends a single event. Callers log failures; the write it describes is already committed.
	Publish(ctx context.Context, event Event) error
}

// NoOpPublisher drops every event. It is used when no queue is configured.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

var _ Publisher = (*NoOpPublisher)(nil)
