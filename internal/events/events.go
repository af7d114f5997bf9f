// Package events publishes domain events about user activity.
package events

import (
	"context"
	"sync"
	"time"
)

// Event types.
const (
	TypeAssessmentCompleted = "assessment.completed"
	TypeCareerSaved         = "career.saved"
	TypeUserRegistered      = "user.registered"
)

// Event is one published fact. Payload is marshalled as JSON.
type Event struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// New stamps an event with the current time.
func New(eventType string, userID int64, payload any) Event {
	return Event{Type: eventType, UserID: userID, OccurredAt: time.Now().UTC(), Payload: payload}
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of what has been published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
