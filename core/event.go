package core

import (
	"time"

	"github.com/google/uuid"
)

// Event is the unit of communication between the runner and its consumers.
// After emission it should be treated as immutable. It captures correlation
// (RunID, ID, Author), optional role-based content, streaming metadata and a
// high precision UTC timestamp.
//
// Content may be nil for control or error-only events.
type Event struct {
	ID           string    `json:"id"`
	RunID        string    `json:"run_id"`
	Author       string    `json:"author"`
	Timestamp    time.Time `json:"timestamp"`
	Content      *Content  `json:"content,omitempty"`
	Partial      *bool     `json:"partial,omitempty"`
	TurnComplete *bool     `json:"turn_complete,omitempty"`
	ErrorCode    *string   `json:"error_code,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
}

// NewEvent creates a bare event authored by 'author' bound to a run.
func NewEvent(runID, author string) Event {
	return Event{
		ID:        NewID(),
		RunID:     runID,
		Author:    author,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserContentEvent creates a user-authored event wrapping the given content.
func NewUserContentEvent(runID string, content *Content) Event {
	e := NewEvent(runID, RoleUser)
	e.Content = content
	return e
}

// NewModelTextEvent creates a model-role text message event authored by the
// named agent.
func NewModelTextEvent(runID, author, text string) Event {
	e := NewEvent(runID, author)
	e.Content = &Content{Role: RoleModel, Parts: []Part{TextPart{Text: text}}}
	return e
}

// NewID generates a new unique identifier usable for events, runs and
// generated session IDs.
func NewID() string { return uuid.NewString() }

// IsPartial reports whether this event is a streaming fragment that will be
// followed by further events composing the final model turn.
func (e Event) IsPartial() bool { return e.Partial != nil && *e.Partial }

// Text returns the concatenated text of the event's content, or "" when the
// event carries no content.
func (e Event) Text() string {
	if e.Content == nil {
		return ""
	}
	return e.Content.Text()
}

// IsFinalResponse reports whether the event completes a model turn. Consumers
// looking for the generated reply keep the last final event whose content is
// model-role text.
func (e Event) IsFinalResponse() bool { return !e.IsPartial() }
