package notes

import "time"

// Event type names published to the event bus.
const (
	EventNoteCreated = "notes.created"
	EventNoteUpdated = "notes.updated"
	EventNoteDeleted = "notes.deleted"
)

// Event is a note lifecycle event. Publishing is best-effort and happens
// after the backend write; consumers must tolerate duplicates and gaps.
type Event interface {
	EventType() string
	AggregateID() string
	OwnerID() string
	OccurredAt() time.Time
}

// NoteEvent is the single event shape for the note lifecycle.
type NoteEvent struct {
	Type      string    `json:"type"`
	NoteID    string    `json:"noteId"`
	Owner     string    `json:"ownerId"`
	Timestamp time.Time `json:"timestamp"`
}

func (e NoteEvent) EventType() string     { return e.Type }
func (e NoteEvent) AggregateID() string   { return e.NoteID }
func (e NoteEvent) OwnerID() string       { return e.Owner }
func (e NoteEvent) OccurredAt() time.Time { return e.Timestamp }

// NewNoteCreated builds a notes.created event
func NewNoteCreated(note *Note) NoteEvent {
	return NoteEvent{Type: EventNoteCreated, NoteID: note.ID, Owner: note.OwnerID, Timestamp: note.CreatedAt}
}

// NewNoteUpdated builds a notes.updated event
func NewNoteUpdated(note *Note) NoteEvent {
	return NoteEvent{Type: EventNoteUpdated, NoteID: note.ID, Owner: note.OwnerID, Timestamp: note.UpdatedAt}
}

// NewNoteDeleted builds a notes.deleted event
func NewNoteDeleted(ownerID, noteID string, at time.Time) NoteEvent {
	return NoteEvent{Type: EventNoteDeleted, NoteID: noteID, Owner: ownerID, Timestamp: at}
}
