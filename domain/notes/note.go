package notes

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyID       = errors.New("note id cannot be empty")
	ErrInvalidID     = errors.New("note id must be a valid uuid")
	ErrEmptyOwnerID  = errors.New("owner id cannot be empty")
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyContent  = errors.New("content cannot be empty")
	ErrBadTimestamps = errors.New("updatedAt cannot precede createdAt")
)

// Note is a per-user note record. Addressed exclusively by (OwnerID, ID);
// OwnerID always comes from the authenticated caller, never from request
// bodies. CreatedAt is immutable; UpdatedAt is rewritten by every update.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote constructs a freshly created note. Both timestamps are set to now.
func NewNote(id, ownerID, title, content string, now time.Time) (*Note, error) {
	if err := validate(id, ownerID, title, content); err != nil {
		return nil, err
	}

	now = now.UTC().Truncate(time.Second)

	return &Note{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Reconstruct rebuilds a note from stored attributes, parsing the RFC3339
// timestamps the store keeps.
func Reconstruct(id, ownerID, title, content, createdAt, updatedAt string) (*Note, error) {
	if err := validate(id, ownerID, title, content); err != nil {
		return nil, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}
	if updated.Before(created) {
		return nil, ErrBadTimestamps
	}

	return &Note{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func validate(id, ownerID, title, content string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	if ownerID == "" {
		return ErrEmptyOwnerID
	}
	if title == "" {
		return ErrEmptyTitle
	}
	if content == "" {
		return ErrEmptyContent
	}
	return nil
}
