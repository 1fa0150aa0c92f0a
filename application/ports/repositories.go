package ports

import (
	"context"

	"github.com/CamilaNiebles/sls-assesment/domain/notes"
)

// NoteRepository is the store contract for notes. Every operation takes the
// owner id as a mandatory key component; there is no unscoped access path.
// Failures are plain wrapped errors, classification into HTTP-facing errors
// happens at the service layer.
type NoteRepository interface {
	// Create persists a full note record and returns its input unchanged.
	// No uniqueness check is made beyond ids being freshly generated.
	Create(ctx context.Context, note *notes.Note) (*notes.Note, error)

	// ListByOwner returns every note belonging to the owner, order
	// unspecified. An owner with no notes yields an empty slice, not an
	// error. A stored record that cannot be read back fails the whole
	// call; the listing is never silently shorter than the table.
	ListByOwner(ctx context.Context, ownerID string) ([]*notes.Note, error)

	// UpdateFields writes exactly the fields present in the mask and always
	// rewrites UpdatedAt, returning the full post-update record. It fails
	// when (ownerID, id) does not exist. Rejecting an empty mask is the
	// caller's job; called with one, only UpdatedAt is touched.
	UpdateFields(ctx context.Context, ownerID, id string, mask notes.FieldMask) (*notes.Note, error)

	// DeleteByID removes the note. Deleting an absent id is not guaranteed
	// to fail; callers must not read "not found" out of its errors.
	DeleteByID(ctx context.Context, ownerID, id string) error
}

// EventPublisher publishes note lifecycle events. Best-effort: a publish
// failure never rolls back or fails the store write it follows.
type EventPublisher interface {
	Publish(ctx context.Context, event notes.Event) error
}

// DatabaseProbe checks backend liveness for the health endpoint.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
}
