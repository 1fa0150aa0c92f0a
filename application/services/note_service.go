package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/application/ports"
	"github.com/CamilaNiebles/sls-assesment/domain/notes"
	appErrors "github.com/CamilaNiebles/sls-assesment/pkg/errors"
	"github.com/CamilaNiebles/sls-assesment/pkg/observability"
)

// NoteService orchestrates note operations: it generates ids and timestamps,
// enforces application-level preconditions and classifies store failures into
// status-carrying errors. Transport concerns stay in the handlers.
type NoteService struct {
	repo      ports.NoteRepository
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewNoteService creates a new note service. publisher and metrics may be nil.
func NewNoteService(
	repo ports.NoteRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NoteService {
	return &NoteService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create generates the id and both timestamps server-side and persists the
// note. Title and content arrive already shape-checked by the handler, but
// entity construction re-validates so non-HTTP callers get the same rules.
func (s *NoteService) Create(ctx context.Context, ownerID, title, content string) (*notes.Note, error) {
	start := time.Now()

	note, err := notes.NewNote(uuid.New().String(), ownerID, title, content, time.Now())
	if err != nil {
		return nil, appErrors.NewValidationError(err.Error())
	}

	created, err := s.repo.Create(ctx, note)
	s.metrics.RecordOperation(ctx, "CreateNote", time.Since(start), err)
	if err != nil {
		s.logger.Error("Failed to create note",
			zap.String("ownerID", ownerID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, "create note failed")
	}

	s.publish(ctx, notes.NewNoteCreated(created))

	return created, nil
}

// ListByOwner returns every note for the owner.
func (s *NoteService) ListByOwner(ctx context.Context, ownerID string) ([]*notes.Note, error) {
	start := time.Now()

	if ownerID == "" {
		return nil, appErrors.NewValidationError("ownerId is required")
	}

	list, err := s.repo.ListByOwner(ctx, ownerID)
	s.metrics.RecordOperation(ctx, "ListNotes", time.Since(start), err)
	if err != nil {
		s.logger.Error("Failed to list notes",
			zap.String("ownerID", ownerID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, "list notes failed")
	}

	return list, nil
}

// Update performs a partial update. An empty mask is not rejected here: for
// non-HTTP callers a bare touch of UpdatedAt is a legitimate operation, so
// that rule lives in the handler layer.
func (s *NoteService) Update(ctx context.Context, ownerID, id string, mask notes.FieldMask) (*notes.Note, error) {
	start := time.Now()

	if ownerID == "" {
		return nil, appErrors.NewValidationError("ownerId is required")
	}
	if id == "" {
		return nil, appErrors.NewValidationError("Note id is required")
	}

	updated, err := s.repo.UpdateFields(ctx, ownerID, id, mask)
	s.metrics.RecordOperation(ctx, "UpdateNote", time.Since(start), err)
	if err != nil {
		s.logger.Error("Failed to update note",
			zap.String("ownerID", ownerID),
			zap.String("noteID", id),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, "update note failed")
	}

	s.publish(ctx, notes.NewNoteUpdated(updated))

	return updated, nil
}

// Delete removes the note. It reports success whenever the store call
// returns, whether or not a row actually existed; the store makes no
// not-found guarantee for deletes and neither does this.
func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	start := time.Now()

	err := s.repo.DeleteByID(ctx, ownerID, id)
	s.metrics.RecordOperation(ctx, "DeleteNote", time.Since(start), err)
	if err != nil {
		s.logger.Error("Failed to delete note",
			zap.String("ownerID", ownerID),
			zap.String("noteID", id),
			zap.Error(err),
		)
		return appErrors.Wrap(err, "delete note failed")
	}

	s.publish(ctx, notes.NewNoteDeleted(ownerID, id, time.Now().UTC()))

	return nil
}

// publish sends a lifecycle event. The store write is the unit of atomicity;
// a publish failure is logged and never surfaced to the caller.
func (s *NoteService) publish(ctx context.Context, event notes.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish note event",
			zap.String("eventType", event.EventType()),
			zap.String("noteID", event.AggregateID()),
			zap.Error(err),
		)
	}
}
