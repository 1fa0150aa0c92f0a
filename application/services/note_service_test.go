package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/domain/notes"
	appErrors "github.com/CamilaNiebles/sls-assesment/pkg/errors"
)

// MockNoteRepository is a testify mock of ports.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *notes.Note) (*notes.Note, error) {
	args := m.Called(ctx, note)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	if args.Get(0) == nil {
		// the store contract returns the input unchanged on success
		return note, nil
	}
	return args.Get(0).(*notes.Note), nil
}

func (m *MockNoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*notes.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notes.Note), args.Error(1)
}

func (m *MockNoteRepository) UpdateFields(ctx context.Context, ownerID, id string, mask notes.FieldMask) (*notes.Note, error) {
	args := m.Called(ctx, ownerID, id, mask)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notes.Note), args.Error(1)
}

func (m *MockNoteRepository) DeleteByID(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockEventPublisher is a testify mock of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event notes.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestService(repo *MockNoteRepository, publisher *MockEventPublisher) *NoteService {
	if publisher == nil {
		return NewNoteService(repo, nil, nil, zap.NewNop())
	}
	return NewNoteService(repo, publisher, nil, zap.NewNop())
}

func TestNoteService_Create_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*notes.Note")).Return(nil, nil)

	svc := newTestService(mockRepo, nil)

	// Act
	note, err := svc.Create(ctx, "owner-1", "Test", "Content")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "owner-1", note.OwnerID)
	assert.Equal(t, "Test", note.Title)
	assert.Equal(t, "Content", note.Content)
	assert.NotEmpty(t, note.ID)
	_, parseErr := uuid.Parse(note.ID)
	assert.NoError(t, parseErr)
	assert.True(t, note.CreatedAt.Equal(note.UpdatedAt))
	mockRepo.AssertExpectations(t)
}

func TestNoteService_Create_ValidationFailuresSkipStore(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	svc := newTestService(mockRepo, nil)

	tests := []struct {
		name    string
		ownerID string
		title   string
		content string
	}{
		{"empty owner", "", "t", "c"},
		{"empty title", "owner-1", "", "c"},
		{"empty content", "owner-1", "t", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.ownerID, tt.title, tt.content)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))
		})
	}

	mockRepo.AssertNotCalled(t, "Create")
}

func TestNoteService_Create_StoreFailureBecomes500(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("Create", ctx, mock.Anything).
		Return(nil, errors.New("failed to create note: throttled"))

	svc := newTestService(mockRepo, nil)

	_, err := svc.Create(ctx, "owner-1", "Test", "Content")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.StatusOf(err))
	assert.Contains(t, appErrors.GetAppError(err).Message, "throttled")
}

func TestNoteService_Create_PublishFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil, nil)

	mockPub := new(MockEventPublisher)
	mockPub.On("Publish", ctx, mock.MatchedBy(func(e notes.Event) bool {
		return e.EventType() == notes.EventNoteCreated
	})).Return(errors.New("event bus unreachable"))

	svc := newTestService(mockRepo, mockPub)

	_, err := svc.Create(ctx, "owner-1", "Test", "Content")

	assert.NoError(t, err)
	mockPub.AssertExpectations(t)
}

func TestNoteService_ListByOwner_EmptyOwnerRejected(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	svc := newTestService(mockRepo, nil)

	_, err := svc.ListByOwner(ctx, "")

	require.Error(t, err)
	appErr := appErrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Equal(t, "ownerId is required", appErr.Message)
	mockRepo.AssertNotCalled(t, "ListByOwner")
}

func TestNoteService_ListByOwner_EmptySetIsNotAnError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("ListByOwner", ctx, "owner-1").Return([]*notes.Note{}, nil)

	svc := newTestService(mockRepo, nil)

	list, err := svc.ListByOwner(ctx, "owner-1")

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNoteService_Update_Preconditions(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	svc := newTestService(mockRepo, nil)

	_, err := svc.Update(ctx, "", "note-1", notes.FieldMask{notes.TitleField("x")})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	_, err = svc.Update(ctx, "owner-1", "", notes.FieldMask{notes.TitleField("x")})
	assert.Equal(t, http.StatusBadRequest, appErrors.StatusOf(err))

	mockRepo.AssertNotCalled(t, "UpdateFields")
}

func TestNoteService_Update_EmptyMaskIsDelegated(t *testing.T) {
	// A bare touch is legal at the service layer; only the HTTP handler
	// rejects updates naming no fields.
	ctx := context.Background()
	id := uuid.New().String()
	touched, _ := notes.Reconstruct(id, "owner-1", "t", "c",
		"2024-03-01T10:00:00Z", "2024-03-02T10:00:00Z")

	mockRepo := new(MockNoteRepository)
	mockRepo.On("UpdateFields", ctx, "owner-1", id, notes.FieldMask(nil)).
		Return(touched, nil)

	svc := newTestService(mockRepo, nil)

	note, err := svc.Update(ctx, "owner-1", id, nil)

	require.NoError(t, err)
	assert.True(t, note.UpdatedAt.After(note.CreatedAt))
	mockRepo.AssertExpectations(t)
}

func TestNoteService_Update_MissingTargetSurfacesStoreFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("UpdateFields", ctx, "owner-1", "missing-id", mock.Anything).
		Return(nil, errors.New("failed to update note: conditional check failed"))

	svc := newTestService(mockRepo, nil)

	_, err := svc.Update(ctx, "owner-1", "missing-id", notes.FieldMask{notes.TitleField("x")})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.StatusOf(err))
	assert.Contains(t, appErrors.GetAppError(err).Message, "conditional check failed")
}

func TestNoteService_Delete_SuccessRegardlessOfExistence(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("DeleteByID", ctx, "owner-1", "any-id").Return(nil)

	mockPub := new(MockEventPublisher)
	mockPub.On("Publish", ctx, mock.MatchedBy(func(e notes.Event) bool {
		return e.EventType() == notes.EventNoteDeleted && e.AggregateID() == "any-id"
	})).Return(nil)

	svc := newTestService(mockRepo, mockPub)

	err := svc.Delete(ctx, "owner-1", "any-id")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestNoteService_Delete_StoreFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockNoteRepository)
	mockRepo.On("DeleteByID", ctx, "owner-1", "note-1").
		Return(errors.New("failed to delete note: network error"))

	svc := newTestService(mockRepo, nil)

	err := svc.Delete(ctx, "owner-1", "note-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.StatusOf(err))
}

func TestNoteService_CreateThenUpdate_Timestamps(t *testing.T) {
	// updatedAt must strictly follow createdAt across an update round-trip.
	created, err := notes.NewNote(uuid.New().String(), "owner-1", "t", "c",
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	updated, err := notes.Reconstruct(created.ID, created.OwnerID, "t2", created.Content,
		created.CreatedAt.Format(time.RFC3339),
		created.CreatedAt.Add(time.Minute).Format(time.RFC3339))
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}
