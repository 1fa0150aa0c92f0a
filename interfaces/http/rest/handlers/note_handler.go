package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/domain/notes"
	"github.com/CamilaNiebles/sls-assesment/pkg/auth"
	"github.com/CamilaNiebles/sls-assesment/pkg/common"
	appErrors "github.com/CamilaNiebles/sls-assesment/pkg/errors"
	"github.com/CamilaNiebles/sls-assesment/pkg/utils"
)

// NoteService is the slice of the application service the handlers need.
type NoteService interface {
	Create(ctx context.Context, ownerID, title, content string) (*notes.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*notes.Note, error)
	Update(ctx context.Context, ownerID, id string, mask notes.FieldMask) (*notes.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// CreateNoteRequest is the create payload
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest is the partial update payload. Pointer fields separate
// "absent" from "present but empty": only fields the client actually sent
// make it into the update.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// NoteHandler handles note CRUD requests
type NoteHandler struct {
	service NoteService
	logger  *zap.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(service NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		logger:  logger,
	}
}

// CreateNote handles POST /notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.service.Create(r.Context(), ownerID, req.Title, req.Content)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, note)
}

// ListNotes handles GET /notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondList(w, http.StatusOK, result, len(result))
}

// UpdateNote handles PUT /notes/{noteID}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := chi.URLParam(r, "noteID")
	if noteID == "" {
		common.RespondError(w, http.StatusBadRequest, "Note id is required")
		return
	}

	var req UpdateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	mask := notes.FieldMask{}
	if req.Title != nil {
		mask = append(mask, notes.TitleField(*req.Title))
	}
	if req.Content != nil {
		mask = append(mask, notes.ContentField(*req.Content))
	}
	if mask.IsEmpty() {
		common.RespondError(w, http.StatusBadRequest, "At least one field (title or content) must be provided")
		return
	}

	note, err := h.service.Update(r.Context(), ownerID, noteID, mask)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/{noteID}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := chi.URLParam(r, "noteID")
	if noteID == "" {
		common.RespondError(w, http.StatusBadRequest, "Note id is required")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, noteID); err != nil {
		h.respondServiceError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.MessageResponse{Message: "Note deleted successfully"})
}

// decodeBody reads and decodes a JSON request body, writing the error
// response itself. A missing body and a malformed one get distinct messages.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		common.RespondError(w, http.StatusBadRequest, "Request body is required")
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}

	return true
}

// respondServiceError maps a service error onto the wire. Only the message
// reaches the client; the classified type and cause stay in the logs.
func (h *NoteHandler) respondServiceError(w http.ResponseWriter, err error) {
	status := appErrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Note operation failed", zap.Error(err))
	}

	message := err.Error()
	if appErr := appErrors.GetAppError(err); appErr != nil {
		message = appErr.Message
	}
	common.RespondError(w, status, message)
}
