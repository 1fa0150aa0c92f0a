package common

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body for message-only responses. Every failure path
// in the API uses this shape; delete uses it on success too.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps collection responses with an item count.
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError sends an error response with a {"message": ...} body
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}

// RespondList sends a collection response as {"data": [...], "count": n}
func RespondList(w http.ResponseWriter, status int, data interface{}, count int) {
	RespondJSON(w, status, ListResponse{Data: data, Count: count})
}
