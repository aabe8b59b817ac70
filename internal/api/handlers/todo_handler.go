package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dferrandiz/tasklist-be/internal/auth"
	"github.com/dferrandiz/tasklist-be/internal/services"
)

// ToDoHandler handles HTTP requests for to-do items.
type ToDoHandler struct {
	service services.ToDoServiceProvider
}

// NewToDoHandler creates a new ToDoHandler.
func NewToDoHandler(service services.ToDoServiceProvider) *ToDoHandler {
	return &ToDoHandler{service: service}
}

// CreateToDoPayload defines the structure for to-do creation requests.
type CreateToDoPayload struct {
	Content string `json:"content"`
}

// UpdateToDoPayload defines the structure for partial to-do updates. Nil
// fields are left unchanged.
type UpdateToDoPayload struct {
	Content     *string `json:"content,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// Create handles adding a to-do to a task list.
func (h *ToDoHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	taskListID := chi.URLParam(r, "id")

	var payload CreateToDoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	todo, err := h.service.Create(callerID, payload.Content, taskListID)
	if err != nil {
		log.Error().Err(err).Str("task_list_id", taskListID).Msg("Failed to create to-do")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// Update handles a partial update of a to-do.
func (h *ToDoHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	id := chi.URLParam(r, "id")

	var payload UpdateToDoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	todo, err := h.service.Update(callerID, id, payload.Content, payload.IsCompleted)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Delete handles deleting a to-do.
func (h *ToDoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(callerID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
