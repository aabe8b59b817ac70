package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dferrandiz/tasklist-be/internal/auth"
	"github.com/dferrandiz/tasklist-be/internal/services"
)

// TaskListHandler handles HTTP requests for task lists.
type TaskListHandler struct {
	service services.TaskListServiceProvider
}

// NewTaskListHandler creates a new TaskListHandler.
func NewTaskListHandler(service services.TaskListServiceProvider) *TaskListHandler {
	return &TaskListHandler{service: service}
}

// TitlePayload defines the structure for create and rename requests.
type TitlePayload struct {
	Title string `json:"title"`
}

// MemberPayload defines the structure for add-member requests.
type MemberPayload struct {
	UserID string `json:"userId"`
}

// GetMine handles the request for the caller's own task lists.
func (h *TaskListHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	lists, err := h.service.MyTaskLists(callerID)
	if err != nil {
		log.Error().Err(err).Str("user_id", callerID).Msg("Failed to list task lists")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

// Get handles retrieving a single task list by id.
func (h *TaskListHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	id := chi.URLParam(r, "id")

	list, err := h.service.Get(callerID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Create handles creating a new task list.
func (h *TaskListHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	var payload TitlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	list, err := h.service.Create(callerID, payload.Title)
	if err != nil {
		log.Error().Err(err).Str("user_id", callerID).Msg("Failed to create task list")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, list)
}

// Update handles renaming an existing task list.
func (h *TaskListHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	id := chi.URLParam(r, "id")

	var payload TitlePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	list, err := h.service.UpdateTitle(callerID, id, payload.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Delete handles deleting a task list.
func (h *TaskListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(callerID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember handles adding a user to a task list's member set.
func (h *TaskListHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())
	id := chi.URLParam(r, "id")

	var payload MemberPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	list, err := h.service.AddMember(callerID, id, payload.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}
