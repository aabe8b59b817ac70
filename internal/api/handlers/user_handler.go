package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dferrandiz/tasklist-be/internal/auth"
	"github.com/dferrandiz/tasklist-be/internal/services"
)

// UserHandler handles HTTP requests for signup, signin and user lookup.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Avatar   *string `json:"avatar,omitempty"`
}

// SigninPayload defines the structure for login requests.
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration and returns the user with a token.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.Password == "" || payload.Name == "" {
		http.Error(w, "email, password and name are required", http.StatusBadRequest)
		return
	}

	authUser, err := h.service.Signup(payload.Email, payload.Password, payload.Name, payload.Avatar)
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to sign up user")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authUser)
}

// Signin handles user authentication and token issuance.
func (h *UserHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var payload SigninPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	authUser, err := h.service.Signin(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		writeError(w, err)
		return
	}

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    authUser.Token,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	writeJSON(w, http.StatusOK, authUser)
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	callerID := auth.CallerID(r.Context())

	user, err := h.service.GetByID(callerID, callerID)
	if err != nil {
		log.Error().Err(err).Str("user_id", callerID).Msg("User from token not found")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
