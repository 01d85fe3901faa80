package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
)

// UserService defines profile operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.Profile, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.Profile, error)
	UpdateUser(ctx context.Context, params model.UpdateUserParams) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// User handles HTTP endpoints for account profiles. Mutation is self-only:
// the path id must match the authenticated identity.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// List returns all public profiles.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("User handler: failed to list users",
			"error", err.Error())
		writeInternalError(w, "Error retrieving users", err)
		return
	}

	if profiles == nil {
		profiles = []model.Profile{}
	}

	writeJSON(w, http.StatusOK, profiles)
}

// Get returns a single public profile.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("User handler: failed to get user",
			"user_id", userID,
			"error", err.Error())
		writeInternalError(w, "Error retrieving user", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update replaces the caller's own username, email and password.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username, email and password are required")
		return
	}

	err := h.userService.UpdateUser(r.Context(), model.UpdateUserParams{
		ID:       userID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, model.ErrUsernameTaken), errors.Is(err, model.ErrEmailTaken):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("User handler: failed to update user",
				"user_id", userID,
				"error", err.Error())
			writeInternalError(w, "Error updating user", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "User updated successfully")
}

// Delete removes the caller's own account; their cards go with it.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("User handler: failed to delete user",
			"user_id", userID,
			"error", err.Error())
		writeInternalError(w, "Error deleting user", err)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

// requireSelf parses the {id} route parameter and rejects the request with
// 403 unless it names the authenticated identity.
func (h *User) requireSelf(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}

	actorID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "User ID not found in token")
		return uuid.Nil, false
	}

	if actorID != userID {
		writeMessage(w, http.StatusForbidden, "Forbidden")
		return uuid.Nil, false
	}

	return userID, true
}
