package context

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// userIDKey is the request-context key holding the authenticated user id.
const userIDKey contextKey = "user_id"

// Manager stores and retrieves the authenticated user id on a request
// context. Handlers never read the Authorization header themselves.
type Manager struct{}

// NewManager creates a new request context manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a child context carrying the user id.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the user id set by the authentication
// middleware. The second return is false on unauthenticated requests.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
