package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
)

// TokenParser resolves a user id from a bearer token.
type TokenParser interface {
	ParseSessionToken(token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user id into the
// request context. Missing, malformed, tampered and expired tokens all
// produce the same 401 response.
type Authenticate struct {
	tokenParser    TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenParser TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		tokenParser:    tokenParser,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle wraps a handler with bearer token authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		userID, err := m.authenticateUser(tokenString)
		if err != nil {
			writeUnauthorized(w, err.Error())
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticateUser(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, errMissingToken
	}

	userID, err := m.tokenParser.ParseSessionToken(tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return uuid.Nil, errInvalidToken
	}

	if userID == uuid.Nil {
		return uuid.Nil, errInvalidToken
	}

	return userID, nil
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errMissingToken authError = "Missing authorization token"
	errInvalidToken authError = "Invalid authorization token"
)

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":    message,
		"statusCode": http.StatusUnauthorized,
	})
}
