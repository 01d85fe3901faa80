package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcontext "github.com/duckbat/ScanCard/internal/api/http/context"
	"github.com/duckbat/ScanCard/internal/testutil"
	"github.com/duckbat/ScanCard/internal/token"
)

func TestAuthenticate_Handle(t *testing.T) {
	tokenManager := token.NewJWT("test-secret")
	contextManager := appcontext.NewManager()
	mw := NewAuthenticate(tokenManager, contextManager, testutil.MakeNoopLogger())

	userID := uuid.New()
	validToken, err := tokenManager.GenerateSessionToken(userID, "user@example.com")
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = contextManager.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		authorization  string
		wantStatus     int
		wantMessage    string
		wantNextCalled bool
	}{
		{
			name:          "missing header",
			authorization: "",
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Missing authorization token",
		},
		{
			name:          "garbage token",
			authorization: "Bearer not-a-jwt",
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Invalid authorization token",
		},
		{
			name:          "wrong secret",
			authorization: "Bearer " + signWithSecret(t, "other-secret", userID),
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   "Invalid authorization token",
		},
		{
			name:           "valid token",
			authorization:  "Bearer " + validToken,
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotOK = uuid.Nil, false

			req := httptest.NewRequest(http.MethodGet, "/api/businesscards", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			mw.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantNextCalled {
				assert.True(t, gotOK)
				assert.Equal(t, userID, gotUserID)
				return
			}

			assert.False(t, gotOK)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, float64(http.StatusUnauthorized), body["statusCode"])
		})
	}
}

func signWithSecret(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()
	signed, err := token.NewJWT(secret).GenerateSessionToken(userID, "user@example.com")
	require.NoError(t, err)
	return signed
}
