package model

import "github.com/google/uuid"

// TokenManager issues and validates stateless session tokens.
// Validation failures are not distinguished: a malformed, tampered or
// expired token all read as "unauthenticated" to the caller.
type TokenManager interface {
	GenerateSessionToken(userID uuid.UUID, email string) (string, error)
	ParseSessionToken(token string) (uuid.UUID, error)
}
