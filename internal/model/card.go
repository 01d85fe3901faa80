package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CardStore defines persistence operations for business cards.
// Update and Delete match on both card id and owner id; a miss on either
// is indistinguishable from an absent card.
type CardStore interface {
	Create(ctx context.Context, card BusinessCard) (BusinessCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (BusinessCard, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]BusinessCard, error)
	Update(ctx context.Context, card BusinessCard) (BusinessCard, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// BusinessCard represents a stored business card. UserID is the owner,
// set at creation time and immutable afterwards.
type BusinessCard struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uuid.UUID `json:"userId"`
}

// CreateCardParams contains parameters to create a card.
type CreateCardParams struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	Company string
}

// UpdateCardParams contains parameters to update a card. UserID is the
// acting identity, not a new owner.
type UpdateCardParams struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	Company string
}
