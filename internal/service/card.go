package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
)

type Card struct {
	cardStore model.CardStore
	userStore model.UserStore
	logger    *logger.Logger
}

func NewCard(
	cardStore model.CardStore,
	userStore model.UserStore,
	logger *logger.Logger,
) *Card {
	return &Card{
		cardStore: cardStore,
		userStore: userStore,
		logger:    logger,
	}
}

// CreateCard stores a new card owned by the acting identity. The owner row
// is re-checked so a still-valid token of a deleted account cannot insert
// orphan cards.
func (s *Card) CreateCard(ctx context.Context, params model.CreateCardParams) (model.BusinessCard, error) {
	_, err := s.userStore.GetByID(ctx, params.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.BusinessCard{}, model.ErrNotFound
	}
	if err != nil {
		return model.BusinessCard{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	card := model.BusinessCard{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Company:   params.Company,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	card, err = s.cardStore.Create(ctx, card)
	if err != nil {
		s.logger.Error("Card service: failed to create card",
			"user_id", params.UserID,
			"error", err.Error())
		return model.BusinessCard{}, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.Info("Card service: card created",
		"card_id", card.ID,
		"user_id", card.UserID)

	return card, nil
}

// GetCard resolves a card by id without an ownership check; single-card
// reads are open to anyone holding the identifier.
func (s *Card) GetCard(ctx context.Context, cardID uuid.UUID) (model.BusinessCard, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return model.BusinessCard{}, err
	}

	return card, nil
}

// ListCards returns only the acting identity's cards.
func (s *Card) ListCards(ctx context.Context, userID uuid.UUID) ([]model.BusinessCard, error) {
	cards, err := s.cardStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by user id: %w", err)
	}

	return cards, nil
}

// UpdateCard replaces the editable fields if the acting identity owns the
// card. A cross-owner attempt comes back as not found.
func (s *Card) UpdateCard(ctx context.Context, params model.UpdateCardParams) (model.BusinessCard, error) {
	card, err := s.cardStore.Update(ctx, model.BusinessCard{
		ID:      params.ID,
		UserID:  params.UserID,
		Name:    params.Name,
		Email:   params.Email,
		Phone:   params.Phone,
		Company: params.Company,
	})
	if err != nil {
		return model.BusinessCard{}, err
	}

	s.logger.Info("Card service: card updated",
		"card_id", card.ID,
		"user_id", card.UserID)

	return card, nil
}

// DeleteCard permanently removes the card under the same ownership condition.
func (s *Card) DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error {
	if err := s.cardStore.Delete(ctx, cardID, userID); err != nil {
		return err
	}

	s.logger.Info("Card service: card deleted",
		"card_id", cardID,
		"user_id", userID)

	return nil
}
