package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/duckbat/ScanCard/internal/model"
)

var _ model.CardStore = (*CardRepository)(nil)

type CardRepository struct {
	db *Connection
}

func NewCardRepository(db *Connection) *CardRepository {
	return &CardRepository{
		db: db,
	}
}

func (r *CardRepository) Create(ctx context.Context, card model.BusinessCard) (model.BusinessCard, error) {
	query := `INSERT INTO business_cards (id, user_id, name, email, phone, company, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, user_id, name, email, phone, company, created_at, updated_at`

	var savedCard model.BusinessCard
	err := r.db.QueryRow(ctx, query,
		card.ID, card.UserID, card.Name, card.Email, card.Phone, card.Company,
		card.CreatedAt, card.UpdatedAt,
	).Scan(
		&savedCard.ID, &savedCard.UserID, &savedCard.Name, &savedCard.Email,
		&savedCard.Phone, &savedCard.Company, &savedCard.CreatedAt, &savedCard.UpdatedAt,
	)
	if err != nil {
		return model.BusinessCard{}, fmt.Errorf("failed to create card: %w", err)
	}

	return savedCard, nil
}

// GetByID is an open read: anyone holding the card id can resolve it.
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (model.BusinessCard, error) {
	query := `SELECT id, user_id, name, email, phone, company, created_at, updated_at
			  FROM business_cards WHERE id = $1`

	var card model.BusinessCard
	err := r.db.QueryRow(ctx, query, id).Scan(
		&card.ID, &card.UserID, &card.Name, &card.Email,
		&card.Phone, &card.Company, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BusinessCard{}, model.ErrNotFound
		}
		return model.BusinessCard{}, fmt.Errorf("failed to get card by id: %w", err)
	}

	return card, nil
}

func (r *CardRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.BusinessCard, error) {
	query := `SELECT id, user_id, name, email, phone, company, created_at, updated_at
			  FROM business_cards
			  WHERE user_id = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards by user id: %w", err)
	}
	defer rows.Close()

	var cards []model.BusinessCard
	for rows.Next() {
		var card model.BusinessCard
		err := rows.Scan(
			&card.ID, &card.UserID, &card.Name, &card.Email,
			&card.Phone, &card.Company, &card.CreatedAt, &card.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// Update replaces the four editable fields. The owner match lives in the
// WHERE clause so a cross-owner attempt reads as an absent row.
func (r *CardRepository) Update(ctx context.Context, card model.BusinessCard) (model.BusinessCard, error) {
	query := `UPDATE business_cards
			  SET name = $3, email = $4, phone = $5, company = $6, updated_at = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING id, user_id, name, email, phone, company, created_at, updated_at`

	var savedCard model.BusinessCard
	err := r.db.QueryRow(ctx, query,
		card.ID, card.UserID, card.Name, card.Email, card.Phone, card.Company,
	).Scan(
		&savedCard.ID, &savedCard.UserID, &savedCard.Name, &savedCard.Email,
		&savedCard.Phone, &savedCard.Company, &savedCard.CreatedAt, &savedCard.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.BusinessCard{}, model.ErrNotFound
		}
		return model.BusinessCard{}, fmt.Errorf("failed to update card: %w", err)
	}

	return savedCard, nil
}

func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	const query = `DELETE FROM business_cards WHERE id = $1 AND user_id = $2`
	cmd, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
