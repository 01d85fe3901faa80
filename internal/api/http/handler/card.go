package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
)

// CardService defines ownership-scoped card operations.
type CardService interface {
	CreateCard(ctx context.Context, params model.CreateCardParams) (model.BusinessCard, error)
	GetCard(ctx context.Context, cardID uuid.UUID) (model.BusinessCard, error)
	ListCards(ctx context.Context, userID uuid.UUID) ([]model.BusinessCard, error)
	UpdateCard(ctx context.Context, params model.UpdateCardParams) (model.BusinessCard, error)
	DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error
}

// ExportService renders a card into downloadable formats.
type ExportService interface {
	ToVCard(card model.BusinessCard) []byte
	ToCSV(card model.BusinessCard) []byte
	ToQRCode(card model.BusinessCard) ([]byte, error)
}

// Card handles HTTP endpoints for business cards.
type Card struct {
	cardService    CardService
	exportService  ExportService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewCard creates a new Card handler.
func NewCard(
	cardService CardService,
	exportService ExportService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Card {
	return &Card{
		cardService:    cardService,
		exportService:  exportService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type cardRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

func (r cardRequest) trimmed() cardRequest {
	return cardRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
		Company: strings.TrimSpace(r.Company),
	}
}

func (r cardRequest) hasEmptyField() bool {
	return r.Name == "" || r.Email == "" || r.Phone == "" || r.Company == ""
}

// List returns the caller's cards, never anyone else's.
func (h *Card) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "User ID not found in token")
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), userID)
	if err != nil {
		h.logger.Error("Card handler: failed to list cards",
			"user_id", userID,
			"error", err.Error())
		writeInternalError(w, "Error retrieving business cards", err)
		return
	}

	if cards == nil {
		cards = []model.BusinessCard{}
	}

	writeData(w, http.StatusOK, "Business cards retrieved successfully", cards)
}

// Get is an open read: any caller holding a card id can resolve it.
func (h *Card) Get(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookupCard(w, r)
	if !ok {
		return
	}

	writeData(w, http.StatusOK, "Business card retrieved successfully", card)
}

// Create stores a new card owned by the caller.
func (h *Card) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "User ID not found in token")
		return
	}

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req = req.trimmed()
	if req.hasEmptyField() {
		writeMessage(w, http.StatusBadRequest, "Name, email, phone and company are required")
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), model.CreateCardParams{
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		h.logger.Error("Card handler: failed to create card",
			"user_id", userID,
			"error", err.Error())
		writeInternalError(w, "Error creating business card", err)
		return
	}

	h.logger.Info("Card handler: card created",
		"card_id", card.ID,
		"user_id", userID)

	w.Header().Set("Location", fmt.Sprintf("/api/businesscards/%s", card.ID))
	writeData(w, http.StatusCreated, "Business card created successfully", card)
}

// Update replaces the editable fields of a card the caller owns. A card
// that is absent or owned by someone else reads as not found.
func (h *Card) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "User ID not found in token")
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid business card ID")
		return
	}

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req = req.trimmed()
	if req.hasEmptyField() {
		writeMessage(w, http.StatusBadRequest, "Name, email, phone and company are required")
		return
	}

	_, err = h.cardService.UpdateCard(r.Context(), model.UpdateCardParams{
		ID:      cardID,
		UserID:  userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Business card not found")
		case errors.Is(err, model.ErrConflict):
			writeMessage(w, http.StatusConflict, "Concurrency conflict")
		default:
			h.logger.Error("Card handler: failed to update card",
				"card_id", cardID,
				"user_id", userID,
				"error", err.Error())
			writeInternalError(w, "Error updating business card", err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Business card updated successfully")
}

// Delete permanently removes a card the caller owns.
func (h *Card) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusBadRequest, "User ID not found in token")
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid business card ID")
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), cardID, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Business card not found")
			return
		}
		h.logger.Error("Card handler: failed to delete card",
			"card_id", cardID,
			"user_id", userID,
			"error", err.Error())
		writeInternalError(w, "Error deleting business card", err)
		return
	}

	writeMessage(w, http.StatusOK, "Business card deleted successfully")
}

// ExportCSV serves the card as a CSV attachment. Like Get, it is open to
// anyone holding the card id.
func (h *Card) ExportCSV(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookupCard(w, r)
	if !ok {
		return
	}

	serveFile(w, h.exportService.ToCSV(card), "text/csv", fmt.Sprintf("%s-card.csv", card.Name))
}

// ExportVCard serves the card as a .vcf attachment.
func (h *Card) ExportVCard(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookupCard(w, r)
	if !ok {
		return
	}

	serveFile(w, h.exportService.ToVCard(card), "text/vcard", fmt.Sprintf("%s.vcf", card.Name))
}

// ExportQR serves a PNG QR code wrapping the card's vCard payload.
func (h *Card) ExportQR(w http.ResponseWriter, r *http.Request) {
	card, ok := h.lookupCard(w, r)
	if !ok {
		return
	}

	png, err := h.exportService.ToQRCode(card)
	if err != nil {
		h.logger.Error("Card handler: failed to render qr code",
			"card_id", card.ID,
			"error", err.Error())
		writeInternalError(w, "Error exporting to QR code", err)
		return
	}

	serveFile(w, png, "image/png", fmt.Sprintf("%s-qr.png", card.Name))
}

// lookupCard resolves the {id} route parameter to a card, writing the
// error response itself on failure.
func (h *Card) lookupCard(w http.ResponseWriter, r *http.Request) (model.BusinessCard, bool) {
	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid business card ID")
		return model.BusinessCard{}, false
	}

	card, err := h.cardService.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Business card not found")
			return model.BusinessCard{}, false
		}
		h.logger.Error("Card handler: failed to get card",
			"card_id", cardID,
			"error", err.Error())
		writeInternalError(w, "Error retrieving business card", err)
		return model.BusinessCard{}, false
	}

	return card, true
}

func serveFile(w http.ResponseWriter, content []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
