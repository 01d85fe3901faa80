package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duckbat/ScanCard/internal/model"
	"github.com/duckbat/ScanCard/internal/testutil"
)

// MockCardStore mocks the CardStore interface
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card model.BusinessCard) (model.BusinessCard, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(model.BusinessCard), args.Error(1)
}

func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (model.BusinessCard, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.BusinessCard), args.Error(1)
}

func (m *MockCardStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.BusinessCard, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.BusinessCard), args.Error(1)
}

func (m *MockCardStore) Update(ctx context.Context, card model.BusinessCard) (model.BusinessCard, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(model.BusinessCard), args.Error(1)
}

func (m *MockCardStore) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func TestCardService_CreateCard(t *testing.T) {
	ownerID := uuid.New()

	t.Run("owner and id are server assigned", func(t *testing.T) {
		cardStore := &MockCardStore{}
		userStore := &MockUserStore{}

		userStore.On("GetByID", mock.Anything, ownerID).Return(model.User{ID: ownerID}, nil)
		cardStore.On("Create", mock.Anything, mock.MatchedBy(func(c model.BusinessCard) bool {
			return c.UserID == ownerID && c.ID != uuid.Nil && c.Name == "Bob" && !c.CreatedAt.IsZero()
		})).Return(model.BusinessCard{ID: uuid.New(), UserID: ownerID, Name: "Bob"}, nil)

		svc := NewCard(cardStore, userStore, testutil.MakeNoopLogger())

		card, err := svc.CreateCard(context.Background(), model.CreateCardParams{
			UserID:  ownerID,
			Name:    "Bob",
			Email:   "bob@x.com",
			Phone:   "123",
			Company: "Acme",
		})
		require.NoError(t, err)
		assert.Equal(t, ownerID, card.UserID)
		cardStore.AssertExpectations(t)
	})

	t.Run("deleted account cannot create", func(t *testing.T) {
		cardStore := &MockCardStore{}
		userStore := &MockUserStore{}

		userStore.On("GetByID", mock.Anything, ownerID).Return(model.User{}, model.ErrNotFound)

		svc := NewCard(cardStore, userStore, testutil.MakeNoopLogger())

		_, err := svc.CreateCard(context.Background(), model.CreateCardParams{UserID: ownerID, Name: "Bob"})
		require.ErrorIs(t, err, model.ErrNotFound)
		cardStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCardService_GetCard(t *testing.T) {
	cardID := uuid.New()

	t.Run("open read by id", func(t *testing.T) {
		cardStore := &MockCardStore{}
		cardStore.On("GetByID", mock.Anything, cardID).Return(model.BusinessCard{ID: cardID, Name: "Bob"}, nil)

		svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

		card, err := svc.GetCard(context.Background(), cardID)
		require.NoError(t, err)
		assert.Equal(t, "Bob", card.Name)
	})

	t.Run("absent card", func(t *testing.T) {
		cardStore := &MockCardStore{}
		cardStore.On("GetByID", mock.Anything, cardID).Return(model.BusinessCard{}, model.ErrNotFound)

		svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

		_, err := svc.GetCard(context.Background(), cardID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCardService_ListCards(t *testing.T) {
	ownerID := uuid.New()
	cardStore := &MockCardStore{}
	cardStore.On("GetByUserID", mock.Anything, ownerID).Return([]model.BusinessCard{
		{ID: uuid.New(), UserID: ownerID, Name: "Bob", CreatedAt: time.Now()},
	}, nil)

	svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

	cards, err := svc.ListCards(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, ownerID, cards[0].UserID)
}

func TestCardService_UpdateCard(t *testing.T) {
	cardID := uuid.New()
	ownerID := uuid.New()

	t.Run("cross owner update is not found", func(t *testing.T) {
		other := uuid.New()
		cardStore := &MockCardStore{}
		cardStore.On("Update", mock.Anything, mock.MatchedBy(func(c model.BusinessCard) bool {
			return c.ID == cardID && c.UserID == other
		})).Return(model.BusinessCard{}, model.ErrNotFound)

		svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

		_, err := svc.UpdateCard(context.Background(), model.UpdateCardParams{ID: cardID, UserID: other, Name: "Mallory"})
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("owner update passes fields through", func(t *testing.T) {
		cardStore := &MockCardStore{}
		cardStore.On("Update", mock.Anything, mock.MatchedBy(func(c model.BusinessCard) bool {
			return c.ID == cardID && c.UserID == ownerID && c.Name == "Robert"
		})).Return(model.BusinessCard{ID: cardID, UserID: ownerID, Name: "Robert"}, nil)

		svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

		card, err := svc.UpdateCard(context.Background(), model.UpdateCardParams{
			ID:     cardID,
			UserID: ownerID,
			Name:   "Robert",
			Email:  "bob@x.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Robert", card.Name)
	})
}

func TestCardService_DeleteCard(t *testing.T) {
	cardID := uuid.New()
	ownerID := uuid.New()

	t.Run("cross owner delete is not found", func(t *testing.T) {
		other := uuid.New()
		cardStore := &MockCardStore{}
		cardStore.On("Delete", mock.Anything, cardID, other).Return(model.ErrNotFound)

		svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

		require.ErrorIs(t, svc.DeleteCard(context.Background(), cardID, other), model.ErrNotFound)
	})

	t.Run("owner delete succeeds", func(t *testing.T) {
		cardStore := &MockCardStore{}
		cardStore.On("Delete", mock.Anything, cardID, ownerID).Return(nil)

		svc := NewCard(cardStore, &MockUserStore{}, testutil.MakeNoopLogger())

		require.NoError(t, svc.DeleteCard(context.Background(), cardID, ownerID))
	})
}
