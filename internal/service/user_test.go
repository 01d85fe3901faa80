package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/duckbat/ScanCard/internal/model"
	"github.com/duckbat/ScanCard/internal/testutil"
)

func TestUserService_ListUsers(t *testing.T) {
	userStore := &MockUserStore{}
	userStore.On("List", mock.Anything).Return([]model.User{
		{ID: uuid.New(), Username: "alice", Email: "alice@x.com", PasswordHash: "hash", CreatedAt: time.Now()},
		{ID: uuid.New(), Username: "bob", Email: "bob@x.com", PasswordHash: "hash", CreatedAt: time.Now()},
	}, nil)

	svc := NewUser(userStore, testutil.MakeNoopLogger())

	profiles, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].Username)
}

func TestUserService_GetUser(t *testing.T) {
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		userStore := &MockUserStore{}
		userStore.On("GetByID", mock.Anything, userID).Return(model.User{
			ID:           userID,
			Username:     "alice",
			Email:        "alice@x.com",
			PasswordHash: "hash",
		}, nil)

		svc := NewUser(userStore, testutil.MakeNoopLogger())

		profile, err := svc.GetUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
	})

	t.Run("absent", func(t *testing.T) {
		userStore := &MockUserStore{}
		userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

		svc := NewUser(userStore, testutil.MakeNoopLogger())

		_, err := svc.GetUser(context.Background(), userID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	userID := uuid.New()

	userStore := &MockUserStore{}
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{
		ID:           userID,
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "oldhash",
	}, nil)
	userStore.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == userID &&
			u.Username == "alice2" &&
			u.Email == "alice2@x.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpw")) == nil
	})).Return(model.User{ID: userID}, nil)

	svc := NewUser(userStore, testutil.MakeNoopLogger())

	err := svc.UpdateUser(context.Background(), model.UpdateUserParams{
		ID:       userID,
		Username: "alice2",
		Email:    "alice2@x.com",
		Password: "newpw",
	})
	require.NoError(t, err)
	userStore.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	userID := uuid.New()

	userStore := &MockUserStore{}
	userStore.On("Delete", mock.Anything, userID).Return(nil)

	svc := NewUser(userStore, testutil.MakeNoopLogger())

	require.NoError(t, svc.DeleteUser(context.Background(), userID))
}
