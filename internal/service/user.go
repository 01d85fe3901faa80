package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
)

// User manages account profiles. The self-only guard for mutation lives at
// the HTTP boundary; this service trusts the resolved id it is given.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// ListUsers returns public profiles of all registered users.
func (s *User) ListUsers(ctx context.Context) ([]model.Profile, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}

	return profiles, nil
}

// GetUser returns a single public profile.
func (s *User) GetUser(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	return user.Profile(), nil
}

// UpdateUser replaces username, email and password, rehashing the latter.
func (s *User) UpdateUser(ctx context.Context, params model.UpdateUserParams) error {
	user, err := s.userStore.GetByID(ctx, params.ID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Username = params.Username
	user.Email = params.Email
	user.PasswordHash = string(hash)

	if _, err := s.userStore.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User service: user updated",
		"user_id", params.ID)

	return nil
}

// DeleteUser removes the account; owned cards are removed by the store's
// referential cascade.
func (s *User) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User service: user deleted",
		"user_id", id)

	return nil
}
