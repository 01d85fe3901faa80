package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
)

// AuthResult is what a successful registration or login yields: a session
// token and the profile fields the client shows.
type AuthResult struct {
	Token    string
	Username string
	Email    string
}

type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a user with a bcrypt password hash and immediately
// issues a session token, as if a login had occurred.
func (a *Auth) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", username,
		"email", email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) || errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("Auth service: registration rejected, duplicate identity",
				"username", username,
				"email", email)
			return AuthResult{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return AuthResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenManager.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"username", user.Username)

	return AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}

// Login verifies the password against the stored hash and issues a session
// token. Unknown email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (AuthResult, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return AuthResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		a.logger.Info("Auth service: password mismatch",
			"email", email)
		return AuthResult{}, model.ErrInvalidCredentials
	}

	token, err := a.tokenManager.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}
