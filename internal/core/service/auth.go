package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"taskapi/internal/core/domain"
	"taskapi/internal/core/model/request"
	"taskapi/internal/core/model/response"
	"taskapi/internal/core/port"
	tel "taskapi/internal/core/telemetry"
)

type AuthService struct {
	users     port.UserRepository
	hasher    port.PasswordHasher
	tokens    port.TokenIssuer
	telemetry port.Telemetry
}

func NewAuthService(users port.UserRepository, hasher port.PasswordHasher, tokens port.TokenIssuer, telemetry port.Telemetry) *AuthService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		telemetry: telemetry,
	}
}

// Register checks the username first and relies on the store's unique index
// for the race between two concurrent registrations.
func (as *AuthService) Register(ctx context.Context, cmd request.RegisterCommand) (response.AuthResponse, error) {
	taken, err := as.users.UsernameExists(ctx, cmd.Username)

	if err != nil {
		return response.AuthResponse{}, err
	}

	if taken {
		return response.AuthResponse{}, domain.NewConflictError(fmt.Sprintf("username %q is already taken", cmd.Username))
	}

	if strings.TrimSpace(cmd.Password) == "" {
		return response.AuthResponse{}, domain.NewValidationError("password", "password cannot be empty")
	}

	hash, err := as.hasher.Hash(cmd.Password)

	if err != nil {
		return response.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := domain.NewUser(cmd.Username, hash)

	if err != nil {
		return response.AuthResponse{}, err
	}

	saved, err := as.users.Add(ctx, user)

	if err != nil {
		return response.AuthResponse{}, err
	}

	as.telemetry.RecordBusinessEvent(ctx, "registered", "user", saved.ID().String(), nil)

	return as.issue(saved)
}

// Login fails with the same error whether the username is unknown or the
// password is wrong.
func (as *AuthService) Login(ctx context.Context, cmd request.LoginCommand) (response.AuthResponse, error) {
	user, err := as.users.GetByUsername(ctx, cmd.Username)

	if err != nil {
		return response.AuthResponse{}, err
	}

	if user == nil {
		slog.InfoContext(ctx, "Auth#Login", "outcome", "unknown_username")
		return response.AuthResponse{}, domain.NewAuthenticationError()
	}

	if !user.VerifyPassword(cmd.Password, as.hasher.Verify) {
		slog.InfoContext(ctx, "Auth#Login", "outcome", "password_mismatch", "user_id", user.ID())
		return response.AuthResponse{}, domain.NewAuthenticationError()
	}

	as.telemetry.RecordBusinessEvent(ctx, "logged_in", "user", user.ID().String(), nil)

	return as.issue(user)
}

func (as *AuthService) issue(user *domain.User) (response.AuthResponse, error) {
	token, err := as.tokens.Issue(user.ID(), user.Username())

	if err != nil {
		return response.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return response.AuthResponse{
		Token:     token.Value,
		Username:  user.Username(),
		ExpiresAt: token.ExpiresAt,
	}, nil
}
