// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/crypto"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher      crypto.PasswordHasher
	validator   validators.Validator
	idGenerator IDGenerator

	// jwtParams carries the sign key, algorithm, issuer, lifetime and clock
	// shared by token creation and parsing.
	jwtParams utils.JWTParams

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg. now may be nil, in which case
// time.Now is used.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	validator validators.Validator,
	idGenerator IDGenerator,
	cfg config.App,
	now func() time.Time,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validator,
		idGenerator:    idGenerator,
		jwtParams: utils.JWTParams{
			Issuer:    cfg.TokenIssuer,
			SignKey:   cfg.TokenSignKey,
			Algorithm: cfg.TokenAlgorithm,
			Duration:  cfg.TokenDuration,
			Now:       now,
		},
		logger: logger,
	}
}

// RegisterUser creates a new user account.
//
// Returns the persisted user or:
//   - ErrValidation wrapping the violated rule (ErrInvalidRole for a bad role).
//   - store.ErrUsernameAlreadyExists, checked before the email.
//   - store.ErrEmailAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("invalid registration data")
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w: %w", ErrValidation, ErrInvalidRole, err)
	}

	if err = a.ensureAvailable(ctx, req.Username, req.Email); err != nil {
		return models.User{}, err
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		ID:           a.idGenerator.Generate(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		Tags:         uniqueTags(req.Tags),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", registeredUser.ID).Str("role", string(role)).Msg("user registered")
	return registeredUser, nil
}

// ensureAvailable reports the first uniqueness conflict for a new account.
// The store constraints still catch races between this check and the insert.
func (a *authService) ensureAvailable(ctx context.Context, username, email string) error {
	_, err := a.userRepository.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		return store.ErrUsernameAlreadyExists
	case !errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("user search by username failed: %w", err)
	}

	_, err = a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("user search by email failed: %w", err)
	}

	return nil
}

// Login authenticates an existing user.
//
// Returns the authenticated user record or:
//   - ErrValidation if username or password is empty.
//   - ErrInvalidCredentials for an unknown username or a wrong password.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("username", req.Username).Msg("login for unknown user")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.Verify(req.Password, foundUser.PasswordHash) {
		log.Debug().Str("user_id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.jwtParams, models.Principal{
		Username: user.Username,
		ID:       user.ID,
		Role:     user.Role,
	})
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed, missing claims) is normalised to
// ErrAuthenticationFailed so that callers do not inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.jwtParams)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrAuthenticationFailed
	}

	return token, nil
}
