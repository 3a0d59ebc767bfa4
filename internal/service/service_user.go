// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/crypto"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

type userService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	validator validators.Validator,
	logger *logger.Logger,
) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validator,
		logger:         logger,
	}
}

func (s *userService) GetInfo(ctx context.Context, principal models.Principal) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, principal.ID)
	if err != nil {
		return models.User{}, selfServiceError(err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, principal models.Principal, req models.UpdateProfileRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := s.userRepository.UpdateProfile(ctx, principal.ID, req.FirstName, req.LastName)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", principal.ID).Msg("profile update failed")
		return models.User{}, selfServiceError(err)
	}

	return user, nil
}

// ChangePassword validates the request before touching the store, so an
// unchanged password is reported without checking the current one.
func (s *userService) ChangePassword(ctx context.Context, principal models.Principal, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := s.userRepository.FindUserByID(ctx, principal.ID)
	if err != nil {
		return selfServiceError(err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		log.Debug().Str("user_id", user.ID).Msg("wrong current password")
		return ErrWrongPassword
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = s.userRepository.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("password update failed")
		return selfServiceError(err)
	}

	log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *userService) AddTags(ctx context.Context, principal models.Principal, tags []string) error {
	tags, err := s.validateTags(ctx, tags)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		_, err = s.GetInfo(ctx, principal)
		return err
	}

	if err = s.userRepository.AddTags(ctx, principal.ID, tags); err != nil {
		return selfServiceError(err)
	}
	return nil
}

func (s *userService) RemoveTags(ctx context.Context, principal models.Principal, tags []string) error {
	tags, err := s.validateTags(ctx, tags)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		_, err = s.GetInfo(ctx, principal)
		return err
	}

	if err = s.userRepository.RemoveTags(ctx, principal.ID, tags); err != nil {
		return selfServiceError(err)
	}
	return nil
}

func (s *userService) validateTags(ctx context.Context, tags []string) ([]string, error) {
	if err := s.validator.Validate(ctx, models.TagsRequest{Tags: tags}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return uniqueTags(tags), nil
}

func (s *userService) ListUsers(ctx context.Context, principal models.Principal) ([]models.User, error) {
	if err := Authorize(&principal, PolicyAdmin, ""); err != nil {
		return nil, err
	}

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}
	return users, nil
}

// DeleteUser removes the account with id. The user's blogs are kept.
func (s *userService) DeleteUser(ctx context.Context, principal models.Principal, id string) error {
	log := logger.FromContext(ctx)

	if !utils.IsUUID(id) {
		return store.ErrUserNotFound
	}

	target, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err = Authorize(&principal, PolicyAdmin, target.ID); err != nil {
		return err
	}

	if err = s.userRepository.DeleteUser(ctx, target.ID); err != nil {
		log.Err(err).Str("user_id", target.ID).Msg("user deletion failed")
		return err
	}

	log.Info().Str("user_id", target.ID).Str("admin_id", principal.ID).Msg("user deleted")
	return nil
}

// selfServiceError maps a missing caller account to an authentication
// failure: the token outlived its user.
func selfServiceError(err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrAuthenticationFailed
	}
	return err
}
