// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-blog-api/internal/validators"
)

var (
	// ErrValidation wraps every input rule violation reported by the
	// validators package.
	ErrValidation = errors.New("validation failed")

	ErrInvalidRole       = validators.ErrInvalidRole
	ErrPasswordUnchanged = validators.ErrPasswordUnchanged

	// ErrAuthenticationFailed is the single error for every token problem
	// and for tokens whose user no longer exists.
	ErrAuthenticationFailed = errors.New("could not validate credentials")
	ErrInvalidCredentials   = errors.New("incorrect username or password")
	ErrWrongPassword        = errors.New("current password is incorrect")

	ErrAccessDenied = errors.New("not authorized to perform this action")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
