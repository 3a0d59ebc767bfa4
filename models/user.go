// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Role is the closed set of access levels a user account can hold.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
	// RoleAdmin bypasses ownership checks and unlocks moderation routes.
	RoleAdmin Role = "admin"
)

// ErrUnknownRole is returned by [ParseRole] for any value outside the
// supported role set.
var ErrUnknownRole = errors.New("role must be either 'admin' or 'user'")

// ParseRole converts a raw string into a [Role]. An empty string yields
// [RoleUser].
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownRole, s)
	}
}

// IsValid reports whether r is one of the supported roles.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account entity used for authentication and authorization.
// PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	// ID is the UUID assigned when the account is created.
	ID string `json:"id"`

	// Username is unique across all accounts and is used to log in.
	Username string `json:"username"`

	// Email is unique across all accounts.
	Email string `json:"email"`

	// PasswordHash is the bcrypt digest of the user's password.
	PasswordHash string `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Role controls access to moderation routes.
	Role Role `json:"role"`

	// Tags is the set of interests used to match blogs on the dashboard.
	Tags []string `json:"tags"`
}

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Username  string   `json:"username" validate:"required,max=50,no_nul"`
	Email     string   `json:"email" validate:"required,email,no_nul"`
	FirstName string   `json:"first_name" validate:"required,no_nul"`
	LastName  string   `json:"last_name" validate:"required,no_nul"`
	Password  string   `json:"password" validate:"required,min=8,max=50,bcrypt_len,password_policy"`
	Role      string   `json:"role"`
	Tags      []string `json:"tags" validate:"dive,required,no_nul"`
}

// LoginRequest carries credentials for the login endpoint. It is decoded
// either from a JSON body or from the OAuth2 password form.
type LoginRequest struct {
	Username string `json:"username" validate:"required,no_nul"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest replaces the mutable profile fields of a user.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,no_nul"`
	LastName  string `json:"last_name" validate:"required,no_nul"`
}

// ChangePasswordRequest is the body of the change-password endpoint.
// NewPassword must differ from Password.
type ChangePasswordRequest struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,bcrypt_len,password_policy,nefield=Password"`
}

// TagsRequest is a list of tags to add to or remove from a user profile.
type TagsRequest struct {
	Tags []string `validate:"dive,required,no_nul"`
}
