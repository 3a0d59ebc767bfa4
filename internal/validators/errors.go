// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidName       = errors.New("invalid first or last name")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPasswordUnchanged = errors.New("new password must differ from the current one")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidTitle      = errors.New("invalid title")
	ErrInvalidBody       = errors.New("invalid body")
	ErrInvalidTags       = errors.New("invalid tags")
	ErrInvalidSortBy     = errors.New("invalid sort_by")
	ErrInvalidLimit      = errors.New("limit must not be negative")
	ErrInvalidOffset     = errors.New("offset must not be negative")
)

// fieldErrors maps struct field names to the sentinel reported for them.
var fieldErrors = map[string]error{
	"Username":    ErrInvalidUsername,
	"Email":       ErrInvalidEmail,
	"FirstName":   ErrInvalidName,
	"LastName":    ErrInvalidName,
	"Password":    ErrInvalidPassword,
	"NewPassword": ErrInvalidPassword,
	"Title":       ErrInvalidTitle,
	"Body":        ErrInvalidBody,
	"Tags":        ErrInvalidTags,
}
