// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces input rules at the service boundary.
//
// The Validator interface is implemented by [RequestValidator], which runs
// the `validate` struct tags of the request models through
// go-playground/validator and adds the checks tags cannot express (role
// parsing, list parameter whitelists). Every failure wraps one of the
// sentinels in errors.go so callers can match it with errors.Is.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
