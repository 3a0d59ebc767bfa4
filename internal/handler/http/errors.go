// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is the logged cause when the incoming
	// request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("not authenticated")

	// ErrMissingPrincipal is returned when a protected handler runs without
	// the auth middleware having stored a principal.
	ErrMissingPrincipal = errors.New("no authenticated principal in request context")

	ErrRateLimited = errors.New("too many requests")

	// ErrMalformedBody covers undecodable JSON and form payloads.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrInvalidQuery covers non-numeric limit and offset values.
	ErrInvalidQuery = errors.New("invalid query parameter")

	ErrRouteNotFound    = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
