// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
)

const (
	codeValidationFailed     = "validation_failed"
	codeConflict             = "conflict"
	codeAuthenticationFailed = "authentication_failed"
	codeAuthorizationFailed  = "authorization_failed"
	codeNotFound             = "not_found"
	codeMethodNotAllowed     = "method_not_allowed"
	codeRateLimited          = "rate_limited"
	codeInternal             = "internal"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is walked in order; the first target matched by errors.Is
// wins. ErrValidation precedes the conflict sentinels since validation
// errors never wrap them.
var errorMappings = []errorMapping{
	{target: service.ErrValidation, status: http.StatusBadRequest, code: codeValidationFailed},
	{target: ErrMalformedBody, status: http.StatusBadRequest, code: codeValidationFailed},
	{target: ErrInvalidQuery, status: http.StatusBadRequest, code: codeValidationFailed},

	{target: store.ErrUsernameAlreadyExists, status: http.StatusBadRequest, code: codeConflict},
	{target: store.ErrEmailAlreadyExists, status: http.StatusBadRequest, code: codeConflict},

	{target: service.ErrAuthenticationFailed, status: http.StatusUnauthorized, code: codeAuthenticationFailed},
	{target: service.ErrInvalidCredentials, status: http.StatusUnauthorized, code: codeAuthenticationFailed},
	{target: service.ErrWrongPassword, status: http.StatusUnauthorized, code: codeAuthenticationFailed},
	{target: ErrEmptyAuthorizationHeader, status: http.StatusUnauthorized, code: codeAuthenticationFailed},
	{target: ErrMissingPrincipal, status: http.StatusUnauthorized, code: codeAuthenticationFailed},

	{target: service.ErrAccessDenied, status: http.StatusUnauthorized, code: codeAuthorizationFailed},

	{target: store.ErrUserNotFound, status: http.StatusNotFound, code: codeNotFound},
	{target: store.ErrBlogNotFound, status: http.StatusNotFound, code: codeNotFound},
	{target: ErrRouteNotFound, status: http.StatusNotFound, code: codeNotFound},

	{target: ErrMethodNotAllowed, status: http.StatusMethodNotAllowed, code: codeMethodNotAllowed},
	{target: ErrRateLimited, status: http.StatusTooManyRequests, code: codeRateLimited},
}

// mapError returns the status and code for err. Unknown errors are 500.
func mapError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, codeInternal
}

// writeError logs err once and writes the JSON error body. Internal errors
// never leak their text to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, code := mapError(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Str("code", code).Msg("request failed")
		detail = http.StatusText(http.StatusInternalServerError)
	} else {
		log.Debug().Err(err).Int("status", status).Str("code", code).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	writeJSON(w, r, models.ErrorResponse{Detail: detail, Code: code}, status)
}
