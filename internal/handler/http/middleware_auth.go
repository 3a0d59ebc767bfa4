// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/rs/zerolog"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the verified principal in
// the request context under [utils.PrincipalCtxKey]. The request logger is
// extended with the user id.
//
// Every rejection is 401 with code authentication_failed.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.rejectAuth(w, r, "missing_header", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.rejectAuth(w, r, "malformed_header", err)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			h.rejectAuth(w, r, "invalid_token", err)
			return
		}

		l := logger.FromContext(ctx)
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", token.Principal.ID)
		})
		ctx = utils.WithPrincipal(l.WithContext(ctx), token.Principal)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rejectAuth records reason and answers with the bare authentication failure.
// The cause is only logged.
func (h *Handler) rejectAuth(w http.ResponseWriter, r *http.Request, reason string, cause error) {
	h.metrics.RecordAuthFailure(reason)
	logger.FromRequest(r).Debug().Err(cause).Str("reason", reason).Msg("authentication rejected")
	writeError(w, r, service.ErrAuthenticationFailed)
}

// requireRole runs the authorization guard with policy before next. It must
// be mounted after auth.
func (h *Handler) requireRole(policy service.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var principal *models.Principal
			if p, ok := utils.GetPrincipalFromContext(r.Context()); ok {
				principal = &p
			}

			if err := service.Authorize(principal, policy, ""); err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// principalFromRequest returns the principal stored by auth.
func principalFromRequest(r *http.Request) (models.Principal, error) {
	p, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		return models.Principal{}, ErrMissingPrincipal
	}
	return p, nil
}
