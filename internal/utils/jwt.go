// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog-api/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidJWTParams     = errors.New("invalid params for JWT token")
	ErrMissingTokenIdentity = errors.New("token misses subject or user id")
	ErrInvalidAuthHeader    = errors.New("invalid authorization header")
)

// JWTParams holds the process-wide token settings.
type JWTParams struct {
	Issuer    string
	SignKey   string
	Algorithm string
	Duration  time.Duration

	// Now is the clock used for iat/exp and for validation. Defaults to
	// time.Now when nil.
	Now func() time.Time
}

func (p JWTParams) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p JWTParams) method() (jwt.SigningMethod, error) {
	m := jwt.GetSigningMethod(p.Algorithm)
	if m == nil {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidJWTParams, p.Algorithm)
	}
	if _, ok := m.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: algorithm %q is not HMAC", ErrInvalidJWTParams, p.Algorithm)
	}
	return m, nil
}

// GenerateJWTToken signs a token for principal.
//
// Claims: sub (username), id (user id), role, iat, exp = iat + Duration and
// iss when an issuer is configured.
func GenerateJWTToken(p JWTParams, principal models.Principal) (models.Token, error) {
	if p.SignKey == "" || p.Duration <= 0 {
		return models.Token{}, ErrInvalidJWTParams
	}
	method, err := p.method()
	if err != nil {
		return models.Token{}, err
	}

	now := p.now()
	claims := &models.Claims{
		UserID: principal.ID,
		Role:   principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   principal.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(p.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed, Principal: principal}, nil
}

// ValidateAndParseJWTToken verifies tokenString and extracts the principal.
//
// Only the configured algorithm is accepted, exp is required, iss must match
// when configured, sub and id must be present and role must be known.
func ValidateAndParseJWTToken(tokenString string, p JWTParams) (models.Token, error) {
	method, err := p.method()
	if err != nil {
		return models.Token{}, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	}
	if p.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.Issuer))
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(p.SignKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" || claims.UserID == "" {
		return models.Token{}, ErrMissingTokenIdentity
	}
	if !claims.Role.IsValid() {
		return models.Token{}, models.ErrUnknownRole
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		Principal: models.Principal{
			Username: claims.Subject,
			ID:       claims.UserID,
			Role:     claims.Role,
		},
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidAuthHeader
	}
	return parts[1], nil
}
