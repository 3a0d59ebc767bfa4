// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-blog-api/models"

// Policy names an access rule evaluated by [Authorize].
type Policy int

const (
	// PolicyAuthenticated admits any verified principal.
	PolicyAuthenticated Policy = iota
	// PolicyAdmin admits principals with the admin role.
	PolicyAdmin
	// PolicyOwnerOrAdmin admits the resource owner and admins.
	PolicyOwnerOrAdmin
)

func (p Policy) String() string {
	switch p {
	case PolicyAuthenticated:
		return "authenticated"
	case PolicyAdmin:
		return "admin"
	case PolicyOwnerOrAdmin:
		return "owner-or-admin"
	default:
		return "unknown"
	}
}

// Authorize evaluates policy for principal. ownerID is only consulted by
// PolicyOwnerOrAdmin.
//
// A nil principal yields [ErrAuthenticationFailed]; a failed role or
// ownership check yields [ErrAccessDenied]. Unknown policies deny.
func Authorize(principal *models.Principal, policy Policy, ownerID string) error {
	if principal == nil {
		return ErrAuthenticationFailed
	}

	switch policy {
	case PolicyAuthenticated:
		return nil
	case PolicyAdmin:
		if principal.IsAdmin() {
			return nil
		}
	case PolicyOwnerOrAdmin:
		if principal.IsAdmin() || (ownerID != "" && principal.ID == ownerID) {
			return nil
		}
	}

	return ErrAccessDenied
}
