// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	// Detail is a human-readable description safe to show to clients.
	Detail string `json:"detail"`

	// Code is a stable machine-readable failure category
	// (validation_failed, authentication_failed, not_found, ...).
	Code string `json:"code"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
