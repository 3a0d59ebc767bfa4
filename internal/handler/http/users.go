// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-blog-api/models"
)

func (h *Handler) userInfo(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetInfo(r.Context(), principal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ChangePasswordRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.ChangePassword(r.Context(), principal, req); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateProfileRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), principal, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, user, http.StatusOK)
}

func (h *Handler) addTags(w http.ResponseWriter, r *http.Request) {
	h.changeTags(w, r, h.services.UserService.AddTags)
}

func (h *Handler) removeTags(w http.ResponseWriter, r *http.Request) {
	h.changeTags(w, r, h.services.UserService.RemoveTags)
}

// changeTags decodes a JSON array of tags and applies op to the caller.
func (h *Handler) changeTags(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, principal models.Principal, tags []string) error,
) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var tags []string
	if err = decodeBody(r, &tags); err != nil {
		writeError(w, r, err)
		return
	}

	if err = op(r.Context(), principal, tags); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
