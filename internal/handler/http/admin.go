// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// Admin routes are mounted behind auth and requireRole(PolicyAdmin); the
// services repeat the role check after the target is fetched.

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), principal)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, users, http.StatusOK)
}

func (h *Handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), principal, pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adminDeleteBlog(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.BlogService.AdminDeleteBlog(r.Context(), principal, pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
