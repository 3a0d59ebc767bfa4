// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/models"
)

// dashboard lists blogs sharing at least one tag with the caller's profile.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	params, err := parseListParams(r, models.DefaultListParams())
	if err != nil {
		writeError(w, r, err)
		return
	}

	blogs, err := h.services.BlogService.ListBlogsMatchingUserTags(r.Context(), principal, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, blogs, http.StatusOK)
}

func (h *Handler) blogsByTag(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, models.DefaultListParams())
	if err != nil {
		writeError(w, r, err)
		return
	}

	blogs, err := h.services.BlogService.ListBlogsByTag(r.Context(), pathParam(r, "tag"), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, blogs, http.StatusOK)
}
