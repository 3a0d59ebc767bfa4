// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-api/models"
)

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r, models.DefaultListParams())
	if err != nil {
		writeError(w, r, err)
		return
	}

	blogs, err := h.services.BlogService.ListBlogs(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, blogs, http.StatusOK)
}

func (h *Handler) getBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.services.BlogService.GetBlog(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, blog, http.StatusOK)
}

func (h *Handler) createBlog(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.BlogRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	blog, err := h.services.BlogService.CreateBlog(r.Context(), principal, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, blog, http.StatusCreated)
}

// listOwnBlogs defaults to the most recently updated blogs first.
func (h *Handler) listOwnBlogs(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	defaults := models.DefaultListParams()
	defaults.SortBy = models.SortByUpdatedAt

	params, err := parseListParams(r, defaults)
	if err != nil {
		writeError(w, r, err)
		return
	}

	blogs, err := h.services.BlogService.ListOwnBlogs(r.Context(), principal, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, blogs, http.StatusOK)
}

func (h *Handler) updateBlog(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.BlogRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.BlogService.UpdateBlog(r.Context(), principal, pathParam(r, "id"), req); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteBlog(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.BlogService.DeleteBlog(r.Context(), principal, pathParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
