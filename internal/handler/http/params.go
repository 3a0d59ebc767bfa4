// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/go-blog-api/models"
	"github.com/go-chi/chi/v5"
)

// parseListParams reads limit, offset, sort_by and sort_order from the query
// string over defaults. Any sort_order other than "desc" means ascending.
// Range and column checks are left to the service validator.
func parseListParams(r *http.Request, defaults models.ListParams) (models.ListParams, error) {
	q := r.URL.Query()
	params := defaults

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.ListParams{}, fmt.Errorf("%w: limit must be an integer", ErrInvalidQuery)
		}
		params.Limit = n
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return models.ListParams{}, fmt.Errorf("%w: offset must be an integer", ErrInvalidQuery)
		}
		params.Offset = n
	}

	if v := q.Get("sort_by"); v != "" {
		params.SortBy = v
	}

	if q.Has("sort_order") {
		if q.Get("sort_order") == string(models.SortDesc) {
			params.SortOrder = models.SortDesc
		} else {
			params.SortOrder = models.SortAsc
		}
	}

	return params, nil
}

// pathParam returns the unescaped URL parameter key.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
