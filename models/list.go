// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SortOrder is the direction of a blog listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sortable blog columns.
const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByTitle     = "title"
)

const (
	DefaultLimit = 10
)

// ListParams carries the offset/limit window and ordering of a blog listing.
type ListParams struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder SortOrder
}

// DefaultListParams returns the listing defaults: ten newest blogs by creation
// time.
func DefaultListParams() ListParams {
	return ListParams{
		Limit:     DefaultLimit,
		Offset:    0,
		SortBy:    SortByCreatedAt,
		SortOrder: SortDesc,
	}
}

// BlogFilter narrows a blog listing. At most one field is expected to be set;
// the zero value matches every blog.
type BlogFilter struct {
	// OwnerID matches blogs created by the given user.
	OwnerID string

	// AnyTags matches blogs sharing at least one tag with the set.
	AnyTags []string

	// Tag matches blogs carrying exactly this tag.
	Tag string
}
