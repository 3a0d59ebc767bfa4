// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Blog is a post written by a single owner.
type Blog struct {
	// ID is the UUID assigned when the blog is created.
	ID string `json:"id"`

	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`

	// OwnerID references the creating user. It never changes after creation
	// and is not cleared when the owner is deleted.
	OwnerID string `json:"owner_id"`

	// Owner is the username of the owner resolved at read time. It is empty
	// for blogs whose owner no longer exists.
	Owner string `json:"owner"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogRequest is the body used to create or fully replace a blog.
type BlogRequest struct {
	Title string   `json:"title" validate:"required,min=3,no_nul"`
	Body  string   `json:"body" validate:"required,min=4,max=100,no_nul"`
	Tags  []string `json:"tags" validate:"dive,required,no_nul"`
}
