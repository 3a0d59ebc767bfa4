// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-blog-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/repository_mock.go -package=mock

// UserRepository persists user accounts.
//
// Lookups of a missing or malformed id return [ErrUserNotFound]; so do
// updates and deletes that affect no row.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row. Unique violations
	// are reported as [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateProfile changes first and last name only.
	UpdateProfile(ctx context.Context, id, firstName, lastName string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error

	// AddTags unions tags into the user's set. RemoveTags subtracts them;
	// absent tags are ignored. Both are idempotent.
	AddTags(ctx context.Context, id string, tags []string) error
	RemoveTags(ctx context.Context, id string, tags []string) error

	// DeleteUser removes the user. The user's blogs are kept.
	DeleteUser(ctx context.Context, id string) error
}

// BlogRepository persists blogs. Every read resolves the owner's username;
// it is empty when the owner no longer exists.
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog models.Blog) error
	GetBlogByID(ctx context.Context, id string) (models.Blog, error)

	// UpdateBlog replaces title, body, tags and updated_at.
	UpdateBlog(ctx context.Context, blog models.Blog) error
	DeleteBlog(ctx context.Context, id string) error

	// ListBlogs returns every blog matching filter, ordered by sortBy (one of
	// the models.SortBy* columns) in the given direction.
	ListBlogs(ctx context.Context, filter models.BlogFilter, sortBy string, order models.SortOrder) ([]models.Blog, error)
}
