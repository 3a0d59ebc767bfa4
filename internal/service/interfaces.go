// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-blog-api/models"
)

type AuthService interface {
	// RegisterUser validates req, checks username then email uniqueness,
	// hashes the password and stores the user.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login returns the user matching the credentials or
	// ErrInvalidCredentials for an unknown user and a wrong password alike.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken verifies tokenString. Every failure is ErrAuthenticationFailed.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService serves the self-service and admin user operations. Self-service
// calls for a principal whose user was deleted fail with
// ErrAuthenticationFailed.
type UserService interface {
	GetInfo(ctx context.Context, principal models.Principal) (models.User, error)
	UpdateProfile(ctx context.Context, principal models.Principal, req models.UpdateProfileRequest) (models.User, error)
	ChangePassword(ctx context.Context, principal models.Principal, req models.ChangePasswordRequest) error
	AddTags(ctx context.Context, principal models.Principal, tags []string) error
	RemoveTags(ctx context.Context, principal models.Principal, tags []string) error

	ListUsers(ctx context.Context, principal models.Principal) ([]models.User, error)
	DeleteUser(ctx context.Context, principal models.Principal, id string) error
}

// BlogService serves blog CRUD and discovery. List methods sort in the store
// and slice offset/limit afterwards.
type BlogService interface {
	CreateBlog(ctx context.Context, principal models.Principal, req models.BlogRequest) (models.Blog, error)
	GetBlog(ctx context.Context, id string) (models.Blog, error)

	ListBlogs(ctx context.Context, params models.ListParams) ([]models.Blog, error)
	ListOwnBlogs(ctx context.Context, principal models.Principal, params models.ListParams) ([]models.Blog, error)
	ListBlogsByTag(ctx context.Context, tag string, params models.ListParams) ([]models.Blog, error)
	ListBlogsMatchingUserTags(ctx context.Context, principal models.Principal, params models.ListParams) ([]models.Blog, error)

	// UpdateBlog and DeleteBlog fetch the blog, report ErrBlogNotFound when
	// absent, then require owner-or-admin.
	UpdateBlog(ctx context.Context, principal models.Principal, id string, req models.BlogRequest) error
	DeleteBlog(ctx context.Context, principal models.Principal, id string) error
	AdminDeleteBlog(ctx context.Context, principal models.Principal, id string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator produces identifiers for new records.
type IDGenerator interface {
	Generate() string
}
