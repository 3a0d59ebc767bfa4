// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/security"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

type blogService struct {
	blogRepository store.BlogRepository
	userRepository store.UserRepository

	validator   validators.Validator
	sanitizer   security.BlogSanitizer
	idGenerator IDGenerator
	now         func() time.Time

	logger *logger.Logger
}

// NewBlogService builds a BlogService. now may be nil, in which case
// time.Now is used.
func NewBlogService(
	blogRepository store.BlogRepository,
	userRepository store.UserRepository,
	validator validators.Validator,
	sanitizer security.BlogSanitizer,
	idGenerator IDGenerator,
	now func() time.Time,
	logger *logger.Logger,
) BlogService {
	if now == nil {
		now = time.Now
	}
	return &blogService{
		blogRepository: blogRepository,
		userRepository: userRepository,
		validator:      validator,
		sanitizer:      sanitizer,
		idGenerator:    idGenerator,
		now:            now,
		logger:         logger,
	}
}

// CreateBlog stores a blog owned by principal. The owner must still exist.
func (s *blogService) CreateBlog(ctx context.Context, principal models.Principal, req models.BlogRequest) (models.Blog, error) {
	log := logger.FromContext(ctx)

	req, err := s.prepare(ctx, req)
	if err != nil {
		return models.Blog{}, err
	}

	owner, err := s.userRepository.FindUserByID(ctx, principal.ID)
	if err != nil {
		return models.Blog{}, selfServiceError(err)
	}

	now := s.now().UTC()
	blog := models.Blog{
		ID:        s.idGenerator.Generate(),
		Title:     req.Title,
		Body:      req.Body,
		Tags:      uniqueTags(req.Tags),
		OwnerID:   owner.ID,
		Owner:     owner.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.blogRepository.CreateBlog(ctx, blog); err != nil {
		log.Err(err).Str("owner_id", owner.ID).Msg("blog creation failed")
		return models.Blog{}, fmt.Errorf("blog creation failed: %w", err)
	}

	log.Info().Str("blog_id", blog.ID).Str("owner_id", owner.ID).Msg("blog created")
	return blog, nil
}

func (s *blogService) GetBlog(ctx context.Context, id string) (models.Blog, error) {
	if !utils.IsUUID(id) {
		return models.Blog{}, store.ErrBlogNotFound
	}
	return s.blogRepository.GetBlogByID(ctx, id)
}

func (s *blogService) ListBlogs(ctx context.Context, params models.ListParams) ([]models.Blog, error) {
	return s.list(ctx, models.BlogFilter{}, params)
}

func (s *blogService) ListOwnBlogs(ctx context.Context, principal models.Principal, params models.ListParams) ([]models.Blog, error) {
	return s.list(ctx, models.BlogFilter{OwnerID: principal.ID}, params)
}

func (s *blogService) ListBlogsByTag(ctx context.Context, tag string, params models.ListParams) ([]models.Blog, error) {
	// stored tags never contain NUL and Postgres rejects it as a parameter
	if strings.ContainsRune(tag, 0) {
		if err := s.validateParams(ctx, params); err != nil {
			return nil, err
		}
		return []models.Blog{}, nil
	}
	return s.list(ctx, models.BlogFilter{Tag: tag}, params)
}

// ListBlogsMatchingUserTags lists blogs sharing a tag with the principal's
// profile. A profile without tags matches nothing.
func (s *blogService) ListBlogsMatchingUserTags(ctx context.Context, principal models.Principal, params models.ListParams) ([]models.Blog, error) {
	if err := s.validateParams(ctx, params); err != nil {
		return nil, err
	}

	user, err := s.userRepository.FindUserByID(ctx, principal.ID)
	if err != nil {
		return nil, selfServiceError(err)
	}
	if len(user.Tags) == 0 {
		return []models.Blog{}, nil
	}

	return s.list(ctx, models.BlogFilter{AnyTags: user.Tags}, params)
}

func (s *blogService) list(ctx context.Context, filter models.BlogFilter, params models.ListParams) ([]models.Blog, error) {
	if err := s.validateParams(ctx, params); err != nil {
		return nil, err
	}

	blogs, err := s.blogRepository.ListBlogs(ctx, filter, params.SortBy, params.SortOrder)
	if err != nil {
		logger.FromContext(ctx).Err(err).Any("filter", filter).Msg("listing blogs failed")
		return nil, fmt.Errorf("listing blogs failed: %w", err)
	}

	return paginate(blogs, params.Offset, params.Limit), nil
}

func (s *blogService) validateParams(ctx context.Context, params models.ListParams) error {
	if err := s.validator.Validate(ctx, params); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// UpdateBlog replaces title, body and tags of the blog. The body is checked
// first, then the blog is fetched and only then ownership is evaluated.
func (s *blogService) UpdateBlog(ctx context.Context, principal models.Principal, id string, req models.BlogRequest) error {
	log := logger.FromContext(ctx)

	req, err := s.prepare(ctx, req)
	if err != nil {
		return err
	}

	blog, err := s.GetBlog(ctx, id)
	if err != nil {
		return err
	}

	if err = Authorize(&principal, PolicyOwnerOrAdmin, blog.OwnerID); err != nil {
		log.Debug().Str("blog_id", blog.ID).Str("user_id", principal.ID).Msg("blog update denied")
		return err
	}

	blog.Title = req.Title
	blog.Body = req.Body
	blog.Tags = uniqueTags(req.Tags)
	blog.UpdatedAt = s.now().UTC()

	if err = s.blogRepository.UpdateBlog(ctx, blog); err != nil {
		log.Err(err).Str("blog_id", blog.ID).Msg("blog update failed")
		return err
	}
	return nil
}

func (s *blogService) DeleteBlog(ctx context.Context, principal models.Principal, id string) error {
	return s.delete(ctx, principal, id, PolicyOwnerOrAdmin)
}

func (s *blogService) AdminDeleteBlog(ctx context.Context, principal models.Principal, id string) error {
	return s.delete(ctx, principal, id, PolicyAdmin)
}

func (s *blogService) delete(ctx context.Context, principal models.Principal, id string, policy Policy) error {
	log := logger.FromContext(ctx)

	blog, err := s.GetBlog(ctx, id)
	if err != nil {
		return err
	}

	if err = Authorize(&principal, policy, blog.OwnerID); err != nil {
		log.Debug().Str("blog_id", blog.ID).Stringer("policy", policy).Msg("blog deletion denied")
		return err
	}

	if err = s.blogRepository.DeleteBlog(ctx, blog.ID); err != nil {
		log.Err(err).Str("blog_id", blog.ID).Msg("blog deletion failed")
		return err
	}

	log.Info().Str("blog_id", blog.ID).Str("user_id", principal.ID).Msg("blog deleted")
	return nil
}

// prepare sanitizes req and then validates what is left of it.
func (s *blogService) prepare(ctx context.Context, req models.BlogRequest) (models.BlogRequest, error) {
	clean := s.sanitizer.SanitizeBlog(req)
	if err := s.validator.Validate(ctx, clean); err != nil {
		return models.BlogRequest{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return clean, nil
}

// paginate returns blogs[offset:offset+limit] clamped to the slice bounds.
// A limit of zero yields an empty page.
func paginate(blogs []models.Blog, offset, limit int) []models.Blog {
	if offset < 0 || limit <= 0 || offset >= len(blogs) {
		return []models.Blog{}
	}
	if limit > len(blogs)-offset {
		limit = len(blogs) - offset
	}
	return blogs[offset : offset+limit]
}
