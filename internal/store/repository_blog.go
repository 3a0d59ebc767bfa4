// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// blogRepository is the PostgreSQL-backed implementation of [BlogRepository].
// Dynamic reads are assembled with squirrel, see sql_queries.go.
type blogRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewBlogRepository(db *DB, logger *logger.Logger) BlogRepository {
	logger.Debug().Msg("creating blog repository")
	return &blogRepository{
		db:     db,
		logger: logger,
	}
}

func scanBlog(row rowScanner, m *pgtype.Map) (models.Blog, error) {
	var b models.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Body, textArray(m, &b.Tags), &b.OwnerID, &b.Owner, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Blog{}, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()

	return b, nil
}

func (r *blogRepository) CreateBlog(ctx context.Context, blog models.Blog) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, createBlog,
		blog.ID, blog.Title, blog.Body, tagsArg(blog.Tags), blog.OwnerID, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*blogRepository.CreateBlog").Msg("error creating blog")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *blogRepository) GetBlogByID(ctx context.Context, id string) (models.Blog, error) {
	log := logger.FromContext(ctx)

	query, args, err := getBlogByIDQuery(id).ToSql()
	if err != nil {
		return models.Blog{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	blog, err := scanBlog(r.db.QueryRowContext(ctx, query, args...), pgtype.NewMap())
	if err != nil {
		if isNotFound(err) {
			return models.Blog{}, ErrBlogNotFound
		}
		log.Err(err).Str("func", "*blogRepository.GetBlogByID").Msg("error getting blog")
		return models.Blog{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return blog, nil
}

func (r *blogRepository) UpdateBlog(ctx context.Context, blog models.Blog) error {
	query, args, err := updateBlogQuery(models.Blog{
		ID:        blog.ID,
		Title:     blog.Title,
		Body:      blog.Body,
		Tags:      tagsArg(blog.Tags),
		UpdatedAt: blog.UpdatedAt,
	}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "*blogRepository.UpdateBlog", query, args...)
}

func (r *blogRepository) DeleteBlog(ctx context.Context, id string) error {
	return r.exec(ctx, "*blogRepository.DeleteBlog", deleteBlog, id)
}

func (r *blogRepository) ListBlogs(ctx context.Context, filter models.BlogFilter, sortBy string, order models.SortOrder) ([]models.Blog, error) {
	log := logger.FromContext(ctx)

	query, args, err := listBlogsQuery(filter, sortBy, order).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*blogRepository.ListBlogs").Msg("error listing blogs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	blogs := make([]models.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows, m)
		if err != nil {
			log.Err(err).Str("func", "*blogRepository.ListBlogs").Msg("error scanning blog")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		blogs = append(blogs, blog)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return blogs, nil
}

func (r *blogRepository) exec(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isNotFound(err) {
			return ErrBlogNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrBlogNotFound
	}

	return nil
}
