// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-blog-api/models"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, role, tags`

const (
	createUser = `INSERT INTO users (id, username, email, password_hash, first_name, last_name, role, tags)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING ` + userColumns + `;`

	findUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	findUserByEmail    = `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	findUserByID       = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	listUsers          = `SELECT ` + userColumns + ` FROM users ORDER BY username;`

	updateUserProfile = `UPDATE users SET first_name = $2, last_name = $3
    WHERE id = $1
    RETURNING ` + userColumns + `;`

	updateUserPasswordHash = `UPDATE users SET password_hash = $2 WHERE id = $1;`

	addUserTags = `UPDATE users
    SET tags = tags || ARRAY(
        SELECT t FROM unnest($2::text[]) WITH ORDINALITY AS n(t, pos)
        WHERE NOT t = ANY(users.tags)
        GROUP BY t
        ORDER BY MIN(pos)
    )
    WHERE id = $1;`

	removeUserTags = `UPDATE users
    SET tags = ARRAY(
        SELECT t FROM unnest(tags) WITH ORDINALITY AS n(t, pos)
        WHERE NOT t = ANY($2::text[])
        ORDER BY pos
    )
    WHERE id = $1;`

	deleteUser = `DELETE FROM users WHERE id = $1;`

	createBlog = `INSERT INTO blogs (id, title, body, tags, owner_id, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7);`

	deleteBlog = `DELETE FROM blogs WHERE id = $1;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sortColumns whitelists the columns blog lists may be ordered by.
var sortColumns = map[string]string{
	models.SortByCreatedAt: "b.created_at",
	models.SortByUpdatedAt: "b.updated_at",
	models.SortByTitle:     "b.title",
}

func selectBlogs() sq.SelectBuilder {
	return psql.
		Select(
			"b.id", "b.title", "b.body", "b.tags", "b.owner_id",
			"COALESCE(u.username, '')",
			"b.created_at", "b.updated_at",
		).
		From("blogs b").
		LeftJoin("users u ON u.id = b.owner_id")
}

func getBlogByIDQuery(id string) sq.SelectBuilder {
	return selectBlogs().Where(sq.Eq{"b.id": id})
}

func listBlogsQuery(filter models.BlogFilter, sortBy string, order models.SortOrder) sq.SelectBuilder {
	q := selectBlogs()

	if filter.OwnerID != "" {
		q = q.Where(sq.Eq{"b.owner_id": filter.OwnerID})
	}
	if filter.AnyTags != nil {
		q = q.Where(sq.Expr("b.tags && ?::text[]", filter.AnyTags))
	}
	if filter.Tag != "" {
		q = q.Where(sq.Expr("?::text = ANY(b.tags)", filter.Tag))
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns[models.SortByCreatedAt]
	}
	direction := "ASC"
	if order == models.SortDesc {
		direction = "DESC"
	}

	return q.OrderBy(column+" "+direction, "b.id "+direction)
}

func updateBlogQuery(blog models.Blog) sq.UpdateBuilder {
	return psql.Update("blogs").
		Set("title", blog.Title).
		Set("body", blog.Body).
		Set("tags", blog.Tags).
		Set("updated_at", blog.UpdatedAt).
		Where(sq.Eq{"id": blog.ID})
}
