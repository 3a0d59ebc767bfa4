// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package security strips unsafe markup from user supplied blog content
// before it is validated and stored.
package security

import (
	"strings"

	"github.com/MKhiriev/go-blog-api/models"
	"github.com/microcosm-cc/bluemonday"
)

// BlogSanitizer cleans the free-text fields of a blog request.
type BlogSanitizer interface {
	// SanitizeBlog returns a copy of req with title and tags reduced to plain
	// text, the body restricted to user-generated-content markup, all fields
	// trimmed and duplicate or empty tags dropped (first occurrence wins).
	SanitizeBlog(req models.BlogRequest) models.BlogRequest

	// SanitizeTags applies the tag rules of SanitizeBlog to a bare tag list.
	SanitizeTags(tags []string) []string
}

type blogSanitizer struct {
	text *bluemonday.Policy
	body *bluemonday.Policy
}

// NewBlogSanitizer builds the policies once; bluemonday policies are safe for
// concurrent use after construction.
func NewBlogSanitizer() BlogSanitizer {
	body := bluemonday.UGCPolicy()
	body.RequireNoReferrerOnLinks(true)
	body.AddTargetBlankToFullyQualifiedLinks(true)

	return &blogSanitizer{
		text: bluemonday.StrictPolicy(),
		body: body,
	}
}

func (s *blogSanitizer) SanitizeBlog(req models.BlogRequest) models.BlogRequest {
	return models.BlogRequest{
		Title: strings.TrimSpace(s.text.Sanitize(req.Title)),
		Body:  strings.TrimSpace(s.body.Sanitize(req.Body)),
		Tags:  s.SanitizeTags(req.Tags),
	}
}

func (s *blogSanitizer) SanitizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		clean := strings.TrimSpace(s.text.Sanitize(tag))
		if clean == "" {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	return out
}
