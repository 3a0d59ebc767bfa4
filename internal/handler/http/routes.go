// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-blog-api/internal/metrics"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	router.Get("/", h.welcome)
	router.Get("/api/version", h.getServerVersion)
	if h.gatherer != nil {
		router.Method("GET", "/metrics", metrics.Handler(h.gatherer))
	}

	// credential endpoints are rate limited per client IP
	router.Route(authRoutes, func(r chi.Router) {
		r.Use(h.withRateLimit)
		r.Post("/", h.register)
		r.Post("/login", h.login)
	})

	router.Route("/api/blogs", func(r chi.Router) {
		r.Get("/", h.listBlogs)
		r.Get("/{id}", h.getBlog)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/", h.createBlog)
			r.Get("/myblogs", h.listOwnBlogs)
			r.Put("/{id}", h.updateBlog)
			r.Delete("/{id}", h.deleteBlog)
		})
	})

	router.Route("/api/users", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/info", h.userInfo)
		r.Put("/change_password", h.changePassword)
		r.Put("/update", h.updateProfile)
		r.Put("/add_tags", h.addTags)
		r.Put("/remove_tags", h.removeTags)
	})

	router.Route("/api/adminuser", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireRole(service.PolicyAdmin))
		r.Get("/all_users", h.listUsers)
		r.Delete("/delete/{id}", h.adminDeleteUser)
		r.Delete("/deleteblog/{id}", h.adminDeleteBlog)
	})

	router.Route("/api/dashboard", func(r chi.Router) {
		r.With(h.auth).Get("/blogs", h.dashboard)
		r.Get("/blogs/{tag}", h.blogsByTag)
	})

	return router
}
