// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/crypto"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/security"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/internal/utils"
	"github.com/MKhiriev/go-blog-api/internal/validators"
	"github.com/MKhiriev/go-blog-api/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	BlogService    BlogService
	AppInfoService AppInfoService
}

// NewServices wires every service over storages. The password hasher,
// validator, sanitizer and id generator are shared between services.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher := crypto.NewBcryptHasher(cfg.App.PasswordHashCost)
	validator := validators.NewRequestValidator()
	ids := utils.NewUUIDGenerator()
	now := time.Now

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService: NewAuthService(storages.UserRepository, hasher, validator, ids, cfg.App, now, logger),
		UserService: NewUserService(storages.UserRepository, hasher, validator, logger),
		BlogService: NewBlogService(storages.BlogRepository, storages.UserRepository, validator,
			security.NewBlogSanitizer(), ids, now, logger),
		AppInfoService: appInfo,
	}, nil
}
