// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/metrics"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type Handler struct {
	services *service.Services

	metrics  metrics.Recorder
	gatherer prometheus.Gatherer
	limiter  *ipRateLimiter

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. A nil recorder disables metrics and a
// nil gatherer disables the /metrics route.
func NewHandler(
	services *service.Services,
	cfg config.Server,
	recorder metrics.Recorder,
	gatherer prometheus.Gatherer,
	logger *logger.Logger,
) *Handler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  recorder,
		gatherer: gatherer,
		limiter:  newIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, nil),
		logger:   logger,
	}
}
