// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer serves requests until ctx is cancelled or a termination
	// signal arrives, then shuts down gracefully. It returns the listener
	// error if serving failed.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server within the configured timeout.
	Shutdown()
}
