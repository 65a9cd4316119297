package server

import (
	"context"
	"errors"
	"net/http"
)

// Run starts the HTTP server and blocks until it is shut down.
func (s *implServer) Run(ctx context.Context) error {
	s.logger.Info(ctx, "Web UI listening on %s", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *implServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
