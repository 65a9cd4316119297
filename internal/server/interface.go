package server

import "context"

// Server is the web UI shell: upload form, analysis endpoint and chart
// download endpoint.
type Server interface {
	Run(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
