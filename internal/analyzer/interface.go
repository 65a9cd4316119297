package analyzer

import (
	"context"

	"drumcharter/internal/chart"
)

// Analyzer sends an audio file to the hosted model and returns the song
// structure it hears. apiKey overrides the configured keys when non-empty.
type Analyzer interface {
	Analyze(ctx context.Context, audio []byte, mimeType, apiKey string) ([]chart.Section, error)
}
