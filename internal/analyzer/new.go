package analyzer

import (
	"sync"

	"drumcharter/internal/logger"
)

type implAnalyzer struct {
	apiKeys []string
	logger  logger.Logger
	model   string

	// requests run concurrently; the rotation index needs the lock
	mu         sync.Mutex
	currentKey int
}

// New creates an Analyzer that rotates through the supplied Gemini API keys
// when one of them is rate limited.
func New(apiKeys []string, model string, log logger.Logger) Analyzer {
	return &implAnalyzer{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}
}
