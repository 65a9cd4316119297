package processor

import (
	"drumcharter/internal/analyzer"
	"drumcharter/internal/config"
	"drumcharter/internal/logger"
)

type implProcessor struct {
	cfg      *config.Config
	analyzer analyzer.Analyzer
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, a analyzer.Analyzer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		analyzer: a,
		logger:   log,
	}
}
