package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"drumcharter/internal/chart"
	"drumcharter/internal/render"
)

// Process orchestrates one batch-mode chart: read the audio, ask the model
// for the structure, render the PDF into the output directory and move the
// original into the archive.
func (p *implProcessor) Process(ctx context.Context, audioPath string) error {
	startTime := time.Now()
	filename := filepath.Base(audioPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Charting: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("read audio: %w", err)
	}

	sections, err := p.analyzer.Analyze(ctx, audio, chart.MIMEType(filename), "")
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	c := chart.Chart{
		Title:    chart.CleanTitle(filename),
		Sections: sections,
		LogoPath: p.cfg.Chart.LogoPath,
	}

	pdf, err := render.PDF(c)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	outputPath := filepath.Join(p.cfg.Paths.Output, c.Title+"_chart.pdf")
	if err := os.WriteFile(outputPath, pdf, 0644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	if err := p.moveToArchived(ctx, audioPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive original: %v", err)
	}

	p.logger.Info(ctx, "Chart written: %s (%d sections, %s)",
		outputPath, len(sections), time.Since(startTime))

	return nil
}

// moveToArchived moves the processed audio out of the watched directory so
// it is not picked up again.
func (p *implProcessor) moveToArchived(ctx context.Context, audioPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(audioPath))
	p.logger.Debug(ctx, "Archiving: %s -> %s", audioPath, destPath)

	if err := os.Rename(audioPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
