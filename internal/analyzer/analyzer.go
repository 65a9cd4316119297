package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"drumcharter/internal/chart"
)

const (
	pollInterval   = 2 * time.Second
	processTimeout = 5 * time.Minute
)

// Analyze uploads the audio to Gemini, waits for the file service to finish
// ingesting it, then asks the model for the song structure. A non-empty
// apiKey is used alone; otherwise the configured keys are tried in turn,
// rotating on quota errors.
func (a *implAnalyzer) Analyze(ctx context.Context, audio []byte, mimeType, apiKey string) ([]chart.Section, error) {
	keys := a.apiKeys
	if apiKey != "" {
		keys = []string{apiKey}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no API key available")
	}

	var lastErr error
	for range keys {
		idx := a.keyIndex() % len(keys)

		sections, err := a.analyzeWithKey(ctx, keys[idx], audio, mimeType)
		if err != nil {
			if isQuotaErr(err) {
				a.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				a.rotateKey()
				lastErr = err
				continue
			}
			return nil, err
		}
		return sections, nil
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (a *implAnalyzer) analyzeWithKey(ctx context.Context, key string, audio []byte, mimeType string) ([]chart.Section, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	a.logger.Info(ctx, "Uploading audio (%d bytes, %s)", len(audio), mimeType)
	file, err := client.Files.Upload(ctx, bytes.NewReader(audio), &genai.UploadFileConfig{
		MIMEType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	file, err = a.waitForProcessing(ctx, client, file)
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "Generating chart with %s", a.model)
	parts := []*genai.Part{
		genai.NewPartFromText(exampleChart),
		genai.NewPartFromText(analyzeRequest),
		genai.NewPartFromURI(file.URI, file.MIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(result)
	if err != nil {
		return nil, err
	}

	sections, err := chart.ParseSections([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("model response: %w", err)
	}

	a.logger.Info(ctx, "Chart generated: %d sections", len(sections))
	return sections, nil
}

// waitForProcessing polls the file service until the upload leaves the
// PROCESSING state.
func (a *implAnalyzer) waitForProcessing(ctx context.Context, client *genai.Client, file *genai.File) (*genai.File, error) {
	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	for file.State == genai.FileStateProcessing {
		a.logger.Debug(ctx, "File %s still processing", file.Name)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for processing: %w", ctx.Err())
		case <-time.After(pollInterval):
		}

		var err error
		file, err = client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("get file state: %w", err)
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, fmt.Errorf("audio processing failed for %s", file.Name)
	}
	return file, nil
}

func responseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

func (a *implAnalyzer) keyIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentKey
}

func (a *implAnalyzer) rotateKey() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentKey = (a.currentKey + 1) % max(len(a.apiKeys), 1)
}

func isQuotaErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
