package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "empty config gets defaults",
			config: Config{},
		},
		{
			name: "watch enabled with paths",
			config: Config{
				Watch: WatchConfig{Enabled: true},
				Paths: PathsConfig{Input: "data/input", Output: "data/output"},
			},
		},
		{
			name: "watch enabled without input",
			config: Config{
				Watch: WatchConfig{Enabled: true},
				Paths: PathsConfig{Output: "data/output"},
			},
			wantErr: true,
		},
		{
			name: "watch enabled without output",
			config: Config{
				Watch: WatchConfig{Enabled: true},
				Paths: PathsConfig{Input: "data/input"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want gemini-2.5-pro", cfg.Gemini.Model)
	}
	if cfg.Chart.LogoPath != "logo.png" {
		t.Errorf("LogoPath = %q, want logo.png", cfg.Chart.LogoPath)
	}
	if cfg.Limits.MaxUploadMB != 32 {
		t.Errorf("MaxUploadMB = %d, want 32", cfg.Limits.MaxUploadMB)
	}
	if cfg.Watch.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Watch.MaxConcurrent)
	}
}

func TestValidateEnvKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")

	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(cfg.Gemini.APIKeys) != 1 || cfg.Gemini.APIKeys[0] != "env-key" {
		t.Errorf("APIKeys = %v, want [env-key]", cfg.Gemini.APIKeys)
	}
}

func TestValidateConfiguredKeysWinOverEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")

	cfg := Config{Gemini: GeminiConfig{APIKeys: []string{"cfg-key"}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(cfg.Gemini.APIKeys) != 1 || cfg.Gemini.APIKeys[0] != "cfg-key" {
		t.Errorf("APIKeys = %v, want [cfg-key]", cfg.Gemini.APIKeys)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  address: "127.0.0.1"
  port: 9090

gemini:
  model: "gemini-2.5-pro"
  api_keys:
    - "test-key"

chart:
  logo_path: "assets/logo.png"

limits:
  max_upload_mb: 16

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Chart.LogoPath != "assets/logo.png" {
		t.Errorf("LogoPath = %q, want assets/logo.png", cfg.Chart.LogoPath)
	}
	if cfg.Limits.MaxUploadMB != 16 {
		t.Errorf("MaxUploadMB = %d, want 16", cfg.Limits.MaxUploadMB)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
