package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:        "gemini",
			Model:           "gemini-2.0-flash",
			Timeout:         60 * time.Second,
			APIKey:          "test-key",
			Temperature:     0.7,
			MaxOutputTokens: 8192,
		},
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
		Store: StoreConfig{Backend: "memory"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.AI.APIKey = "" },
			wantErr: "API key",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.AI.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "port is required",
		},
		{
			name:    "unsupported default format",
			mutate:  func(c *Config) { c.App.DefaultFormat = "xml" },
			wantErr: "invalid default format",
		},
		{
			name:    "unknown store backend",
			mutate:  func(c *Config) { c.Store.Backend = "postgres" },
			wantErr: "invalid store backend",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.Store.Backend = "sqlite"
				c.Store.Path = ""
			},
			wantErr: "store path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr bool
	}{
		{
			name: "disabled mode",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode with cert and key",
			tls:  TLSConfig{Mode: "server", CertFile: "cert.pem", KeyFile: "key.pem"},
		},
		{
			name:    "server mode missing key",
			tls:     TLSConfig{Mode: "server", CertFile: "cert.pem"},
			wantErr: true,
		},
		{
			name: "mutual mode with ca",
			tls:  TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem", CAFile: "ca.pem"},
		},
		{
			name:    "mutual mode missing ca",
			tls:     TLSConfig{Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem"},
			wantErr: true,
		},
		{
			name: "mutual mode with valid auth policy",
			tls: TLSConfig{
				Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem",
				CAFile: "ca.pem", ClientAuthPolicy: "request",
			},
		},
		{
			name: "mutual mode with invalid auth policy",
			tls: TLSConfig{
				Mode: "mutual", CertFile: "cert.pem", KeyFile: "key.pem",
				CAFile: "ca.pem", ClientAuthPolicy: "optional",
			},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			tls:     TLSConfig{Mode: "strict"},
			wantErr: true,
		},
		{
			name:    "invalid min version",
			tls:     TLSConfig{Mode: "disabled", MinVersion: "1.0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			cfg.Server.TLS = tt.tls

			err := cfg.ValidateTLSConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTLSConfig() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetImproveConfigAppliesDefaults(t *testing.T) {
	cfg := validBaseConfig()

	improve := cfg.GetImproveConfig()
	if improve.Provider != "gemini" {
		t.Errorf("Provider = %q, want global fallback", improve.Provider)
	}
	if improve.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want global fallback", improve.Model)
	}
	if improve.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want global fallback", improve.APIKey)
	}
	if improve.Timeout == nil || *improve.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want global fallback", improve.Timeout)
	}
	if improve.Temperature == nil || *improve.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want global fallback", improve.Temperature)
	}
	if improve.MaxOutputTokens == nil || *improve.MaxOutputTokens != 8192 {
		t.Errorf("MaxOutputTokens = %v, want global fallback", improve.MaxOutputTokens)
	}
}

func TestGetAnalyzeConfigKeepsOverrides(t *testing.T) {
	cfg := validBaseConfig()
	temp := float32(0.1)
	timeout := 30 * time.Second
	cfg.AI.Analyze = OperationAIConfig{
		Model:       "gemini-2.5-pro",
		Temperature: &temp,
		Timeout:     &timeout,
	}

	analyze := cfg.GetAnalyzeConfig()
	if analyze.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want operation override", analyze.Model)
	}
	if *analyze.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want operation override", *analyze.Temperature)
	}
	if *analyze.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want operation override", *analyze.Timeout)
	}
	if analyze.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want global fallback", analyze.APIKey)
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	cfg := validBaseConfig()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompt.txt")
		if err := os.WriteFile(path, []byte("  Improve this resume.  \n"), 0o600); err != nil {
			t.Fatalf("failed to write prompt file: %v", err)
		}

		content, err := cfg.loadPromptFromFile(path, "user", "autoImprove")
		if err != nil {
			t.Fatalf("loadPromptFromFile failed: %v", err)
		}
		if content != "Improve this resume." {
			t.Errorf("content = %q, want trimmed prompt", content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := cfg.loadPromptFromFile(filepath.Join(t.TempDir(), "missing.txt"), "user", "autoImprove")
		if err == nil {
			t.Error("expected error for missing prompt file")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
			t.Fatalf("failed to write prompt file: %v", err)
		}
		if _, err := cfg.loadPromptFromFile(path, "system", "analyzeResume"); err == nil {
			t.Error("expected error for empty prompt file")
		}
	})
}

func TestValidatePromptFiles(t *testing.T) {
	cfg := validBaseConfig()
	cfg.AI.CustomPrompts.UserPrompts.AutoImproveFile = filepath.Join(t.TempDir(), "missing.txt")

	if err := cfg.validatePromptFiles(); err == nil {
		t.Error("expected validation error for missing prompt file")
	}
}
