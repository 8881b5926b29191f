package models

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
endpoints:
  - key: totalUsers
    url: https://api.example.com/stats/users
    role: metric
  - key: usersTable
    url: https://api.example.com/users
    role: users
workers: 8
results_dir: out
token_env: STATBOARD_TOKEN
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(config.Endpoints) != 2 {
		t.Fatalf("Endpoints len = %d, want 2", len(config.Endpoints))
	}
	if config.Endpoints[0].Role != RoleMetric {
		t.Errorf("Endpoints[0].Role = %q, want metric", config.Endpoints[0].Role)
	}
	if config.WorkerCount != 8 {
		t.Errorf("WorkerCount = %d, want 8", config.WorkerCount)
	}
	if config.ResultsDir != "out" {
		t.Errorf("ResultsDir = %q, want out", config.ResultsDir)
	}
}

func TestLoadConfigDefaultWorkers(t *testing.T) {
	path := writeConfig(t, `
endpoints:
  - key: totalUsers
    url: https://api.example.com/stats/users
    role: metric
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want default 4", config.WorkerCount)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no endpoints", "workers: 4\n"},
		{"missing url", "endpoints:\n  - key: a\n    role: metric\n"},
		{"unknown role", "endpoints:\n  - key: a\n    url: https://x.test\n    role: widget\n"},
		{"duplicate key", `
endpoints:
  - key: a
    url: https://x.test/1
    role: metric
  - key: a
    url: https://x.test/2
    role: metric
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() error = nil, want validation error")
			}
		})
	}
}

func TestTokenFromEnv(t *testing.T) {
	t.Setenv("STATBOARD_TEST_TOKEN", "secret")

	config := &Config{TokenEnv: "STATBOARD_TEST_TOKEN"}
	if got := config.Token(); got != "secret" {
		t.Errorf("Token() = %q, want secret", got)
	}

	config.TokenEnv = ""
	if got := config.Token(); got != "" {
		t.Errorf("Token() with no env = %q, want empty", got)
	}
}
