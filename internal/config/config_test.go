package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.careerline.io", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, "/login", cfg.Routes.Login)
	assert.Equal(t, "/dashboard", cfg.Routes.Landing)
	assert.Contains(t, cfg.Routes.Public, "/jobs")
	assert.Contains(t, cfg.Routes.PublicPatterns, `^/jobs/\d+$`)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
api:
  base_url: https://staging.careerline.io
  timeout: 10s
storage:
  path: /tmp/test-credentials.db
routes:
  landing: /feed
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://staging.careerline.io", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, "/tmp/test-credentials.db", cfg.Storage.Path)
	assert.Equal(t, "/feed", cfg.Routes.Landing)
	// Unset keys keep their defaults.
	assert.Equal(t, "/login", cfg.Routes.Login)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CAREERLINE_API_BASE_URL", "https://env.careerline.io")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.careerline.io", cfg.API.BaseURL)
}

func TestAPIConfig_RequestTimeoutFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{"valid", "2s", 2 * time.Second},
		{"empty", "", 30 * time.Second},
		{"garbage", "soon", 30 * time.Second},
		{"negative", "-5s", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &APIConfig{Timeout: tt.timeout}
			assert.Equal(t, tt.want, cfg.RequestTimeout())
		})
	}
}
