package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhpenta/slidegen"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slidegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, slidegen.ModelFlashImagePreview.String(), cfg.Model)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.ScrollDelay)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")

	_, err := Load("")
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
model: flash-image
timeout: 90s
scroll_delay: 250ms
output_dir: out
log_level: debug
`)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SLIDEGEN_OUTPUT_DIR", "elsewhere")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "flash-image", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.ScrollDelay)
	assert.Equal(t, "elsewhere", cfg.OutputDir, "environment wins over the file")

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().Timeout, cfg.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown field", "colour: red\n", "colour"},
		{"instructions are fixed", "instructions: Kısa tut.\n", "instructions"},
		{"bad timeout", "timeout: -1s\n", "timeout must be positive"},
		{"bad level", "log_level: loud\n", "invalid log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}
