package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Pipeline: PipelineConfig{
			WindowSeconds:      45,
			MinWindowsPerTopic: 2,
			BoundaryThreshold:  0.82,
		},
		Export: ExportConfig{Dir: "/some/path"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_PipelineBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Pipeline.WindowSeconds = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Pipeline.MinWindowsPerTopic = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Pipeline.BoundaryThreshold = 1.5
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/exports", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "exports"), expanded)

	expanded, err = expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", expanded)

	expanded, err = expandPath("/abs/path", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", expanded)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"http://localhost:3000"}, splitList("http://localhost:3000,"))
	assert.Nil(t, splitList(""))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("LECTIO_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "LECTIO_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "LECTIO_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "LECTIO_TEST_MISSING", "default"))
}

func TestGetFloatConfigValue(t *testing.T) {
	t.Setenv("LECTIO_TEST_FLOAT", "30.5")

	assert.Equal(t, 30.5, getFloatConfigValue("", "LECTIO_TEST_FLOAT", 45))
	assert.Equal(t, 45.0, getFloatConfigValue("", "LECTIO_TEST_FLOAT_MISSING", 45))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nLECTIO_ENV_FILE_KEY=hello\nQUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("LECTIO_ENV_FILE_KEY", "")
	t.Setenv("QUOTED", "")
	os.Unsetenv("LECTIO_ENV_FILE_KEY")
	os.Unsetenv("QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("LECTIO_ENV_FILE_KEY"))
	assert.Equal(t, "world", os.Getenv("QUOTED"))
}
