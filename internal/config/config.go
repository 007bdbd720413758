// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Server   ServerConfig
	Pipeline PipelineConfig
	Sources  SourcesConfig
	Rewriter RewriterConfig
	Export   ExportConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 120s, pipeline runs are slow)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed CORS origins
}

// PipelineConfig holds tuning knobs for the notes synthesis pipeline.
type PipelineConfig struct {
	// WindowSeconds is the target time window length W for the normalizer.
	WindowSeconds float64
	// MinWindowsPerTopic is the minimum span size before a boundary may close it.
	MinWindowsPerTopic int
	// BoundaryThreshold is the lexical-change score above which a topic boundary is placed.
	BoundaryThreshold float64
}

// SourcesConfig holds configuration for the external data collaborators.
type SourcesConfig struct {
	// FetchTimeout bounds the whole scatter/gather phase.
	FetchTimeout time.Duration
	// OCREnabled allows disabling frame OCR even when the tools are installed.
	OCREnabled bool
	// YtdlpPath overrides auto-detection of yt-dlp (default: auto-detect).
	YtdlpPath string
	// FFmpegPath overrides auto-detection of ffmpeg (default: auto-detect).
	FFmpegPath string
	// TesseractPath overrides auto-detection of tesseract (default: auto-detect).
	TesseractPath string
}

// RewriterConfig holds configuration for the optional LLM style rewriter.
type RewriterConfig struct {
	// OpenAIAPIKey enables the rewriter when set; empty means passthrough.
	OpenAIAPIKey string
	// Model is the chat model used for rewriting (default: gpt-4o-mini).
	Model string
	// Timeout bounds the single rewrite call per request.
	Timeout time.Duration
}

// ExportConfig holds export artifact configuration.
type ExportConfig struct {
	// Dir is the directory holding rendered artifacts and the note index (default: ~/Lectio/exports).
	Dir string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 120s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")

	windowSeconds := flag.String("window-seconds", "", "Target transcript window length in seconds (default: 45)")
	minWindows := flag.String("min-windows-per-topic", "", "Minimum windows per topic span (default: 2)")
	boundaryThreshold := flag.String("boundary-threshold", "", "Lexical-change boundary threshold (default: 0.82)")

	fetchTimeout := flag.String("fetch-timeout", "", "Source fetch timeout (default: 90s)")
	ocrEnabled := flag.String("ocr-enabled", "", "Enable frame OCR when tools are available (default: true)")
	ytdlpPath := flag.String("ytdlp-path", "", "Path to yt-dlp binary (default: auto-detect)")
	ffmpegPath := flag.String("ffmpeg-path", "", "Path to ffmpeg binary (default: auto-detect)")
	tesseractPath := flag.String("tesseract-path", "", "Path to tesseract binary (default: auto-detect)")

	rewriteModel := flag.String("rewrite-model", "", "Chat model for style rewriting (default: gpt-4o-mini)")
	rewriteTimeout := flag.String("rewrite-timeout", "", "Style rewrite call timeout (default: 30s)")

	exportDir := flag.String("export-dir", "", "Directory for rendered export artifacts")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		},
		Pipeline: PipelineConfig{
			WindowSeconds:      getFloatConfigValue(*windowSeconds, "PIPELINE_WINDOW_SECONDS", 45),
			MinWindowsPerTopic: getIntConfigValue(*minWindows, "PIPELINE_MIN_WINDOWS_PER_TOPIC", 2),
			BoundaryThreshold:  getFloatConfigValue(*boundaryThreshold, "PIPELINE_BOUNDARY_THRESHOLD", 0.82),
		},
		Sources: SourcesConfig{
			OCREnabled:    getBoolConfigValue(*ocrEnabled, "OCR_ENABLED", true),
			YtdlpPath:     getConfigValue(*ytdlpPath, "YTDLP_PATH", ""),
			FFmpegPath:    getConfigValue(*ffmpegPath, "FFMPEG_PATH", ""),
			TesseractPath: getConfigValue(*tesseractPath, "TESSERACT_PATH", ""),
		},
		Rewriter: RewriterConfig{
			OpenAIAPIKey: getConfigValue("", "OPENAI_API_KEY", ""),
			Model:        getConfigValue(*rewriteModel, "REWRITE_MODEL", "gpt-4o-mini"),
		},
		Export: ExportConfig{
			Dir: getConfigValue(*exportDir, "EXPORT_DIR", ""),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "120s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Sources.FetchTimeout, err = parseDurationValue(*fetchTimeout, "SOURCE_FETCH_TIMEOUT", "90s"); err != nil {
		return nil, err
	}
	if cfg.Rewriter.Timeout, err = parseDurationValue(*rewriteTimeout, "REWRITE_TIMEOUT", "30s"); err != nil {
		return nil, err
	}

	if err := cfg.expandExportDir(); err != nil {
		return nil, fmt.Errorf("invalid export dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Pipeline.WindowSeconds <= 0 {
		return fmt.Errorf("window seconds must be positive, got %v", c.Pipeline.WindowSeconds)
	}

	if c.Pipeline.MinWindowsPerTopic < 1 {
		return fmt.Errorf("min windows per topic must be at least 1, got %d", c.Pipeline.MinWindowsPerTopic)
	}

	if c.Pipeline.BoundaryThreshold <= 0 || c.Pipeline.BoundaryThreshold > 1 {
		return fmt.Errorf("boundary threshold must be in (0, 1], got %v", c.Pipeline.BoundaryThreshold)
	}

	if c.Export.Dir == "" {
		return errors.New("export dir cannot be empty after expansion")
	}

	return nil
}

// expandExportDir expands ~ and makes the path absolute.
// Defaults to ~/Lectio/exports if not specified.
func (c *Config) expandExportDir() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Lectio", "exports")

	expanded, err := expandPath(c.Export.Dir, defaultPath)
	if err != nil {
		return err
	}
	c.Export.Dir = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// splitList parses a comma-separated list, trimming whitespace and empties.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseDurationValue resolves a duration from flag, env var, or default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	str := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(strings.ReplaceAll(envKey, "_", " ")), str, err)
	}
	return d, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
