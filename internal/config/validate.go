package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

var (
	renderFormats  = []string{"pdf", "markdown", "md", "html", "text", "txt", "json"}
	archiveDrivers = []string{"sqlite", "duckdb", "pgx"}
)

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Extraction.MinChars < 0 {
		collector.add("extraction.min_chars", "must be >= 0")
	}
	if cfg.Extraction.MaxFileSize < 0 {
		collector.add("extraction.max_file_size", "must be >= 0")
	}
	if cfg.Extraction.OCR.Enabled && !isEnvName(cfg.Extraction.OCR.APIKeyEnv) {
		collector.add("extraction.ocr.api_key_env", fmt.Sprintf("invalid environment variable name %q", cfg.Extraction.OCR.APIKeyEnv))
	}

	if !contains(renderFormats, cfg.Render.Format) {
		collector.add("render.format", fmt.Sprintf("unsupported format %q (expected one of %s)", cfg.Render.Format, strings.Join(renderFormats, ", ")))
	}

	if !contains(archiveDrivers, cfg.Archive.Driver) {
		collector.add("archive.driver", fmt.Sprintf("unsupported driver %q (expected one of %s)", cfg.Archive.Driver, strings.Join(archiveDrivers, ", ")))
	}
	if cfg.Archive.Enabled && cfg.Archive.DSN == "" {
		collector.add("archive.dsn", "is required when the archive is enabled")
	}

	if !strings.Contains(cfg.Server.Addr, ":") {
		collector.add("server.addr", fmt.Sprintf("expected host:port, got %q", cfg.Server.Addr))
	}
	if cfg.Server.MaxUploadBytes < 0 {
		collector.add("server.max_upload_bytes", "must be >= 0")
	}

	if !isEnvName(cfg.Bot.TokenEnv) {
		collector.add("bot.token_env", fmt.Sprintf("invalid environment variable name %q", cfg.Bot.TokenEnv))
	}
	if !contains(renderFormats, cfg.Bot.Format) {
		collector.add("bot.format", fmt.Sprintf("unsupported format %q", cfg.Bot.Format))
	}

	if cfg.Batch.Jobs < 1 {
		collector.add("batch.jobs", "must be >= 1")
	}

	return collector.result()
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func isEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
