package config

import "strings"

// Defaults applied by Normalize.
const (
	DefaultMinChars       = 100
	DefaultMaxFileSize    = 100 * 1024 * 1024
	DefaultOCRModel       = "gemini-1.5-flash"
	DefaultOCRKeyEnv      = "GEMINI_API_KEY"
	DefaultRenderFormat   = "pdf"
	DefaultTitle          = "Questionnaire"
	DefaultArchiveDriver  = "sqlite"
	DefaultArchiveDSN     = ".quizdoc/archive.db"
	DefaultServerAddr     = "127.0.0.1:8080"
	DefaultMaxUploadBytes = 32 * 1024 * 1024
	DefaultBotTokenEnv    = "TELEGRAM_BOT_TOKEN"
	DefaultBatchJobs      = 4
)

// Default returns a normalized config as if loaded from an empty version 1 file.
func Default() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}

// Normalize trims string fields and fills zero values with defaults.
func Normalize(cfg *Config) {
	ext := &cfg.Extraction
	if ext.MinChars == 0 {
		ext.MinChars = DefaultMinChars
	}
	if ext.MaxFileSize == 0 {
		ext.MaxFileSize = DefaultMaxFileSize
	}
	ext.OCR.Model = defaultString(ext.OCR.Model, DefaultOCRModel)
	ext.OCR.APIKeyEnv = defaultString(ext.OCR.APIKeyEnv, DefaultOCRKeyEnv)

	cfg.Render.Format = strings.ToLower(defaultString(cfg.Render.Format, DefaultRenderFormat))
	cfg.Render.Title = defaultString(cfg.Render.Title, DefaultTitle)

	cfg.Archive.Driver = strings.ToLower(defaultString(cfg.Archive.Driver, DefaultArchiveDriver))
	cfg.Archive.DSN = strings.TrimSpace(cfg.Archive.DSN)
	if cfg.Archive.DSN == "" && cfg.Archive.Driver != "pgx" {
		cfg.Archive.DSN = DefaultArchiveDSN
	}

	cfg.Server.Addr = defaultString(cfg.Server.Addr, DefaultServerAddr)
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}

	cfg.Bot.TokenEnv = defaultString(cfg.Bot.TokenEnv, DefaultBotTokenEnv)
	cfg.Bot.Format = strings.ToLower(defaultString(cfg.Bot.Format, DefaultRenderFormat))

	if cfg.Batch.Jobs == 0 {
		cfg.Batch.Jobs = DefaultBatchJobs
	}
}

func defaultString(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
