package config

// Config is the parsed .quizdoc/config.yml.
type Config struct {
	Version    int              `yaml:"version"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Render     RenderConfig     `yaml:"render"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Server     ServerConfig     `yaml:"server"`
	Bot        BotConfig        `yaml:"bot"`
	Batch      BatchConfig      `yaml:"batch"`
}

type ExtractionConfig struct {
	MinChars    int       `yaml:"min_chars"`
	MaxFileSize int64     `yaml:"max_file_size"`
	OCR         OCRConfig `yaml:"ocr"`
}

type OCRConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type RenderConfig struct {
	Format string `yaml:"format"`
	Title  string `yaml:"title"`
}

type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type BotConfig struct {
	TokenEnv string `yaml:"token_env"`
	Format   string `yaml:"format"`
}

type BatchConfig struct {
	Jobs int `yaml:"jobs"`
}
