package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
extraction:
  min_chars: 100
  max_file_size: 104857600
  ocr:
    enabled: false
    model: gemini-1.5-flash
    api_key_env: GEMINI_API_KEY
render:
  format: pdf
  title: Questionnaire
archive:
  enabled: false
  driver: sqlite
  dsn: .quizdoc/archive.db
server:
  addr: 127.0.0.1:8080
  max_upload_bytes: 33554432
bot:
  token_env: TELEGRAM_BOT_TOKEN
  format: pdf
batch:
  jobs: 4
`

// Scaffold writes the default config file, refusing to overwrite an existing one.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
