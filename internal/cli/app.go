package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"quizdoc/internal/archive"
	"quizdoc/internal/config"
	"quizdoc/internal/extract"
	"quizdoc/internal/logging"
	"quizdoc/internal/pipeline"
	"quizdoc/internal/render"
)

// app carries the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader

	configFlag string
	logPath    string
	verbose    bool
	noColor    bool

	cfg        config.Config
	configPath string
	loaded     bool
	logger     *slog.Logger
	logFile    *os.File
	store      *archive.Store
}

// load reads the config once. A missing config falls back to defaults.
func (a *app) load() error {
	if a.loaded {
		return nil
	}
	path := a.configFlag
	if path != "" {
		resolved, err := resolveConfigPath(path)
		if err != nil {
			return err
		}
		path = resolved
	}
	cfg, found, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.configPath = found
	a.loaded = true
	a.log().Debug("config loaded", "path", found)
	return nil
}

// log returns the invocation logger. With --log, lines are also appended to
// that file, uncoloured.
func (a *app) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	w, noColor := a.stderr, a.noColor
	if a.logPath != "" {
		file, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(a.stderr, "warning: open log file: %v\n", err)
		} else {
			a.logFile = file
			w, noColor = io.MultiWriter(a.stderr, file), true
		}
	}
	a.logger = logging.New(w, a.verbose, noColor)
	return a.logger
}

// colorOutput reports whether w should receive styled output.
func (a *app) colorOutput(w io.Writer) bool {
	return !a.noColor && isTerminal(w) && logging.ShouldUseStyling(w)
}

func (a *app) extractor() *extract.Extractor {
	cfg := extract.Config{
		MinChars:    a.cfg.Extraction.MinChars,
		MaxFileSize: a.cfg.Extraction.MaxFileSize,
		Logger:      a.log(),
	}
	ocr := a.cfg.Extraction.OCR
	if ocr.Enabled {
		if key := os.Getenv(ocr.APIKeyEnv); key != "" {
			cfg.OCR = extract.NewGeminiOCR(key, ocr.Model)
		} else {
			a.log().Warn("ocr enabled but api key is not set", "env", ocr.APIKeyEnv)
		}
	}
	return extract.New(cfg)
}

// archiveStore opens the configured archive once per invocation.
func (a *app) archiveStore(ctx context.Context) (*archive.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	dsn := a.cfg.Archive.DSN
	if a.cfg.Archive.Driver != archive.DriverPostgres {
		dsn = config.ResolvePath(a.configPath, dsn)
	}
	store, err := archive.Open(ctx, a.cfg.Archive.Driver, dsn)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// pipeline builds the processing pipeline, with the archive sink when requested
// or enabled in config.
func (a *app) pipeline(ctx context.Context, archiveRuns bool) (*pipeline.Pipeline, error) {
	cfg := pipeline.Config{Extractor: a.extractor(), Logger: a.log()}
	if archiveRuns || a.cfg.Archive.Enabled {
		store, err := a.archiveStore(ctx)
		if err != nil {
			return nil, err
		}
		cfg.Archive = store
	}
	return pipeline.New(cfg), nil
}

// outputFormat resolves a --format flag, then the output extension, then config.
func (a *app) outputFormat(flag, outputPath string) (render.Format, error) {
	if flag != "" {
		format, err := render.ParseFormat(flag)
		if err != nil {
			return "", usagef("%v", err)
		}
		return format, nil
	}
	if outputPath != "" {
		if format, err := render.FormatFromPath(outputPath); err == nil {
			return format, nil
		}
	}
	format, err := render.ParseFormat(a.cfg.Render.Format)
	if err != nil {
		return "", fmt.Errorf("config render.format: %w", err)
	}
	return format, nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log().Warn("close archive", "err", err)
		}
		a.store = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
