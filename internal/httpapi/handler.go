// Package httpapi exposes parsing and rendering over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quizdoc/internal/pipeline"
	"quizdoc/internal/render"
)

// DefaultMaxUploadBytes bounds request bodies when Config leaves it unset.
const DefaultMaxUploadBytes = 32 << 20

// Config wires the handler.
type Config struct {
	Pipeline       *pipeline.Pipeline
	Logger         *slog.Logger
	MaxUploadBytes int64
	// DefaultFormat is used by /v1/render when no format query is given.
	DefaultFormat render.Format
	Title         string
}

type handler struct {
	pipeline      *pipeline.Pipeline
	logger        *slog.Logger
	maxUpload     int64
	defaultFormat render.Format
	title         string
}

// NewHandler builds the HTTP router.
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Pipeline == nil {
		cfg.Pipeline = pipeline.New(pipeline.Config{Logger: cfg.Logger})
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = render.FormatPDF
	}
	h := &handler{
		pipeline:      cfg.Pipeline,
		logger:        cfg.Logger,
		maxUpload:     cfg.MaxUploadBytes,
		defaultFormat: cfg.DefaultFormat,
		title:         cfg.Title,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", h.handleParse)
		r.Post("/documents", h.handleDocument)
		r.Post("/render", h.handleRender)
	})
	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
