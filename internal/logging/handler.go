// Package logging provides the slog handler used by the command line tools.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Options configures a Handler.
type Options struct {
	Level   slog.Leveler
	NoColor bool
}

// Handler writes "[LEVEL] message key=value" lines.
type Handler struct {
	mu      *sync.Mutex
	w       io.Writer
	level   slog.Leveler
	palette palette
	attrs   []groupedAttr
	groups  []string
}

// groupedAttr is a logger attribute with the groups open when it was added.
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// NewHandler creates a handler writing to w. Colour is used only when w is a
// terminal and the environment does not opt out.
func NewHandler(w io.Writer, opts Options) *Handler {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{
		mu:      &sync.Mutex{},
		w:       w,
		level:   level,
		palette: paletteFor(w, opts.NoColor),
	}
}

// Enabled reports whether records at level are written.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes one record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.palette.level(r.Level))
	b.WriteByte(' ')
	b.WriteString(h.palette.message(r.Level, r.Message))
	for _, ga := range h.attrs {
		h.writeAttr(&b, ga.groups, ga.attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.writeAttr(&b, h.groups, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Handler) writeAttr(b *strings.Builder, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		nested := groups
		if attr.Key != "" {
			nested = append(append([]string{}, groups...), attr.Key)
		}
		for _, child := range attr.Value.Group() {
			h.writeAttr(b, nested, child)
		}
		return
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	b.WriteByte(' ')
	b.WriteString(h.palette.key(key))
	b.WriteByte('=')
	b.WriteString(formatValue(attr.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindDuration:
		s = v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		s = v.Time().Format(time.RFC3339)
	default:
		s = fmt.Sprint(v.Any())
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = make([]groupedAttr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, groupedAttr{groups: h.groups, attr: attr})
	}
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// New returns a logger for the command line with the verbose and colour choices applied.
func New(w io.Writer, verbose, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewHandler(w, Options{Level: level, NoColor: noColor}))
}

type palette struct {
	enabled bool
}

func paletteFor(w io.Writer, noColor bool) palette {
	if noColor {
		return palette{enabled: false}
	}
	return palette{enabled: ShouldUseStyling(w)}
}

// ShouldUseStyling reports whether ANSI styling is appropriate for w.
func ShouldUseStyling(w io.Writer) bool {
	if w == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether a writer is a TTY.
func IsTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p palette) level(level slog.Level) string {
	text := "[" + level.String() + "]"
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p palette) message(level slog.Level, text string) string {
	if !p.enabled {
		return text
	}
	switch {
	case level >= slog.LevelError:
		return ansiBold + ansiRed + text + ansiReset
	case level >= slog.LevelWarn:
		return ansiBold + ansiYellow + text + ansiReset
	case level < slog.LevelInfo:
		return ansiBlue + text + ansiReset
	default:
		return ansiBold + ansiGreen + text + ansiReset
	}
}

func (p palette) key(text string) string {
	if !p.enabled {
		return text
	}
	return ansiGray + text + ansiReset
}
