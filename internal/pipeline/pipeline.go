// Package pipeline runs extraction and segmentation for documents.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"quizdoc/internal/archive"
	"quizdoc/internal/extract"
	"quizdoc/internal/question"
	"quizdoc/internal/segment"
)

// Sink receives every successful outcome.
type Sink interface {
	SaveRun(ctx context.Context, in archive.RunInput) (archive.RunSummary, error)
}

// Config wires the pipeline collaborators. Nil fields get defaults.
type Config struct {
	Extractor *extract.Extractor
	Parser    *segment.Parser
	Archive   Sink
	Logger    *slog.Logger
	// Title is stored with archived runs; the file name is used when empty.
	Title string
}

// Outcome is the result of processing one document.
type Outcome struct {
	Source     string              `json:"source"`
	Extraction extract.Result      `json:"extraction"`
	Parse      segment.Result      `json:"parse"`
	Run        *archive.RunSummary `json:"run,omitempty"`
	Err        error               `json:"-"`
}

// Questions returns the parsed questions.
func (o Outcome) Questions() []question.Question {
	return o.Parse.Questions
}

// Pipeline processes documents.
type Pipeline struct {
	extractor *extract.Extractor
	parser    *segment.Parser
	archive   Sink
	logger    *slog.Logger
	title     string
}

// New creates a pipeline from cfg.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Extractor == nil {
		cfg.Extractor = extract.New(extract.Config{Logger: cfg.Logger})
	}
	if cfg.Parser == nil {
		cfg.Parser = segment.NewParser()
	}
	return &Pipeline{
		extractor: cfg.Extractor,
		parser:    cfg.Parser,
		archive:   cfg.Archive,
		logger:    cfg.Logger,
		title:     cfg.Title,
	}
}

// Process extracts text from path and parses it. A document whose extraction
// fails still parses: the failure sentinel yields zero questions.
func (p *Pipeline) Process(ctx context.Context, path string) (Outcome, error) {
	extraction, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return Outcome{Source: path}, err
	}
	return p.finish(ctx, path, extraction, p.parser.Parse(extraction.Text))
}

// ProcessText parses already extracted text. source names it in logs and the archive.
func (p *Pipeline) ProcessText(ctx context.Context, source, text string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{Source: source}, err
	}
	extraction := extract.Result{Path: source, Format: extract.FormatText, Text: text, Attempts: []extract.Attempt{}}
	return p.finish(ctx, source, extraction, p.parser.Parse(text))
}

func (p *Pipeline) finish(ctx context.Context, source string, extraction extract.Result, parsed segment.Result) (Outcome, error) {
	out := Outcome{Source: source, Extraction: extraction, Parse: parsed}
	counts := parsed.Stats.QuestionsByKind
	p.logger.Info("parsed document",
		"source", source,
		"strategy", extraction.Strategy,
		"sections", len(parsed.Sections),
		"mcq", counts[question.KindMultipleChoice],
		"true_false", counts[question.KindTrueFalse],
		"short_answer", counts[question.KindShortAnswer],
		"long_answer", counts[question.KindLongAnswer],
	)
	if p.archive == nil {
		return out, nil
	}
	summary, err := p.archive.SaveRun(ctx, archive.RunInput{
		Source:    source,
		Title:     p.runTitle(source),
		Strategy:  extraction.Strategy,
		Questions: parsed.Questions,
	})
	if err != nil {
		return out, fmt.Errorf("archive %s: %w", source, err)
	}
	p.logger.Debug("archived run", "source", source, "run_id", summary.ID)
	out.Run = &summary
	return out, nil
}

func (p *Pipeline) runTitle(source string) string {
	if p.title != "" {
		return p.title
	}
	return filepath.Base(source)
}

// ProcessAll processes paths with at most jobs documents in flight. Outcomes keep
// the order of paths; a per-document error is recorded in Outcome.Err. The
// returned error is non-nil only when ctx ends.
func (p *Pipeline) ProcessAll(ctx context.Context, paths []string, jobs int) ([]Outcome, error) {
	if jobs <= 0 {
		jobs = 1
	}
	outcomes := make([]Outcome, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range paths {
		group.Go(func() error {
			out, err := p.Process(groupCtx, path)
			if err != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				out.Err = err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
