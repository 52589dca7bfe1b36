// Package mcptool exposes the quiz parser as MCP tools.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"quizdoc/internal/pipeline"
	"quizdoc/internal/question"
	"quizdoc/internal/render"
	"quizdoc/internal/segment"
)

// Config wires the tools.
type Config struct {
	Pipeline      *pipeline.Pipeline
	DefaultFormat render.Format
	Title         string
}

// NewServer returns an MCP server with every quiz tool registered.
func NewServer(version string, cfg Config) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "quizdoc", Version: version}, nil)
	Register(srv, cfg)
	return srv
}

// Register adds the quiz tools to srv.
func Register(srv *mcp.Server, cfg Config) {
	if cfg.Pipeline == nil {
		cfg.Pipeline = pipeline.New(pipeline.Config{})
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = render.FormatPDF
	}
	t := &tools{cfg: cfg}
	addTool(srv, &mcp.Tool{
		Name:        "quiz_parse_text",
		Description: "Split extracted quiz text into multiple choice, true/false, short answer and long answer questions.",
		InputSchema: inputSchema(map[string]any{
			"text":   map[string]any{"type": "string", "description": "Extracted document text"},
			"source": map[string]any{"type": "string", "description": "Name used in logs and the archive"},
		}, []string{"text"}),
	}, t.parseText)
	addTool(srv, &mcp.Tool{
		Name:        "quiz_parse_file",
		Description: "Extract text from a document file (pdf, docx, odt, html, md, txt) and parse its questions.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Document path"},
		}, []string{"path"}),
	}, t.parseFile)
	addTool(srv, &mcp.Tool{
		Name:        "quiz_render",
		Description: "Render a question list as a pdf, markdown, html, text or json document.",
		InputSchema: inputSchema(map[string]any{
			"questions": map[string]any{"type": "array", "description": "Questions as returned by quiz_parse_text"},
			"format":    map[string]any{"type": "string", "description": "Output format (default from config)"},
			"output":    map[string]any{"type": "string", "description": "Destination file path"},
			"title":     map[string]any{"type": "string", "description": "Document title"},
		}, []string{"questions", "output"}),
	}, t.render)
	addTool(srv, &mcp.Tool{
		Name:        "quiz_kinds",
		Description: "List the question kinds and their section headings.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}, t.kinds)
}

type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

func addTool(srv *mcp.Server, tool *mcp.Tool, handle handlerFunc) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := handle(ctx, req.Params.Arguments)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}
		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func decode(args json.RawMessage, into any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

type tools struct {
	cfg Config
}

type parseResult struct {
	Source    string                `json:"source"`
	Strategy  string                `json:"strategy,omitempty"`
	Failed    bool                  `json:"failed,omitempty"`
	Questions []question.Question   `json:"questions"`
	Sections  []segment.SectionSpan `json:"sections"`
	Stats     segment.Stats         `json:"stats"`
}

func resultOf(out pipeline.Outcome) parseResult {
	return parseResult{
		Source:    out.Source,
		Strategy:  out.Extraction.Strategy,
		Failed:    out.Extraction.Failed,
		Questions: out.Parse.Questions,
		Sections:  out.Parse.Sections,
		Stats:     out.Parse.Stats,
	}
}

func (t *tools) parseText(ctx context.Context, args json.RawMessage) (any, error) {
	var req struct {
		Text   string `json:"text"`
		Source string `json:"source"`
	}
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	if req.Source == "" {
		req.Source = "mcp"
	}
	out, err := t.cfg.Pipeline.ProcessText(ctx, req.Source, req.Text)
	if err != nil {
		return nil, err
	}
	return resultOf(out), nil
}

func (t *tools) parseFile(ctx context.Context, args json.RawMessage) (any, error) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, errors.New("path is required")
	}
	if _, err := os.Stat(req.Path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", req.Path, err)
	}
	out, err := t.cfg.Pipeline.Process(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	return resultOf(out), nil
}

func (t *tools) render(_ context.Context, args json.RawMessage) (any, error) {
	var req struct {
		Questions []question.Question `json:"questions"`
		Format    string              `json:"format"`
		Output    string              `json:"output"`
		Title     string              `json:"title"`
	}
	if err := decode(args, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Output) == "" {
		return nil, errors.New("output is required")
	}
	format := t.cfg.DefaultFormat
	if req.Format != "" {
		parsed, err := render.ParseFormat(req.Format)
		if err != nil {
			return nil, err
		}
		format = parsed
	}
	title := req.Title
	if title == "" {
		title = t.cfg.Title
	}
	doc := render.Document{Title: title, Questions: req.Questions, NoColor: true}
	if err := render.WriteFile(req.Output, format, doc); err != nil {
		return nil, err
	}
	info, err := os.Stat(req.Output)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}
	return map[string]any{
		"output":    req.Output,
		"format":    string(format),
		"bytes":     info.Size(),
		"questions": len(req.Questions),
	}, nil
}

type kindInfo struct {
	Kind       question.Kind `json:"kind"`
	Label      string        `json:"label"`
	Heading    string        `json:"heading"`
	HasOptions bool          `json:"has_options"`
}

func (t *tools) kinds(_ context.Context, _ json.RawMessage) (any, error) {
	out := make([]kindInfo, 0, len(question.Kinds()))
	for _, kind := range question.Kinds() {
		out = append(out, kindInfo{Kind: kind, Label: kind.Label(), Heading: kind.Heading(), HasOptions: kind.AllowsOptions()})
	}
	return map[string]any{"kinds": out}, nil
}
