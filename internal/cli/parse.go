package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quizdoc/internal/pipeline"
	"quizdoc/internal/question"
	"quizdoc/internal/render"
)

func extractCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the text recovered from a document",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			res, err := a.extractor().Extract(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output != "" {
				if err := os.WriteFile(output, []byte(res.Text+"\n"), 0o644); err != nil {
					return fmt.Errorf("write text: %w", err)
				}
			} else {
				fmt.Fprintln(w, res.Text)
			}
			if res.Failed {
				return fmt.Errorf("no strategy recovered more than %d characters from %s", a.cfg.Extraction.MinChars, args[0])
			}
			a.log().Info("text extracted", "path", args[0], "strategy", res.Strategy, "chars", len([]rune(res.Text)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the text to a file instead of stdout")
	return cmd
}

// loadOutcome processes a document path, or stdin text when path is "-".
func (a *app) loadOutcome(cmd *cobra.Command, path string, archiveRuns bool) (pipeline.Outcome, error) {
	p, err := a.pipeline(cmd.Context(), archiveRuns)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return pipeline.Outcome{}, fmt.Errorf("read stdin: %w", err)
		}
		return p.ProcessText(cmd.Context(), "stdin", string(data))
	}
	return p.Process(cmd.Context(), path)
}

func parseCmd(a *app) *cobra.Command {
	var (
		format      string
		output      string
		archiveRuns bool
	)
	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a document and print its questions grouped by type",
		Long: `Parse a document and print its questions grouped by type.

Without --output the grouped listing is printed; "-" reads text from stdin.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			out, err := a.loadOutcome(cmd, args[0], archiveRuns)
			if err != nil {
				return err
			}
			doc := render.Document{
				Title:     a.cfg.Render.Title,
				Questions: out.Questions(),
				NoColor:   !a.colorOutput(cmd.OutOrStdout()),
			}
			if out.Run != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Archived run %s\n", out.Run.ID)
			}
			if output == "" {
				f := render.FormatText
				if format != "" {
					parsed, err := render.ParseFormat(format)
					if err != nil {
						return usagef("%v", err)
					}
					f = parsed
				}
				return render.Write(cmd.OutOrStdout(), f, doc)
			}
			f, err := a.outputFormat(format, output)
			if err != nil {
				return err
			}
			doc.NoColor = true
			if err := render.WriteFile(output, f, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(doc.Questions), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: pdf, markdown, html, text, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the rendered document to a file")
	cmd.Flags().BoolVar(&archiveRuns, "archive", false, "Store the run in the archive")
	return cmd
}

func convertCmd(a *app) *cobra.Command {
	var (
		format      string
		archiveRuns bool
	)
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Extract, parse and render a document in one step",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			f, err := a.outputFormat(format, args[1])
			if err != nil {
				return err
			}
			out, err := a.loadOutcome(cmd, args[0], archiveRuns)
			if err != nil {
				return err
			}
			if out.Extraction.Failed {
				a.log().Warn("writing document without questions", "input", args[0])
			}
			doc := render.Document{Title: a.cfg.Render.Title, Questions: out.Questions(), NoColor: true}
			if err := render.WriteFile(args[1], f, doc); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Extracted %d questions in total\n", len(doc.Questions))
			fmt.Fprintf(w, "Structured questionnaire saved to %s\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (default: from the output extension)")
	cmd.Flags().BoolVar(&archiveRuns, "archive", false, "Store the run in the archive")
	return cmd
}

func renderCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "render <set.json|set.yml> <output>",
		Short: "Render a saved question set",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			set, err := question.LoadSet(args[0])
			if err != nil {
				return err
			}
			f, err := a.outputFormat(format, args[1])
			if err != nil {
				return err
			}
			title := set.Title
			if title == "" {
				title = a.cfg.Render.Title
			}
			if err := render.WriteFile(args[1], f, render.Document{Title: title, Questions: set.Questions, NoColor: true}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(set.Questions), args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (default: from the output extension)")
	return cmd
}

func batchCmd(a *app) *cobra.Command {
	var (
		format      string
		outDir      string
		jobs        int
		archiveRuns bool
	)
	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Convert several documents concurrently",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			f, err := a.outputFormat(format, "")
			if err != nil {
				return err
			}
			if jobs <= 0 {
				jobs = a.cfg.Batch.Jobs
			}
			p, err := a.pipeline(cmd.Context(), archiveRuns)
			if err != nil {
				return err
			}
			outcomes, err := p.ProcessAll(cmd.Context(), args, jobs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			failed := 0
			dests := batchOutputPaths(outDir, args, f)
			for i, out := range outcomes {
				if out.Err != nil || out.Extraction.Failed {
					failed++
					reason := "no text extracted"
					if out.Err != nil {
						reason = out.Err.Error()
					}
					fmt.Fprintf(w, "%s: failed (%s)\n", out.Source, reason)
					continue
				}
				dest := dests[i]
				doc := render.Document{Title: a.cfg.Render.Title, Questions: out.Questions(), NoColor: true}
				if err := render.WriteFile(dest, f, doc); err != nil {
					failed++
					fmt.Fprintf(w, "%s: failed (%v)\n", out.Source, err)
					continue
				}
				fmt.Fprintf(w, "%s -> %s (%d questions)\n", out.Source, dest, len(doc.Questions))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (default: render.format from config)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for converted documents (default: next to each input)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Documents processed in parallel (default: batch.jobs from config)")
	cmd.Flags().BoolVar(&archiveRuns, "archive", false, "Store every run in the archive")
	return cmd
}

// batchOutputPaths names each converted file "<base>_sorted<ext>". Inputs that
// would land on the same path (same base name in different directories under
// one --out-dir) get "_2", "_3", ... in argument order.
func batchOutputPaths(outDir string, sources []string, format render.Format) []string {
	used := make(map[string]bool, len(sources))
	dests := make([]string, len(sources))
	for i, source := range sources {
		base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(source)
		}
		dest := filepath.Join(dir, base+"_sorted"+format.Extension())
		for n := 2; used[filepath.Clean(dest)]; n++ {
			dest = filepath.Join(dir, fmt.Sprintf("%s_%d_sorted%s", base, n, format.Extension()))
		}
		used[filepath.Clean(dest)] = true
		dests[i] = dest
	}
	return dests
}
