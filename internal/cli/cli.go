// Package cli implements the quizdoc command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Version is reported by --version and the MCP server.
const Version = "0.1.0"

// stdin allows tests to override standard input.
var stdin io.Reader = os.Stdin

// usageError marks argument problems that exit with ExitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// Run executes the CLI and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, stdin: stdin}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(a.stdin)

	if len(args) == 0 {
		_ = root.Usage()
		return ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd, err := root.ExecuteContextC(ctx)
	defer a.close()
	if err == nil {
		return ExitOK
	}

	var ue *usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		if cmd == nil {
			cmd = root
		}
		cmd.SetOut(stderr)
		_ = cmd.Usage()
		return ExitUsage
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "quizdoc",
		Short: "Regroup quiz documents by question type",
		Long: `quizdoc extracts the text of a quiz document (pdf, docx, odt, html, md, txt),
splits it into multiple choice, true/false, short answer and long answer questions
using the section headings, and renders the result as a new document.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFlag, "config", "", "Path to config file (default: search for .quizdoc/config.yml)")
	flags.StringVar(&a.logPath, "log", "", "Also append log lines to this file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug messages")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		initCmd(a),
		validateCmd(a),
		extractCmd(a),
		parseCmd(a),
		convertCmd(a),
		renderCmd(a),
		batchCmd(a),
		historyCmd(a),
		showCmd(a),
		previewCmd(a),
		browseCmd(a),
		serveCmd(a),
		mcpCmd(a),
		botCmd(a),
	)
	return root
}

// exactArgs is cobra.ExactArgs with a usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("expected at least %d argument(s), got %d", n, len(args))
		}
		return nil
	}
}
