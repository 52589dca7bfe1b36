package cli

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"quizdoc/internal/render"
	"quizdoc/internal/ui/browse"
)

const previewWidth = 80

func previewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <file|->",
		Short: "Render the grouped questions as styled markdown in the terminal",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			out, err := a.loadOutcome(cmd, args[0], false)
			if err != nil {
				return err
			}
			var md bytes.Buffer
			doc := render.Document{Title: a.cfg.Render.Title, Questions: out.Questions(), NoColor: true}
			if err := render.Write(&md, render.FormatMarkdown, doc); err != nil {
				return err
			}
			style := "notty"
			if a.colorOutput(cmd.OutOrStdout()) {
				style = "dark"
			}
			tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(previewWidth))
			if err != nil {
				return fmt.Errorf("create markdown renderer: %w", err)
			}
			rendered, err := tr.Render(md.String())
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func browseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse the parsed questions interactively",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return usagef("browse requires a terminal; use parse or preview instead")
			}
			if err := a.load(); err != nil {
				return err
			}
			out, err := a.loadOutcome(cmd, args[0], false)
			if err != nil {
				return err
			}
			return browse.Run(out.Questions(), browse.Options{
				Title:   a.cfg.Render.Title,
				Source:  out.Source,
				NoColor: a.noColor,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
