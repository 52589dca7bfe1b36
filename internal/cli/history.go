package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"quizdoc/internal/archive"
	"quizdoc/internal/render"
)

func historyCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if limit < 0 {
				return usagef("--limit must be >= 0")
			}
			store, err := a.archiveStore(cmd.Context())
			if err != nil {
				return err
			}
			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(w, "No archived runs")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Created", "Questions", "Source")
			for _, run := range runs {
				t.Row(run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04:05"), strconv.Itoa(run.QuestionCount), run.Source)
			}
			fmt.Fprintln(w, t.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print an archived run",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return usagef("%v", err)
			}
			if f == render.FormatPDF {
				return usagef("show cannot print pdf; use render with a saved set instead")
			}
			store, err := a.archiveStore(cmd.Context())
			if err != nil {
				return err
			}
			run, err := store.LoadRun(cmd.Context(), args[0])
			if errors.Is(err, archive.ErrRunNotFound) {
				return fmt.Errorf("no archived run %q", args[0])
			}
			if err != nil {
				return err
			}
			doc := render.Document{
				Title:     run.Title,
				Questions: run.Questions,
				NoColor:   !a.colorOutput(cmd.OutOrStdout()),
			}
			return render.Write(cmd.OutOrStdout(), f, doc)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown, html, json")
	return cmd
}
