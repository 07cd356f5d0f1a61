package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/renato0307/covrun/internal/ports"
	"github.com/renato0307/covrun/internal/reporter"
	"github.com/renato0307/covrun/internal/theme"
)

// HistoryCmd lists recorded sessions, or the runs of one session
type HistoryCmd struct {
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit   int    `help:"Maximum number of sessions to show (0 = all)" default:"10"`
	Session string `arg:"" optional:"" help:"Session ID to show runs for"`
}

// Run executes the history command
func (h *HistoryCmd) Run(ctx context.Context, cli *CLI) error {
	ledger := cli.Container.Ledger

	if h.Session != "" {
		runs, err := ledger.ListRuns(ctx, h.Session)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs recorded for session %s", h.Session)
		}
		if h.Format == "json" {
			return printJSON(runs)
		}
		h.renderRuns(runs)
		return nil
	}

	sessions, err := ledger.ListSessions(ctx, h.Limit)
	if err != nil {
		return err
	}
	if h.Format == "json" {
		return printJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}
	h.renderSessions(sessions)
	return nil
}

func (h *HistoryCmd) renderSessions(sessions []ports.LedgerSession) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tSTATUS\tSTARTED\tDURATION")
	for _, s := range sessions {
		duration := "-"
		if s.FinishedAt != nil {
			duration = reporter.FormatElapsed(s.FinishedAt.Sub(s.StartedAt))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.Mode,
			theme.SessionStatusStyle(s.Status).Render(string(s.Status)),
			s.StartedAt.Local().Format(time.DateTime),
			duration,
		)
	}
	w.Flush()
}

func (h *HistoryCmd) renderRuns(runs []ports.LedgerRun) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tOUTCOME\tEXIT\tELAPSED\tVALIDATION")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			r.Scenario,
			theme.OutcomeStyle(r.Outcome).Render(string(r.Outcome)),
			r.ExitCode,
			reporter.FormatElapsed(r.Elapsed),
			r.ValidationError,
		)
	}
	w.Flush()
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
