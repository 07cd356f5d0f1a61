package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/covrun/internal/domain"
	"github.com/renato0307/covrun/internal/reporter"
	"github.com/renato0307/covrun/internal/theme"
)

// renderSessionReport prints the end of session summary
func renderSessionReport(report *domain.SessionReport) {
	if report == nil {
		return
	}

	fmt.Println()
	fmt.Printf("%s %s  %s\n",
		theme.HeadingStyle.Render("Session"),
		theme.MutedStyle.Render(report.ID),
		theme.SessionStatusStyle(report.Status).Render(string(report.Status)),
	)

	if len(report.Results) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SCENARIO\tOUTCOME\tELAPSED\tERROR")
		for _, res := range report.Results {
			errText := ""
			if res.Err != nil {
				errText = res.Err.Error()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				res.Scenario,
				res.Outcome(),
				reporter.FormatElapsed(res.Run.Elapsed),
				errText,
			)
		}
		w.Flush()
	}

	if report.Coverage != nil {
		total := report.Coverage.Total
		fmt.Printf("%s %s (%d/%d statements)\n",
			theme.LabelStyle.Render("Coverage:"),
			theme.CoverageStyle(total.Percent()).Render(fmt.Sprintf("%.1f%%", total.Percent())),
			total.Covered, total.Statements,
		)
	}

	if report.Profiles != nil && report.Profiles.MergedPath != "" {
		fmt.Printf("%s %s (%d merged, %d skipped)\n",
			theme.LabelStyle.Render("Profile:"),
			report.Profiles.MergedPath,
			len(report.Profiles.Entries), len(report.Profiles.Skipped),
		)
	}
}

// renderCoverage prints a per-file coverage table
func renderCoverage(summary domain.CoverageSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSTATEMENTS\tCOVERED\tPERCENT")
	for _, f := range summary.Files {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\n", f.File, f.Statements, f.Covered, f.Percent())
	}
	fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
		summary.Total.File, summary.Total.Statements, summary.Total.Covered,
		theme.CoverageStyle(summary.Total.Percent()).Render(fmt.Sprintf("%.1f%%", summary.Total.Percent())),
	)
	w.Flush()
}
