package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"deepwork/internal/stats"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var headingStyle = lipgloss.NewStyle().Bold(true)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a summary of the session log",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	service, err := openServices(options, logger)
	if err != nil {
		return err
	}
	defer service.Close()

	records, err := service.log.Records(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read session log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No data available.")
		return nil
	}
	return printSummary(out, stats.Summarize(records))
}

func printSummary(out io.Writer, summary stats.Summary) error {
	fmt.Fprintln(out, headingStyle.Render("Sessions"))
	fmt.Fprintf(out, "  %d total, %d work, %d break\n", summary.Sessions, summary.WorkSessions, summary.BreakSessions)
	fmt.Fprintf(out, "  %d min of work, %d min of break\n\n", summary.WorkMinutes, summary.BreakMinutes)

	fmt.Fprintln(out, headingStyle.Render("Per day"))
	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "  DATE\tWORK\tBREAK")
	for _, day := range summary.Days {
		fmt.Fprintf(table, "  %s\t%d\t%d\n", day.Date, day.WorkMinutes, day.BreakMinutes)
	}
	return table.Flush()
}
