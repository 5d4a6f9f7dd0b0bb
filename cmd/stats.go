package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/dashboard"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/usage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show syllabus progress, test statistics and study time",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		s, err := d.dashboard.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("load summary: %w", err)
		}
		printSummary(cmd.OutOrStdout(), s)
		return nil
	},
}

func printSummary(w io.Writer, s *dashboard.Summary) {
	fmt.Fprintf(w, "Syllabus    %d / %d items (%.1f%%)\n", s.CompletedItems, s.TotalItems, s.OverallProgress)
	for _, sp := range s.Subjects {
		fmt.Fprintf(w, "  %-12s %3d / %-3d %5.1f%%\n", sp.Subject, sp.Completed, sp.Total, sp.Percentage)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tests       %d taken\n", s.Tests.Total)
	if s.Tests.Total > 0 {
		fmt.Fprintf(w, "  average %.1f%%, best %.1f%%, average time %.1f min\n",
			s.Tests.AvgPercentage, s.Tests.BestPercentage, s.Tests.AvgTimeMinutes)
	}
	if len(s.WeakAreas) > 0 {
		names := make([]string, 0, len(s.WeakAreas))
		for _, wa := range s.WeakAreas {
			names = append(names, fmt.Sprintf("%s (%.1f%% over %d)", questionbank.DisplayName(wa.Subject), wa.AvgPercentage, wa.Attempts))
		}
		fmt.Fprintf(w, "  weak areas: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Study time  today %s, this week %s\n", usage.FormatDuration(s.TodayStudy), usage.FormatDuration(s.WeekStudy))
	fmt.Fprintf(w, "Streak      %d day(s)\n", s.Streak)

	if len(s.Upcoming) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Up next")
		for _, it := range s.Upcoming {
			fmt.Fprintf(w, "  %-10s %s (%s)\n", it.ItemID, it.Name, it.Subject)
		}
	}
}
