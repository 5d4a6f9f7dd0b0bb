package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/practice"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/scoring"
	"github.com/abhisek/prepiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past test attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		mode, _ := cmd.Flags().GetString("mode")
		switch questionbank.Mode(mode) {
		case "", questionbank.ModeSubject, questionbank.ModeUnit, questionbank.ModePaper:
		default:
			return fmt.Errorf("unknown mode %q (want subject, unit or gs_paper)", mode)
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		var recs []store.AttemptRecord
		if mode != "" {
			recs, err = d.store.Attempts().ByMode(cmd.Context(), mode)
			if limit > 0 && len(recs) > limit {
				recs = recs[:limit]
			}
		} else {
			recs, err = d.store.Attempts().Recent(cmd.Context(), limit)
		}
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		printAttempts(cmd.OutOrStdout(), recs)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <attempt-id>",
	Short: "Review the questions of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid attempt id %q", args[0])
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		rec, err := d.store.Attempts().Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("load attempt %d: %w", id, err)
		}
		items, err := practice.Review(*rec)
		if err != nil {
			return err
		}
		printReview(cmd.OutOrStdout(), items)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of attempts to list (0 for all)")
	historyCmd.Flags().String("mode", "", "Only list attempts of one mode: subject, unit or gs_paper")
	historyCmd.AddCommand(historyShowCmd)
}

func attemptScope(rec store.AttemptRecord) string {
	return questionbank.Scope{
		Mode:    questionbank.Mode(rec.Mode),
		Subject: rec.Subject,
		Unit:    rec.Unit,
		Paper:   rec.Paper,
	}.Label()
}

func printAttempts(w io.Writer, recs []store.AttemptRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No attempts yet.")
		return
	}
	fmt.Fprintf(w, "%5s  %-16s  %-32s  %7s  %6s  %s\n", "ID", "Date", "Scope", "Score", "%", "C/W/S")
	fmt.Fprintln(w, strings.Repeat("─", 88))
	for _, r := range recs {
		scope := attemptScope(r)
		if len(scope) > 32 {
			scope = scope[:29] + "..."
		}
		fmt.Fprintf(w, "%5d  %-16s  %-32s  %7.2f  %5.1f%%  %d/%d/%d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), scope,
			r.Score, r.Percentage, r.CorrectCount, r.WrongCount, r.SkippedCount)
	}
	fmt.Fprintf(w, "\n%d attempts\n", len(recs))
}

func printReview(w io.Writer, items []scoring.ReviewItem) {
	for _, it := range items {
		fmt.Fprintf(w, "Q%d  [%s]  %s\n", it.Index+1, it.Status, it.MarksLabel())
		fmt.Fprintln(w, it.Question.Text)
		for _, o := range it.Question.Options {
			mark := " "
			switch {
			case o.ID == it.Question.CorrectAnswer:
				mark = "✓"
			case o.ID == it.Answer.SelectedOption:
				mark = "✗"
			}
			fmt.Fprintf(w, "  %s %s) %s\n", mark, strings.ToUpper(o.ID), o.Text)
		}
		if it.Question.Explanation != "" {
			fmt.Fprintf(w, "  %s\n", it.Question.Explanation)
		}
		fmt.Fprintln(w)
	}
}
