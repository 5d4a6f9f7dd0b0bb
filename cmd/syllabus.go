package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/syllabus"
)

var syllabusCmd = &cobra.Command{
	Use:   "syllabus",
	Short: "Browse and update syllabus progress",
}

var syllabusListCmd = &cobra.Command{
	Use:   "list [subject]",
	Short: "Print the syllabus tree with completion, optionally for one subject",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		subjects := d.syllabus.Subjects()
		if len(args) == 1 {
			s, ok := d.syllabus.Subject(args[0])
			if !ok {
				return fmt.Errorf("no subject named %q", args[0])
			}
			subjects = []syllabus.Subject{s}
		}
		printSyllabus(cmd.OutOrStdout(), subjects)
		return nil
	},
}

var syllabusCompleteCmd = &cobra.Command{
	Use:   "complete <item-id>...",
	Short: "Mark syllabus items as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setItems(cmd, args, true)
	},
}

var syllabusReopenCmd = &cobra.Command{
	Use:   "reopen <item-id>...",
	Short: "Mark syllabus items as not completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setItems(cmd, args, false)
	},
}

func init() {
	syllabusCmd.AddCommand(syllabusListCmd)
	syllabusCmd.AddCommand(syllabusCompleteCmd)
	syllabusCmd.AddCommand(syllabusReopenCmd)
}

func setItems(cmd *cobra.Command, ids []string, done bool) error {
	d, err := buildDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	w := cmd.OutOrStdout()
	for _, id := range ids {
		if err := d.syllabus.SetCompleted(cmd.Context(), id, done); err != nil {
			return err
		}
		item, loc, _ := d.syllabus.Find(id)
		state := "reopened"
		if done {
			state = "completed"
		}
		fmt.Fprintf(w, "%s %s: %s (%s › %s)\n", state, id, item.Name, loc.Subject, loc.Unit)
	}
	completed, total := d.syllabus.Totals()
	fmt.Fprintf(w, "Overall %d / %d items (%d%%)\n", completed, total, syllabus.Percent(completed, total))
	return nil
}

func printSyllabus(w io.Writer, subjects []syllabus.Subject) {
	for _, s := range subjects {
		fmt.Fprintf(w, "%s [%s]  %d/%d (%d%%)\n", s.Name, s.Paper,
			s.CompletedItems(), s.TotalItems(), syllabus.Percent(s.CompletedItems(), s.TotalItems()))
		for _, u := range s.Units {
			fmt.Fprintf(w, "  %s  %d/%d\n", u.Name, u.CompletedItems(), u.TotalItems())
			for _, st := range u.SubTopics {
				fmt.Fprintf(w, "    %s\n", st.Name)
				for _, it := range st.Items {
					box := "[ ]"
					if it.Completed {
						box = "[x]"
					}
					fmt.Fprintf(w, "      %s %-10s %s\n", box, it.ID, it.Name)
				}
			}
		}
	}
}
