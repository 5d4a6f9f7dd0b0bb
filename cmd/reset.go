package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/prepiz/internal/syllabus"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all attempts, progress, study time and preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this deletes all your data; run again with --yes to confirm")
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.store.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		// Reseed tracking rows from the pristine document, not the
		// in-memory tree, which still carries the old completion flags.
		subjects, err := syllabus.Load(d.assets, syllabus.DefaultPath)
		if err != nil {
			d.logger.Warn("load syllabus", zap.String("file", syllabus.DefaultPath), zap.Error(err))
			subjects = nil
		}
		tracker := syllabus.NewTracker(subjects, d.store.Tracking(), d.store.Activity(), d.logger)
		if err := tracker.Sync(cmd.Context()); err != nil {
			return fmt.Errorf("reseed syllabus: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
