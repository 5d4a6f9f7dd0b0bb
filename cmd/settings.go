package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read or change preferences",
}

var settingsGetCmd = &cobra.Command{
	Use:       "get [key]",
	Short:     "Print one preference, or all of them",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: settings.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		keys := settings.Keys()
		if len(args) == 1 {
			keys = args
		}
		for _, k := range keys {
			v, err := d.settings.Get(cmd.Context(), k)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, v)
			}
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change a preference (app_theme: light, dark or system; username)",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.settings.Set(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		v, err := d.settings.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], v)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
