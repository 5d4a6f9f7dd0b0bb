package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prepiz",
	Short: "UPSC study tracker",
	Long: "Prepiz is a terminal study companion for the UPSC Civil Services exam: " +
		"timed tests from a bundled question bank, syllabus tracking and a progress dashboard.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PREPIZ_DB)")
	rootCmd.PersistentFlags().String("assets", "", "Directory with assignments/ and the syllabus JSON (overrides the bundled content)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config.yaml")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(syllabusCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
