package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepiz/internal/payload"
)

// version is set via -ldflags at build time.
var version = ""

// buildVersion falls back to the module version stamped by go install.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the prepiz version and attempt format",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "prepiz", buildVersion())
		fmt.Fprintln(out, "attempt payload", payload.Version)
	},
}
