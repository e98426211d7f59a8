package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped with -ldflags "-X github.com/pugivik/sumas/cmd.version=v1.2.3".
var version string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sumas version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "sumas", buildVersion())
		return err
	},
}

// buildVersion prefers the stamped version, then the module version that
// `go install` records, and reports a local build as (devel).
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
