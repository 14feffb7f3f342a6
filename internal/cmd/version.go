package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version, overridden at build time via
// -ldflags "-X github.com/Iron-Ham/tripflow/internal/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tripflow version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tripflow version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
