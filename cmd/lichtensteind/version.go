package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clientVersion is overridden at build time via -ldflags
// "-X main.clientVersion=...", per the teacher's own build convention for
// stamping a version string into a release binary.
var clientVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lichtensteind version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(clientVersion)
	},
}
