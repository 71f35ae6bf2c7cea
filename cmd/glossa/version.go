package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/glossa"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of glossa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "glossa version %s\n", strings.TrimSpace(glossa.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
