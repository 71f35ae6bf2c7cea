package main

import (
	"fmt"

	"github.com/aretw0/glossa/internal/cli"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a sample project",
	Long:  `Writes a smalltalk domain with one skill, a global resolver, a global entity and a default glossa.yaml.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dir = args[0]
		}
		ids, err := cli.Scaffold(cmd.Context(), dir)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
