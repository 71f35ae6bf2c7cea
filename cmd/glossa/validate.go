package main

import (
	"fmt"

	"github.com/aretw0/glossa/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the project for consistency",
	Long: `Compiles both corpora of every language without training and reports
unsupported action types, skills missing a language, truncated expansions,
unbound slot items and answer placeholders without a variable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer env.Close()

		jsonMode, _ := cmd.Flags().GetBool("json")
		if err := cli.RunValidate(cmd.Context(), env, jsonMode, output()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if !jsonMode {
			fmt.Fprintln(cmd.OutOrStdout(), "Project is valid! ✅")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print every issue as JSON")
}
