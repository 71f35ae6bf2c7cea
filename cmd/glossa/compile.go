package main

import (
	"github.com/aretw0/glossa/internal/cli"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <lang>",
	Short: "Print the training corpus of a language without training",
	Long: `Compiles one corpus and prints a per-intent summary, or the raw records as
NDJSON with --json. Records produced before a configuration error are still printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		pass, _ := cmd.Flags().GetString("pass")
		jsonMode, _ := cmd.Flags().GetBool("json")
		out := output()
		if jsonMode {
			out.Renderer = nil
		}
		return cli.RunCompile(cmd.Context(), env, cli.CompileOptions{
			Lang: args[0],
			Pass: pass,
			JSON: jsonMode,
		}, out)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("pass", "main", "Corpus to compile: main or resolvers")
	compileCmd.Flags().Bool("json", false, "Print one JSON record per line")
}
