package main

import (
	"github.com/aretw0/glossa/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [lang]",
	Short: "Export the domain tree visualization",
	Long:  `Inspects the project and outputs a Mermaid diagram (graph TD) of domains, skills and intents for one language.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		lang := ""
		if len(args) > 0 {
			lang = args[0]
		}
		return cli.RunGraph(cmd.Context(), env, lang, cli.Output{W: cmd.OutOrStdout()})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
