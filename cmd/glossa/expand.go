package main

import (
	"github.com/aretw0/glossa/internal/cli"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand <template>",
	Short: "Print every utterance a template expands to",
	Example: `  glossa expand "{Hi|Hello} [there|]"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.RunExpand(env, args[0], output())
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
