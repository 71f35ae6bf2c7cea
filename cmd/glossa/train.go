package main

import (
	"os"

	"github.com/aretw0/glossa/internal/cli"
	"github.com/aretw0/glossa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train [dir]",
	Short: "Compile every language and persist the resolvers and main models",
	Long: `Runs the resolvers pass and the main pass for every configured language and
saves both models. A model that fails to save does not prevent the other from
being saved; the command then exits with status 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer env.Close()

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		watchMode, _ := cmd.Flags().GetBool("watch")
		if watchMode {
			tui.PrintBanner(os.Stderr)
			return cli.RunWatch(sigCtx, env, output())
		}
		return cli.RunTrain(sigCtx, env, output())
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().BoolP("watch", "w", false, "Retrain whenever the project changes")
}
