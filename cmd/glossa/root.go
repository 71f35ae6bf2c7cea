package main

import (
	"fmt"
	"os"

	"github.com/aretw0/glossa/internal/cli"
	"github.com/aretw0/glossa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "glossa",
	Short: "Glossa compiles skill NLU data into trained language models",
	Long: `Glossa walks the domains and skills of a project, expands utterance templates,
binds answer variables and trains a resolvers model and a main model per language.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the Glossa project")
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default <dir>/glossa.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the configuration)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().StringSlice("lang", nil, "Languages to process (overrides the configuration)")
}

// setup builds the trainer environment from the persistent flags.
// A positional argument is taken as the project directory when --dir is not set.
func setup(cmd *cobra.Command, args []string) (*cli.Env, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}
	configPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	langs, _ := cmd.Flags().GetStringSlice("lang")

	return cli.Setup(cli.Options{
		Dir:        dir,
		ConfigPath: configPath,
		LogLevel:   level,
		JSONLogs:   jsonLogs,
		Languages:  langs,
	})
}

func output() cli.Output {
	return cli.Output{W: os.Stdout, Renderer: tui.RendererFor(os.Stdout)}
}
