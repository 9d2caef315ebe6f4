package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "prompt-library",
		Short:         "Render Bolt system prompts",
		Long:          "prompt-library renders the Bolt coding-assistant system prompt for a working directory and a set of allowed HTML tags, from the command line or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default ./prompt-library.yaml if present)")

	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newPromptsCmd(opts))
	rootCmd.AddCommand(newPresetsCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
