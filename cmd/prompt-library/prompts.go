package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joestump/prompt-library/internal/config"
	"github.com/joestump/prompt-library/internal/prompt"
)

func newPromptsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List the prompts in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tDESCRIPTION")
			for _, e := range prompt.Default().List() {
				id := e.ID
				if id == cfg.Prompt.Default {
					id += " (default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", id, e.Label, e.Description)
			}
			return tw.Flush()
		},
	}
}
