package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/prompt-library/internal/metrics"
	"github.com/joestump/prompt-library/internal/render"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		promptID string
		cwd      string
		allow    []string
		preset   string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a prompt to stdout or a file",
		Long: `Render a prompt. Values come from, in increasing priority:
config defaults, --preset, then --cwd and --allow. Passing --cwd "" or
--allow "" renders with an empty working directory or tag list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, preset != "")
			if err != nil {
				return err
			}
			defer env.Close()

			req := render.Request{
				PromptID: promptID,
				Preset:   preset,
				Source:   metrics.SourceCLI,
			}
			if cmd.Flags().Changed("cwd") {
				req.WorkingDirectory = &cwd
			}
			if cmd.Flags().Changed("allow") {
				req.AllowedTags = allow
				req.SetAllowedTags = true
			}

			res, err := env.renderer().Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), res.Text)
				return err
			}
			if err := os.WriteFile(output, []byte(res.Text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			env.logger.Info("prompt written", "prompt", res.PromptID, "path", output, "bytes", len(res.Text))
			return nil
		},
	}

	cmd.Flags().StringVarP(&promptID, "prompt", "p", "", "prompt id (default from config)")
	cmd.Flags().StringVar(&cwd, "cwd", "", "working directory to embed in the prompt")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "allowed HTML tag names, in order (repeatable or comma-separated)")
	cmd.Flags().StringVar(&preset, "preset", "", "stored preset to take values from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the prompt to this file instead of stdout")
	return cmd
}
