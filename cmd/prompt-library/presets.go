package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joestump/prompt-library/internal/presetfile"
	"github.com/joestump/prompt-library/internal/store"
)

func newPresetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage stored prompt presets",
	}
	cmd.AddCommand(newPresetsListCmd(opts))
	cmd.AddCommand(newPresetsShowCmd(opts))
	cmd.AddCommand(newPresetsSetCmd(opts))
	cmd.AddCommand(newPresetsDeleteCmd(opts))
	cmd.AddCommand(newPresetsImportCmd(opts))
	cmd.AddCommand(newPresetsExportCmd(opts))
	return cmd
}

func newPresetsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			presets, err := env.presets.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWORKING DIRECTORY\tTAGS\tDESCRIPTION")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.Name, p.WorkingDirectory, len(p.AllowedTags), p.Description)
			}
			return tw.Flush()
		},
	}
}

func newPresetsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			p, err := env.presets.GetByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("preset %q: %w", args[0], err)
			}
			return presetfile.Write(cmd.OutOrStdout(), []presetfile.Spec{toSpec(p)})
		},
	}
}

func newPresetsSetCmd(opts *rootOptions) *cobra.Command {
	var (
		description string
		cwd         string
		allow       []string
	)
	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Create a preset or update the given fields of an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			name := args[0]
			in := store.PresetInput{Name: name}
			existing, err := env.presets.GetByName(cmd.Context(), name)
			switch {
			case err == nil:
				in.Description = existing.Description
				in.WorkingDirectory = existing.WorkingDirectory
				in.AllowedTags = existing.AllowedTags
			case errors.Is(err, store.ErrNotFound):
				existing = nil
			default:
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("description") {
				in.Description = description
			}
			if flags.Changed("cwd") {
				in.WorkingDirectory = cwd
			}
			if flags.Changed("allow") {
				in.AllowedTags = allow
			}

			var p *store.Preset
			if existing == nil {
				p, err = env.presets.Create(cmd.Context(), in)
			} else {
				p, err = env.presets.Update(cmd.Context(), name, in)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved preset %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "preset description")
	cmd.Flags().StringVar(&cwd, "cwd", "", "working directory")
	cmd.Flags().StringSliceVar(&allow, "allow", nil, "allowed HTML tag names, in order")
	return cmd
}

func newPresetsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.presets.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("preset %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted preset %s\n", args[0])
			return nil
		},
	}
}

func newPresetsImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create or replace presets from a YAML file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			specs, err := presetfile.Read(r)
			if err != nil {
				return err
			}

			inputs := make([]store.PresetInput, 0, len(specs))
			for _, s := range specs {
				inputs = append(inputs, store.PresetInput{
					Name:             s.Name,
					Description:      s.Description,
					WorkingDirectory: s.WorkingDirectory,
					AllowedTags:      s.AllowedTags,
				})
			}
			created, updated, err := env.presets.Import(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d presets (%d created, %d updated)\n", len(specs), created, updated)
			return nil
		},
	}
}

func newPresetsExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write all presets as YAML to FILE or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			presets, err := env.presets.List(cmd.Context())
			if err != nil {
				return err
			}
			specs := make([]presetfile.Spec, 0, len(presets))
			for _, p := range presets {
				specs = append(specs, toSpec(p))
			}

			if len(args) == 0 || args[0] == "-" {
				return presetfile.Write(cmd.OutOrStdout(), specs)
			}
			var buf strings.Builder
			if err := presetfile.Write(&buf, specs); err != nil {
				return err
			}
			return os.WriteFile(args[0], []byte(buf.String()), 0o644)
		},
	}
}

func toSpec(p *store.Preset) presetfile.Spec {
	return presetfile.Spec{
		Name:             p.Name,
		Description:      p.Description,
		WorkingDirectory: p.WorkingDirectory,
		AllowedTags:      p.AllowedTags,
	}
}
