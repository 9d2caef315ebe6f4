package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// loadEnv migrates as part of opening the database.
			env, err := loadEnv(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer env.Close()

			env.logger.Info("migrations complete", "driver", env.cfg.DB.Driver)
			return nil
		},
	}
}
