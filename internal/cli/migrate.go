package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply history database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := loadApp(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			applied, err := a.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			for _, m := range applied {
				logger.Info("migration applied", "version", m.Version, "source", m.Source)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", len(applied))
			return nil
		},
	}
}
