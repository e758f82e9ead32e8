package main

import (
	"bakehub/internal/infra/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bootstrap()
		if err != nil {
			return err
		}
		defer b.close()

		if err := db.Migrate(b.db); err != nil {
			return err
		}
		b.log.Info("migration finished")
		return nil
	},
}
