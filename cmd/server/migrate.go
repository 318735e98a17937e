package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yusufkecer/fittrack-backend/internal/db"
)

var migrateList bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply every pending schema migration and exit.

The serve command also migrates on startup; this command is for running the
step on its own, e.g. from a deploy pipeline.

  fittrack migrate          # apply pending migrations
  fittrack migrate --list   # print known migration versions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateList {
			for _, v := range db.Versions() {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		}

		database, err := db.Connect(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer database.Close()

		return db.RunMigrations(cmd.Context(), database, log)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateList, "list", false, "print migration versions without connecting")
}
