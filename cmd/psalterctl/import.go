// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/config"
	"github.com/tomtom215/psalter/internal/database"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		dbPath    string
		maxMemory string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the library into a DuckDB database",
		Long: `Import upserts every church, song, usage record, member and rating of the
library into the server's DuckDB database. Songs without a church are
assigned to --church when it is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				return errors.New("--db is required")
			}

			db, err := database.New(&config.DatabaseConfig{
				Path:                   dbPath,
				MaxMemory:              maxMemory,
				PreserveInsertionOrder: true,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					a.logger.Error().Err(err).Msg("error closing database")
				}
			}()

			stats, err := db.ImportLibrary(cmd.Context(), a.store.Snapshot(), a.churchID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}

	f := cmd.Flags()
	f.StringVar(&dbPath, "db", "", "DuckDB file (:memory: for a dry run)")
	f.StringVar(&maxMemory, "max-memory", "1GB", "DuckDB memory limit")
	return cmd
}
