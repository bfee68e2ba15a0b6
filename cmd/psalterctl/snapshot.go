// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/backup"
	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend"
)

// storeExporter snapshots the library loaded from --library.
type storeExporter struct {
	store *recommend.MemoryStore
}

func (e storeExporter) ExportLibrary(context.Context) (*models.Library, error) {
	lib := e.store.Snapshot()
	lib.ExportedAt = time.Now().UTC()
	return lib, nil
}

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		dir      string
		compress bool
		maxCount int
	)

	manager := func() (*backup.Manager, error) {
		if dir == "" {
			return nil, errors.New("--dir is required")
		}
		cfg := backup.DefaultConfig()
		cfg.Dir = dir
		cfg.Compress = compress
		if maxCount > 0 {
			cfg.Retention.MaxCount = maxCount
			if cfg.Retention.MinCount > maxCount {
				cfg.Retention.MinCount = maxCount
			}
		}
		return backup.NewManager(cfg, storeExporter{store: a.store})
	}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Create, list, prune and restore library snapshots",
		Long: `Snapshots are checksummed copies of the library kept in --dir, in the
same format the server's scheduled backups use.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "snapshot directory")
	cmd.PersistentFlags().BoolVar(&compress, "compress", true, "gzip new snapshots")
	cmd.PersistentFlags().IntVar(&maxCount, "max-count", 0, "keep at most this many snapshots when pruning")

	var notes string
	create := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			snap, err := m.Create(cmd.Context(), backup.TriggerManual, notes)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snap)
		},
	}
	create.Flags().StringVar(&notes, "notes", "", "free-form note stored with the snapshot")

	list := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m.List())
		},
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete snapshots outside the retention policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			deleted, err := m.ApplyRetention(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]int{"deleted": deleted, "remaining": len(m.List())})
		},
	}

	restore := &cobra.Command{
		Use:   "restore SNAPSHOT_ID",
		Short: "Replace the library file with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			lib, err := m.Load(args[0])
			if err != nil {
				return err
			}
			a.store = recommend.NewMemoryStore(lib)
			if err := a.saveLibrary(); err != nil {
				return err
			}
			a.logger.Info().Str("snapshot_id", args[0]).Int("songs", len(lib.Songs)).Msg("library restored")
			return printJSON(cmd.OutOrStdout(), backup.Counts{
				Churches:    len(lib.Churches),
				Songs:       len(lib.Songs),
				Usage:       len(lib.Usage),
				Members:     len(lib.Members),
				Preferences: len(lib.Preferences),
			})
		},
	}

	cmd.AddCommand(create, list, prune, restore)
	return cmd
}
