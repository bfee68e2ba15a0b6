// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/cache"
	"github.com/tomtom215/psalter/internal/locale"
	"github.com/tomtom215/psalter/internal/logging"
	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend"
)

// app holds global flags and the components built from them before each
// subcommand runs.
type app struct {
	libraryPath string
	churchID    string
	timezone    string
	hemisphere  string
	at          string
	verbose     bool

	logger  zerolog.Logger
	store   *recommend.MemoryStore
	ratings *recommend.RatingService
	engine  *recommend.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "psalterctl",
		Short: "Psalter - worship song suggestions and library health",
		Long: `psalterctl loads a JSON library export and runs song suggestions,
library-health reports and retirement checks against it.

Commands that change ratings or retire songs write the library back to
the --library file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.libraryPath, "library", "l", "", "library export file (- for stdin)")
	flags.StringVarP(&a.churchID, "church", "c", "", "church ID")
	flags.StringVar(&a.timezone, "timezone", "UTC", "timezone for churches with none recorded")
	flags.StringVar(&a.hemisphere, "hemisphere", "northern", "hemisphere for churches with none recorded")
	flags.StringVar(&a.at, "at", "", "evaluate as of this date (YYYY-MM-DD or RFC 3339)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")
	_ = root.MarkPersistentFlagRequired("library")

	root.AddCommand(
		newSuggestCmd(a),
		newInsightsCmd(a),
		newRetireCmd(a),
		newRateCmd(a),
		newImportCmd(a),
		newSnapshotCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Str("correlation_id", uuid.NewString()).
		Logger()
	logging.SetLogger(a.logger)

	now := time.Now
	if a.at != "" {
		t, err := parseAt(a.at)
		if err != nil {
			return err
		}
		now = func() time.Time { return t }
	}

	lib, err := a.readLibrary(cmd.InOrStdin())
	if err != nil {
		return err
	}

	a.store = recommend.NewMemoryStore(lib)
	a.ratings = recommend.NewRatingService(a.store, cache.NewMemoryRatingCache(0), recommend.BatchConfig{}, a.logger)

	resolver := locale.NewResolver(a.store, a.logger,
		locale.WithDefaults(a.timezone, models.ParseHemisphere(strings.ToLower(a.hemisphere))),
		locale.WithClock(now),
	)

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), a.logger)
	if err != nil {
		return err
	}
	engine.SetDataProvider(a.store)
	engine.SetPreferenceLookup(a.ratings)
	engine.SetContextResolver(resolver)
	engine.SetClock(now)
	a.engine = engine

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Int("songs", len(lib.Songs)).
		Int("usage", len(lib.Usage)).
		Msg("library loaded")
	return nil
}

func (a *app) readLibrary(stdin io.Reader) (*models.Library, error) {
	if a.libraryPath == "-" {
		return models.DecodeLibrary(stdin)
	}
	f, err := os.Open(a.libraryPath)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	defer f.Close()
	return models.DecodeLibrary(f)
}

// saveLibrary writes the store's current library back to the library file
// through a temporary file and rename.
func (a *app) saveLibrary() error {
	if a.libraryPath == "-" {
		return errors.New("cannot write changes back to stdin; use a library file")
	}

	lib := a.store.Snapshot()
	lib.ExportedAt = time.Now().UTC()

	tmp, err := os.CreateTemp(filepath.Dir(a.libraryPath), ".psalter-*.json")
	if err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := models.EncodeLibrary(tmp, lib); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.libraryPath); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	a.logger.Debug().Str("path", a.libraryPath).Msg("library saved")
	return nil
}

func (a *app) requireChurch() error {
	if strings.TrimSpace(a.churchID) == "" {
		return errors.New("--church is required")
	}
	return nil
}

func parseAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t.Add(12 * time.Hour), nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
