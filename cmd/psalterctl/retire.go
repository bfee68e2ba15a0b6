// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/recommend"
)

type retireResult struct {
	Decision *recommend.RetirementDecision `json:"decision"`
	Applied  bool                          `json:"applied"`
}

func newRetireCmd(a *app) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "retire SONG_ID",
		Short: "Check whether leaders' ratings retire a song",
		Long: `Retire counts the church's active leaders and their ratings of the song.
The song is retired when no leader rates it favorable and at least three
quarters of the leaders rate it unfavorable.

With --apply a positive decision marks the song retired in the library file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireChurch(); err != nil {
				return err
			}
			songID := args[0]
			if _, err := a.store.Song(cmd.Context(), a.churchID, songID); err != nil {
				return err
			}

			decision, err := a.engine.EvaluateRetirement(cmd.Context(), a.churchID, songID)
			if err != nil {
				return err
			}

			result := retireResult{Decision: decision}
			if apply && decision.Retire {
				if err := a.store.SetSongRetired(cmd.Context(), a.churchID, songID, true); err != nil {
					return err
				}
				if err := a.saveLibrary(); err != nil {
					return err
				}
				result.Applied = true
				a.logger.Info().Str("church_id", a.churchID).Str("song_id", songID).Msg("song retired")
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "retire the song in the library file when the decision is positive")
	return cmd
}
