// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/models"
)

func newRateCmd(a *app) *cobra.Command {
	var (
		userID    string
		difficult bool
		remove    bool
	)

	cmd := &cobra.Command{
		Use:   "rate SONG_ID [favorable|neutral|unfavorable]",
		Short: "Set or remove a user's rating of a song",
		Example: `  psalterctl -l library.json rate s12 favorable --user u1
  psalterctl -l library.json rate s12 neutral --user u1 --difficult
  psalterctl -l library.json rate s12 --user u1 --delete`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(userID) == "" {
				return errors.New("--user is required")
			}
			songID := args[0]
			ctx := cmd.Context()

			if remove {
				if err := a.ratings.Delete(ctx, userID, songID); err != nil {
					return err
				}
			} else {
				if len(args) != 2 {
					return errors.New("a rating is required unless --delete is set")
				}
				rating, err := models.ParseRating(strings.ToLower(strings.TrimSpace(args[1])))
				if err != nil {
					return err
				}
				pref := models.UserPreference{UserID: userID, SongID: songID, Rating: rating, Difficult: difficult}
				if err := a.ratings.Set(ctx, pref); err != nil {
					return err
				}
			}

			if err := a.saveLibrary(); err != nil {
				return err
			}
			summary, err := a.ratings.Summary(ctx, songID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&userID, "user", "u", "", "user giving the rating")
	f.BoolVar(&difficult, "difficult", false, "mark the song as difficult to play or sing")
	f.BoolVar(&remove, "delete", false, "remove the user's rating")
	return cmd
}
