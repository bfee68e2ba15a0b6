// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/recommend"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		req   recommend.Request
		table bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest songs for the next service slot",
		Long: `Suggest scores the church's active songs and merges the rotation,
seasonal and popularity lists into one ranked list.

Examples:
  psalterctl -l library.json -c grace suggest
  psalterctl -l library.json -c grace suggest --theme cross --mood reflective
  psalterctl -l library.json -c grace suggest --previous s12 --k 5 --user u1
  psalterctl -l library.json -c grace suggest --exclude s3,s4 --table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireChurch(); err != nil {
				return err
			}
			req.ChurchID = a.churchID

			resp, err := a.engine.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			if table {
				return printSuggestionTable(cmd, resp)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.UserID, "user", "u", "", "apply this user's ratings")
	f.StringVar(&req.Theme, "theme", "", "sermon theme keywords")
	f.StringVar(&req.Mood, "mood", "", "desired mood (upbeat, reflective, celebratory, contemplative, worshipful, neutral)")
	f.StringVar(&req.PreviousSongID, "previous", "", "song before this slot, for key and tempo flow")
	f.IntVar(&req.K, "k", 0, "number of suggestions (0 uses the default)")
	f.StringSliceVar(&req.Exclude, "exclude", nil, "song IDs to leave out")
	f.BoolVar(&table, "table", false, "print a table instead of JSON")
	return cmd
}

func printSuggestionTable(cmd *cobra.Command, resp *recommend.Response) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tSONG\tTITLE\tSCORE\tTYPE\tCONFIDENCE\n")
	for i, s := range resp.Suggestions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\t%.2f\n",
			i+1, s.Song.ID, s.Song.Title, s.Score, s.Type, s.Confidence)
	}
	fmt.Fprintf(tw, "\nchurch %s, %s hemisphere, month %d (%s)\n",
		resp.Context.ChurchID, resp.Context.Hemisphere, resp.Context.Month, resp.Context.Source)
	return tw.Flush()
}
