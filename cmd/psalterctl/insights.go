// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/psalter/internal/recommend/insights"
)

func newInsightsCmd(a *app) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"health"},
		Short:   "Report on the health of a church's song library",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireChurch(); err != nil {
				return err
			}
			report, err := a.engine.Insights(cmd.Context(), a.churchID)
			if err != nil {
				return err
			}
			if summary {
				printInsightSummary(cmd, report)
				return nil
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print scores and insights as text")
	return cmd
}

func printInsightSummary(cmd *cobra.Command, r *insights.WorshipInsights) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rotation:  %.0f (%s), %d songs, %d stale, %d never used\n",
		r.Rotation.Score, r.Rotation.Status, r.Rotation.TotalSongs, r.Rotation.StaleSongs, r.Rotation.NeverUsed)
	fmt.Fprintf(out, "Diversity: keys %.0f%%, tempo %.0f%%, artists %.0f%%\n",
		r.Diversity.KeyDiversity, r.Diversity.TempoDiversity, r.Diversity.ArtistDiversity)
	fmt.Fprintf(out, "Seasonal:  %s %.0f%%, next %s %.0f%% (%s hemisphere)\n",
		r.SeasonalReadiness.CurrentSeason, r.SeasonalReadiness.CurrentPercent,
		r.SeasonalReadiness.UpcomingSeason, r.SeasonalReadiness.UpcomingPercent, r.Context.Hemisphere)
	for _, line := range r.Rotation.Insights {
		fmt.Fprintf(out, "  - %s\n", line)
	}
	for _, line := range r.Rotation.Recommendations {
		fmt.Fprintf(out, "  * %s\n", line)
	}
}
