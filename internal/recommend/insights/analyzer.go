// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/psalter/internal/models"
	"github.com/tomtom215/psalter/internal/recommend/algorithms"
)

// Analysis thresholds.
const (
	StaleAfterDays = 120

	criticalStaleShare  = 0.40
	attentionStaleShare = 0.25
	watchStaleShare     = 0.15
	neverUsedShare      = 0.20

	criticalPenalty  = 40.0
	attentionPenalty = 25.0
	watchPenalty     = 15.0
	neverUsedPenalty = 20.0

	introductionWindowMonths = 6
	candidateRestDays        = 30
	maxCandidateIDs          = 10

	currentReadinessMin  = 10.0
	upcomingReadinessMin = 5.0

	pitchClasses = 12
)

// idealTempoSplit is the target fast/medium/slow usage share.
var idealTempoSplit = TempoSplit{Fast: 0.30, Medium: 0.40, Slow: 0.30}

// Analyze runs all four analyses. songs is the active library; usage is
// its full history.
func Analyze(songs []models.Song, usage []models.UsageRecord, cc models.ChurchContext, now time.Time) WorshipInsights {
	byID := indexSongs(songs)
	history := usageBySong(usage, byID)

	return WorshipInsights{
		Rotation:          AnalyzeRotation(songs, history, now),
		Diversity:         AnalyzeDiversity(songs, usage, byID),
		Engagement:        AnalyzeEngagement(songs, history, now),
		SeasonalReadiness: AnalyzeSeasonalReadiness(songs, cc.Month, cc.Hemisphere),
		Context:           cc,
		GeneratedAt:       now,
	}
}

// AnalyzeRotation scores how evenly the library is cycled.
func AnalyzeRotation(songs []models.Song, history map[string][]time.Time, now time.Time) RotationHealth {
	health := RotationHealth{
		TotalSongs:      len(songs),
		Insights:        []string{},
		Recommendations: []string{},
	}
	if len(songs) == 0 {
		health.Status = StatusCritical
		health.Insights = append(health.Insights, "Your song library is empty")
		health.Recommendations = append(health.Recommendations, "Add songs to your library to start tracking rotation")
		return health
	}

	for i := range songs {
		dates := history[songs[i].ID]
		if len(dates) == 0 {
			health.NeverUsed++
			health.StaleSongs++
			continue
		}
		if models.DaysSince(latest(dates), now) >= StaleAfterDays {
			health.StaleSongs++
		}
	}

	total := float64(len(songs))
	staleShare := float64(health.StaleSongs) / total
	neverShare := float64(health.NeverUsed) / total
	health.StalePercent = staleShare * 100
	health.NeverUsedPercent = neverShare * 100

	health.Score = 100
	health.Status = StatusGood

	switch {
	case staleShare > criticalStaleShare:
		health.Score -= criticalPenalty
		health.Status = StatusCritical
		health.add(
			fmt.Sprintf("%.0f%% of your songs have not been used in %d days", health.StalePercent, StaleAfterDays),
			"Review unused songs and retire the ones your congregation has moved on from",
		)
	case staleShare > attentionStaleShare:
		health.Score -= attentionPenalty
		health.Status = StatusNeedsAttention
		health.add(
			fmt.Sprintf("%.0f%% of your songs have not been used in %d days", health.StalePercent, StaleAfterDays),
			"Work a few resting songs back into upcoming services",
		)
	case staleShare > watchStaleShare:
		health.Score -= watchPenalty
		health.add(
			"Some songs are starting to drift out of rotation",
			"Revisit songs that have rested for several months",
		)
	}

	if neverShare > neverUsedShare {
		health.Score -= neverUsedPenalty
		health.add(
			fmt.Sprintf("%.0f%% of your library has never been used", health.NeverUsedPercent),
			"Introduce unused songs gradually or remove them from the library",
		)
	}

	return health
}

func (h *RotationHealth) add(insight, recommendation string) {
	h.Insights = append(h.Insights, insight)
	h.Recommendations = append(h.Recommendations, recommendation)
}

// AnalyzeDiversity measures key, tempo and artist variety in actual usage.
// byID must index songs.
func AnalyzeDiversity(songs []models.Song, usage []models.UsageRecord, byID map[string]*models.Song) Diversity {
	var d Diversity

	keys := make(map[int]struct{})
	artistsUsed := make(map[string]struct{})
	var fast, medium, slow int

	for _, u := range usage {
		song, ok := byID[u.SongID]
		if !ok {
			continue
		}
		if pos, ok := algorithms.KeyPosition(song.Key); ok {
			keys[pos] = struct{}{}
		}
		if a := normalizeArtist(song.Artist); a != "" {
			artistsUsed[a] = struct{}{}
		}
		switch algorithms.CategorizeTempo(song.Tempo) {
		case algorithms.TempoFast:
			fast++
		case algorithms.TempoMedium:
			medium++
		case algorithms.TempoSlow:
			slow++
		}
	}

	d.KeysUsed = len(keys)
	d.KeyDiversity = clampPercent(float64(len(keys)) / pitchClasses * 100)

	if tempoTotal := fast + medium + slow; tempoTotal > 0 {
		n := float64(tempoTotal)
		d.TempoSplit = TempoSplit{
			Fast:   float64(fast) / n,
			Medium: float64(medium) / n,
			Slow:   float64(slow) / n,
		}
		deviation := (math.Abs(d.TempoSplit.Fast-idealTempoSplit.Fast) +
			math.Abs(d.TempoSplit.Medium-idealTempoSplit.Medium) +
			math.Abs(d.TempoSplit.Slow-idealTempoSplit.Slow)) / 3
		d.TempoDiversity = clampPercent(100 - deviation*100)
	}

	libraryArtists := make(map[string]struct{})
	for i := range songs {
		if a := normalizeArtist(songs[i].Artist); a != "" {
			libraryArtists[a] = struct{}{}
		}
	}
	d.ArtistsUsed = len(artistsUsed)
	if len(libraryArtists) > 0 {
		d.ArtistDiversity = clampPercent(float64(len(artistsUsed)) / float64(len(libraryArtists)) * 100)
	}

	return d
}

// AnalyzeEngagement applies the familiarity model to every song.
func AnalyzeEngagement(songs []models.Song, history map[string][]time.Time, now time.Time) Engagement {
	var e Engagement
	if len(songs) == 0 {
		return e
	}

	introducedAfter := now.AddDate(0, -introductionWindowMonths, 0)

	type candidate struct {
		id    string
		score float64
	}
	var candidates []candidate
	total := 0.0

	for i := range songs {
		dates := history[songs[i].ID]
		score := algorithms.CalculateFamiliarity(dates, now)
		level := algorithms.CategorizeFamiliarity(score)
		total += score

		if level.IsFamiliar() {
			e.FamiliarSongs++
		}
		if level == algorithms.FamiliarityHigh {
			e.HighlyFamiliarSongs++
		}
		if len(dates) == 0 {
			continue
		}

		if earliest(dates).After(introducedAfter) && level != algorithms.FamiliarityHigh {
			e.RecentlyIntroduced++
		}

		rested := models.DaysSince(latest(dates), now) >= candidateRestDays
		if (level == algorithms.FamiliarityMedium || level == algorithms.FamiliarityLow) &&
			score >= algorithms.FamiliarityLowThreshold && rested {
			e.RotationCandidates++
			candidates = append(candidates, candidate{id: songs[i].ID, score: score})
		}
	}

	e.AverageFamiliarity = total / float64(len(songs))

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	for i := 0; i < len(candidates) && i < maxCandidateIDs; i++ {
		e.CandidateSongIDs = append(e.CandidateSongIDs, candidates[i].id)
	}

	return e
}

// AnalyzeSeasonalReadiness measures title/tag coverage of this month's and
// next month's seasonal keywords.
func AnalyzeSeasonalReadiness(songs []models.Song, month int, hemisphere models.Hemisphere) SeasonalReadiness {
	next := algorithms.NextMonth(month)
	r := SeasonalReadiness{
		CurrentSeason:  algorithms.SeasonLabel(month, hemisphere),
		UpcomingSeason: algorithms.SeasonLabel(next, hemisphere),
		Suggestions:    []string{},
	}

	current := algorithms.SeasonalKeywords(month, hemisphere)
	upcoming := algorithms.SeasonalKeywords(next, hemisphere)
	for i := range songs {
		if algorithms.TitleOrTagsMatch(&songs[i], current) {
			r.CurrentMatches++
		}
		if algorithms.TitleOrTagsMatch(&songs[i], upcoming) {
			r.UpcomingMatches++
		}
	}

	if len(songs) > 0 {
		r.CurrentPercent = float64(r.CurrentMatches) / float64(len(songs)) * 100
		r.UpcomingPercent = float64(r.UpcomingMatches) / float64(len(songs)) * 100
	}

	if r.CurrentPercent < currentReadinessMin {
		r.Suggestions = append(r.Suggestions,
			fmt.Sprintf("Few songs fit the %s season; consider adding some for current services", r.CurrentSeason))
	}
	if r.UpcomingPercent < upcomingReadinessMin {
		r.Suggestions = append(r.Suggestions,
			fmt.Sprintf("Prepare songs for the upcoming %s season", r.UpcomingSeason))
	}
	if hemisphere == models.HemisphereSouthern {
		r.Note = "Seasons are adjusted for the southern hemisphere; Christmas and Easter follow the calendar"
	}

	return r
}

func indexSongs(songs []models.Song) map[string]*models.Song {
	byID := make(map[string]*models.Song, len(songs))
	for i := range songs {
		byID[songs[i].ID] = &songs[i]
	}
	return byID
}

// usageBySong groups usage dates by song, dropping songs outside the library.
func usageBySong(usage []models.UsageRecord, byID map[string]*models.Song) map[string][]time.Time {
	history := make(map[string][]time.Time, len(byID))
	for _, u := range usage {
		if _, ok := byID[u.SongID]; !ok {
			continue
		}
		history[u.SongID] = append(history[u.SongID], u.UsedOn)
	}
	return history
}

// UsageBySong groups usage dates by song ID.
func UsageBySong(songs []models.Song, usage []models.UsageRecord) map[string][]time.Time {
	return usageBySong(usage, indexSongs(songs))
}

func latest(dates []time.Time) time.Time {
	l := dates[0]
	for _, d := range dates[1:] {
		if d.After(l) {
			l = d
		}
	}
	return l
}

func earliest(dates []time.Time) time.Time {
	e := dates[0]
	for _, d := range dates[1:] {
		if d.Before(e) {
			e = d
		}
	}
	return e
}

func normalizeArtist(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(100, v)
}
