// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package algorithms

import (
	"strings"

	"github.com/tomtom215/psalter/internal/models"
)

// Season is a meteorological season.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

// Seasonal scores.
const (
	// SeasonalScoreStrong is awarded for a religious-season match inside its
	// window, or a generic match in both title and tags.
	SeasonalScoreStrong = 0.95

	// SeasonalScorePartial is awarded for a generic match in title or tags only.
	SeasonalScorePartial = 0.8
)

// Religious season keyword sets. These apply on fixed calendar months in both
// hemispheres.
var (
	christmasKeywords = []string{
		"christmas", "advent", "nativity", "bethlehem", "emmanuel",
		"immanuel", "manger", "noel", "shepherds", "magi",
	}

	easterKeywords = []string{
		"easter", "lent", "resurrection", "risen", "calvary", "cross",
		"tomb", "crucified", "good friday", "palm sunday", "hosanna",
	}
)

// Meteorological keyword sets are deliberately narrow. Generic worship words
// ("joy", "praise", "glory") would match nearly every song.
var meteorologicalKeywords = map[Season][]string{
	SeasonWinter: {"winter", "snow", "frost", "cold"},
	SeasonSpring: {"spring", "bloom", "blossom", "new life", "renewal"},
	SeasonSummer: {"summer", "sunshine", "sunlight", "warmth"},
	SeasonFall:   {"autumn", "fall", "harvest", "thanksgiving", "gratitude"},
}

// normalizeMonth maps any integer onto 1-12.
func normalizeMonth(month int) int {
	return ((month-1)%12+12)%12 + 1
}

// NextMonth returns the month after month, wrapping December to January.
func NextMonth(month int) int {
	return normalizeMonth(month + 1)
}

// SeasonForMonth returns the meteorological season for a month in the given
// hemisphere. Southern-hemisphere seasons are offset by half a year.
func SeasonForMonth(month int, hemisphere models.Hemisphere) Season {
	var northern Season
	switch normalizeMonth(month) {
	case 12, 1, 2:
		northern = SeasonWinter
	case 3, 4, 5:
		northern = SeasonSpring
	case 6, 7, 8:
		northern = SeasonSummer
	default:
		northern = SeasonFall
	}

	if hemisphere != models.HemisphereSouthern {
		return northern
	}
	return oppositeSeason(northern)
}

func oppositeSeason(s Season) Season {
	switch s {
	case SeasonWinter:
		return SeasonSummer
	case SeasonSummer:
		return SeasonWinter
	case SeasonSpring:
		return SeasonFall
	default:
		return SeasonSpring
	}
}

// IsChristmasSeason reports whether month falls in the Christmas/Advent window.
func IsChristmasSeason(month int) bool {
	m := normalizeMonth(month)
	return m == 12 || m == 1
}

// IsEasterSeason reports whether month falls in the Easter/Lent window.
func IsEasterSeason(month int) bool {
	m := normalizeMonth(month)
	return m == 3 || m == 4
}

// SeasonalKeywords returns the keywords that mark a song as seasonal for a
// month. Christmas (Dec-Jan) and Easter (Mar-Apr) sets ignore the hemisphere;
// every other month gets the meteorological set for the hemisphere's season.
func SeasonalKeywords(month int, hemisphere models.Hemisphere) []string {
	switch {
	case IsChristmasSeason(month):
		return cloneStrings(christmasKeywords)
	case IsEasterSeason(month):
		return cloneStrings(easterKeywords)
	default:
		return MeteorologicalKeywords(SeasonForMonth(month, hemisphere))
	}
}

// MeteorologicalKeywords returns the generic keyword set for a season.
func MeteorologicalKeywords(season Season) []string {
	return cloneStrings(meteorologicalKeywords[season])
}

// SeasonLabel names the season a month belongs to for display: "christmas",
// "easter", or the hemisphere-resolved meteorological season.
func SeasonLabel(month int, hemisphere models.Hemisphere) string {
	switch {
	case IsChristmasSeason(month):
		return "christmas"
	case IsEasterSeason(month):
		return "easter"
	default:
		return string(SeasonForMonth(month, hemisphere))
	}
}

// SongMatchesSeason searches title, notes, tags and lyrics for the month's
// seasonal keywords. It returns whether anything matched and which keywords did.
func SongMatchesSeason(song *models.Song, month int, hemisphere models.Hemisphere) (bool, []string) {
	matched := matchKeywords(song.SearchText(), SeasonalKeywords(month, hemisphere))
	return len(matched) > 0, matched
}

// TitleOrTagsMatch reports whether the song's title or tags contain any keyword.
func TitleOrTagsMatch(song *models.Song, keywords []string) bool {
	title := strings.ToLower(song.Title)
	tags := song.TagText()
	return len(matchKeywords(title, keywords)) > 0 || len(matchKeywords(tags, keywords)) > 0
}

// SeasonalScore scores how well a song fits the month's season.
//
// A song whose title or tags mention Christmas or Easter is judged only by
// whether the month is inside that season's window (0.95 inside, 0 outside).
// It never falls back to the generic meteorological keywords. All other songs
// score 0.95 when both title and tags match the meteorological set, 0.8 when
// only one does, and 0 otherwise.
func SeasonalScore(song *models.Song, month int, hemisphere models.Hemisphere) float64 {
	title := strings.ToLower(song.Title)
	tags := song.TagText()

	isChristmas := len(matchKeywords(title, christmasKeywords)) > 0 ||
		len(matchKeywords(tags, christmasKeywords)) > 0
	isEaster := len(matchKeywords(title, easterKeywords)) > 0 ||
		len(matchKeywords(tags, easterKeywords)) > 0

	if isChristmas || isEaster {
		if (isChristmas && IsChristmasSeason(month)) || (isEaster && IsEasterSeason(month)) {
			return SeasonalScoreStrong
		}
		return 0
	}

	keywords := meteorologicalKeywords[SeasonForMonth(month, hemisphere)]
	titleMatch := len(matchKeywords(title, keywords)) > 0
	tagMatch := len(matchKeywords(tags, keywords)) > 0

	switch {
	case titleMatch && tagMatch:
		return SeasonalScoreStrong
	case titleMatch || tagMatch:
		return SeasonalScorePartial
	default:
		return 0
	}
}

// matchKeywords returns the keywords contained in text. text must already be
// lower-cased.
// matchKeywords matches by substring, so "cross" also hits "across" and
// "fall" hits "fallen".
func matchKeywords(text string, keywords []string) []string {
	if text == "" {
		return nil
	}
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
