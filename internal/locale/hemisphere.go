// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package locale

import (
	"strings"

	"github.com/tomtom215/psalter/internal/models"
)

// southernRegions are ISO 3166 codes of countries lying mostly south of
// the equator.
var southernRegions = map[string]struct{}{
	"AR": {}, "AU": {}, "BO": {}, "BR": {}, "BW": {}, "CL": {}, "FJ": {},
	"LS": {}, "MG": {}, "MU": {}, "MZ": {}, "NA": {}, "NZ": {}, "PE": {},
	"PY": {}, "SZ": {}, "UY": {}, "ZA": {}, "ZM": {}, "ZW": {},
}

// southernZones are IANA zone names or prefixes in the southern hemisphere.
var southernZones = []string{
	"Australia/",
	"Antarctica/",
	"Pacific/Auckland",
	"Pacific/Chatham",
	"Pacific/Fiji",
	"America/Argentina/",
	"America/Santiago",
	"America/Montevideo",
	"America/Asuncion",
	"America/Sao_Paulo",
	"America/La_Paz",
	"America/Lima",
	"Africa/Johannesburg",
	"Africa/Maputo",
	"Africa/Windhoek",
	"Africa/Harare",
	"Africa/Gaborone",
	"Africa/Lusaka",
	"Indian/Antananarivo",
	"Indian/Mauritius",
}

// HemisphereForRegion maps a country code to its hemisphere.
func HemisphereForRegion(region string) models.Hemisphere {
	if _, ok := southernRegions[strings.ToUpper(region)]; ok {
		return models.HemisphereSouthern
	}
	return models.HemisphereNorthern
}

// HemisphereForTimezone maps an IANA zone name to its hemisphere.
func HemisphereForTimezone(tz string) models.Hemisphere {
	for _, zone := range southernZones {
		if tz == zone || (strings.HasSuffix(zone, "/") && strings.HasPrefix(tz, zone)) {
			return models.HemisphereSouthern
		}
	}
	return models.HemisphereNorthern
}

// RegionFromLang extracts the region from a POSIX locale such as
// "en_AU.UTF-8" or "pt-BR". It returns "" when there is none.
func RegionFromLang(lang string) string {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	sep := strings.IndexAny(lang, "_-")
	if sep < 0 {
		return ""
	}
	region := lang[sep+1:]
	if len(region) != 2 {
		return ""
	}
	return strings.ToUpper(region)
}
