// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package models

// Hemisphere determines which way meteorological seasons run.
type Hemisphere string

const (
	// HemisphereNorthern is the default hemisphere.
	HemisphereNorthern Hemisphere = "northern"
	// HemisphereSouthern flips the meteorological seasons.
	HemisphereSouthern Hemisphere = "southern"
)

// ParseHemisphere returns the hemisphere for s, defaulting to northern.
func ParseHemisphere(s string) Hemisphere {
	if Hemisphere(s) == HemisphereSouthern {
		return HemisphereSouthern
	}
	return HemisphereNorthern
}

// Valid reports whether h is one of the known hemispheres.
func (h Hemisphere) Valid() bool {
	return h == HemisphereNorthern || h == HemisphereSouthern
}

// Church is a tenant record.
type Church struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Timezone   string     `json:"timezone,omitempty"`
	Hemisphere Hemisphere `json:"hemisphere,omitempty"`
}

// Member is a user's membership in a church.
type Member struct {
	ChurchID string `json:"church_id"`
	UserID   string `json:"user_id"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
	IsLeader bool   `json:"is_leader,omitempty"`
	Active   bool   `json:"active"`
}

// ContextSource names the fallback stage that produced a ChurchContext.
type ContextSource string

const (
	ContextSourceChurch  ContextSource = "church"
	ContextSourceLocale  ContextSource = "locale"
	ContextSourceDefault ContextSource = "default"
)

// ChurchContext is the locale the engine scores against.
type ChurchContext struct {
	ChurchID   string        `json:"church_id,omitempty"`
	Hemisphere Hemisphere    `json:"hemisphere"`
	Timezone   string        `json:"timezone"`
	Month      int           `json:"month"`
	Source     ContextSource `json:"source"`
}
