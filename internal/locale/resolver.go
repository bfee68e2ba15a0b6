// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package locale resolves the hemisphere, timezone and current month a
// church's services happen in.
//
// Resolution falls back through three stages, each allowed to fail
// silently: the church record, the process locale (TZ and LANG), and a
// fixed default (UTC, northern hemisphere).
package locale

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/psalter/internal/models"
)

// ChurchLookup returns a church record.
type ChurchLookup interface {
	Church(ctx context.Context, churchID string) (*models.Church, error)
}

// Resolver produces a ChurchContext for a church. It is safe for
// concurrent use.
type Resolver struct {
	churches ChurchLookup
	logger   zerolog.Logger

	defaultTimezone   string
	defaultHemisphere models.Hemisphere

	getenv func(string) string
	now    func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDefaults overrides the final fallback stage.
func WithDefaults(timezone string, hemisphere models.Hemisphere) Option {
	return func(r *Resolver) {
		if _, err := time.LoadLocation(timezone); err == nil && timezone != "" {
			r.defaultTimezone = timezone
		}
		if hemisphere != "" {
			r.defaultHemisphere = hemisphere
		}
	}
}

// WithEnv replaces os.Getenv for the locale stage.
func WithEnv(getenv func(string) string) Option {
	return func(r *Resolver) { r.getenv = getenv }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a resolver. churches may be nil, which skips the
// church stage.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(churches ChurchLookup, logger zerolog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		churches:          churches,
		logger:            logger.With().Str("component", "locale").Logger(),
		defaultTimezone:   "UTC",
		defaultHemisphere: models.HemisphereNorthern,
		getenv:            os.Getenv,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the church context. It never fails.
//
// A church that sets a hemisphere but has no usable timezone keeps its
// hemisphere; only the timezone and month come from the later stages.
func (r *Resolver) Resolve(ctx context.Context, churchID string) models.ChurchContext {
	church := r.lookupChurch(ctx, churchID)
	if cc, ok := r.fromChurch(church, churchID); ok {
		return cc
	}

	cc, ok := r.fromLocale(churchID)
	if !ok {
		loc, _ := time.LoadLocation(r.defaultTimezone)
		cc = r.build(churchID, loc, r.defaultTimezone, r.defaultHemisphere, models.ContextSourceDefault)
	}
	if church != nil && church.Hemisphere.Valid() {
		cc.Hemisphere = church.Hemisphere
		cc.Source = models.ContextSourceChurch
	}
	return cc
}

func (r *Resolver) lookupChurch(ctx context.Context, churchID string) *models.Church {
	if r.churches == nil || churchID == "" {
		return nil
	}
	church, err := r.churches.Church(ctx, churchID)
	if err != nil || church == nil {
		r.logger.Debug().Err(err).Str("church_id", churchID).Msg("church lookup failed, trying locale")
		return nil
	}
	return church
}

func (r *Resolver) fromChurch(church *models.Church, churchID string) (models.ChurchContext, bool) {
	if church == nil {
		return models.ChurchContext{}, false
	}

	loc, err := time.LoadLocation(church.Timezone)
	if church.Timezone == "" || err != nil {
		r.logger.Debug().Str("church_id", churchID).Str("timezone", church.Timezone).Msg("church has no usable timezone")
		return models.ChurchContext{}, false
	}

	hemisphere := church.Hemisphere
	if !hemisphere.Valid() {
		hemisphere = HemisphereForTimezone(church.Timezone)
	}
	return r.build(churchID, loc, church.Timezone, hemisphere, models.ContextSourceChurch), true
}

func (r *Resolver) fromLocale(churchID string) (models.ChurchContext, bool) {
	tz := strings.TrimPrefix(r.getenv("TZ"), ":")
	region := RegionFromLang(firstNonEmpty(r.getenv("LC_ALL"), r.getenv("LANG")))

	var loc *time.Location
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	if loc == nil && region == "" {
		return models.ChurchContext{}, false
	}

	hemisphere := models.HemisphereNorthern
	switch {
	case region != "":
		hemisphere = HemisphereForRegion(region)
	case tz != "":
		hemisphere = HemisphereForTimezone(tz)
	}

	if loc == nil {
		loc, _ = time.LoadLocation(r.defaultTimezone)
		tz = r.defaultTimezone
	}
	return r.build(churchID, loc, tz, hemisphere, models.ContextSourceLocale), true
}

func (r *Resolver) build(churchID string, loc *time.Location, tz string, h models.Hemisphere, src models.ContextSource) models.ChurchContext {
	if loc == nil {
		loc = time.UTC
		tz = "UTC"
	}
	return models.ChurchContext{
		ChurchID:   churchID,
		Hemisphere: h,
		Timezone:   tz,
		Month:      int(r.now().In(loc).Month()),
		Source:     src,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
