// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

// Package logging provides centralized zerolog-based structured logging for Psalter.
//
// The global logger writes JSON in production and a console format for
// development. It is configured once at startup from the logging section of
// the application config:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("church_id", id).Msg("Library imported")
//
// Request-scoped logging picks up the request, church and user IDs stored by
// the HTTP middleware:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Preference fetch failed")
//
// # Suture Integration
//
// The supervisor tree logs through log/slog. NewSlogLogger bridges slog
// records onto the zerolog backend so a single output stream is kept:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
