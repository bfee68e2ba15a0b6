// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedSlog(t *testing.T, level zerolog.Level) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf).Level(level))), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	handler := NewSlogHandlerWithLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := handler.Enabled(ctx, tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Levels(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want string
	}{
		{"debug", func(l *slog.Logger) { l.Debug("m") }, `"level":"debug"`},
		{"info", func(l *slog.Logger) { l.Info("m") }, `"level":"info"`},
		{"warn", func(l *slog.Logger) { l.Warn("m") }, `"level":"warn"`},
		{"error", func(l *slog.Logger) { l.Error("m") }, `"level":"error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedSlog(t, zerolog.TraceLevel)
			prev := zerolog.GlobalLevel()
			zerolog.SetGlobalLevel(zerolog.TraceLevel)
			defer zerolog.SetGlobalLevel(prev)

			tt.log(logger)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %s: %s", tt.want, buf.String())
			}
		})
	}
}

func TestSlogHandler_Attributes(t *testing.T) {
	logger, buf := newBufferedSlog(t, zerolog.InfoLevel)

	logger.Info("service event",
		slog.String("service", "http-server"),
		slog.Int("restarts", 2),
		slog.Bool("healthy", true),
		slog.Float64("ratio", 0.5),
		slog.Duration("backoff", 1500*time.Millisecond),
		slog.Any("err", errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{
		`"message":"service event"`,
		`"service":"http-server"`,
		`"restarts":2`,
		`"healthy":true`,
		`"ratio":0.5`,
		`"backoff":1500`,
		`"err":"boom"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	logger, buf := newBufferedSlog(t, zerolog.InfoLevel)

	logger.With("supervisor", "root").
		WithGroup("outer").
		WithGroup("inner").
		Info("nested", slog.String("key", "v"), slog.Group("g", slog.Int("n", 1)))

	out := buf.String()
	for _, want := range []string{
		`"supervisor":"root"`,
		`"outer.inner.key":"v"`,
		`"outer.inner.g.n":1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	handler := NewSlogHandlerWithLogger(zerolog.Nop())
	if got := handler.WithGroup(""); got != handler {
		t.Error("WithGroup(\"\") returned a new handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			if got := slogToZerologLevel(tt.level); got != tt.want {
				t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewSlogLogger(t *testing.T) {
	buf := withGlobalLogger(t, Config{Level: "info"})

	NewSlogLogger().Info("bridged", slog.String("tree", "psalter"))

	if !strings.Contains(buf.String(), `"tree":"psalter"`) {
		t.Errorf("global logger not used: %s", buf.String())
	}
}
