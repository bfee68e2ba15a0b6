// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == b {
		t.Errorf("GenerateRequestID returned duplicate %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateRequestID() = %q is not a UUID: %v", a, err)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}
	ctx = ContextWithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want req-1", got)
	}
}

func TestChurchContext(t *testing.T) {
	tests := []struct {
		name       string
		churchID   string
		userID     string
		wantChurch string
		wantUser   string
	}{
		{"both", "c1", "u1", "c1", "u1"},
		{"church only", "c1", "", "c1", ""},
		{"user only", "", "u1", "", "u1"},
		{"neither", "", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithChurch(context.Background(), tt.churchID, tt.userID)
			if got := ChurchIDFromContext(ctx); got != tt.wantChurch {
				t.Errorf("ChurchIDFromContext = %q, want %q", got, tt.wantChurch)
			}
			if got := UserIDFromContext(ctx); got != tt.wantUser {
				t.Errorf("UserIDFromContext = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	logger := LoggerFromContext(ctx)
	logger.Info().Msg("from context")

	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("stored logger not used: %s", buf.String())
	}
}

func TestCtx_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-9")
	ctx = ContextWithChurch(ctx, "grace", "leader-1")

	Ctx(ctx).Info().Msg("suggestions generated")

	out := buf.String()
	for _, want := range []string{`"request_id":"req-9"`, `"church_id":"grace"`, `"user_id":"leader-1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestCtx_OmitsMissingFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	Ctx(ctx).Info().Msg("bare")

	out := buf.String()
	for _, unwanted := range []string{"request_id", "church_id", "user_id"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %s: %s", unwanted, out)
		}
	}
}

func TestWithComponent(t *testing.T) {
	buf := withGlobalLogger(t, Config{Level: "info"})

	logger := WithComponent("rating-cache")
	logger.Info().Msg("ready")

	if !strings.Contains(buf.String(), `"component":"rating-cache"`) {
		t.Errorf("output missing component: %s", buf.String())
	}
}
