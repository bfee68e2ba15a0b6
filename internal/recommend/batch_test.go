// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("id-%03d", i)
	}
	return out
}

func TestChunkIDs(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{"empty", 0, 50, nil},
		{"single partial", 10, 50, []int{10}},
		{"exact", 100, 50, []int{50, 50}},
		{"remainder", 120, 50, []int{50, 50, 20}},
		{"default size", 60, 0, []int{50, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkIDs(ids(tt.n), tt.size)
			got := make([]int, len(chunks))
			for i, c := range chunks {
				got[i] = len(c)
			}
			if !slices.Equal(got, tt.sizes) {
				t.Errorf("chunk sizes = %v, want %v", got, tt.sizes)
			}
		})
	}
}

func TestFetchChunked_MergesInOrder(t *testing.T) {
	var calls atomic.Int32
	all := ids(125)

	got, failed := FetchChunked(context.Background(), all, 50, nil,
		func(_ context.Context, chunk []string) ([]string, error) {
			calls.Add(1)
			return chunk, nil
		}, nil)

	if failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if !slices.Equal(got, all) {
		t.Error("results not merged in chunk order")
	}
}

func TestFetchChunked_FailedChunkIsDropped(t *testing.T) {
	boom := errors.New("boom")
	var reported [][]string

	got, failed := FetchChunked(context.Background(), ids(120), 50, nil,
		func(_ context.Context, chunk []string) ([]string, error) {
			if chunk[0] == "id-050" {
				return nil, boom
			}
			return chunk, nil
		},
		func(chunk []string, err error) {
			if !errors.Is(err, boom) {
				t.Errorf("onError err = %v, want boom", err)
			}
			reported = append(reported, chunk)
		})

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if len(got) != 70 {
		t.Errorf("len(results) = %d, want 70", len(got))
	}
	if len(reported) != 1 || reported[0][0] != "id-050" {
		t.Errorf("reported = %v", reported)
	}
}

func TestFetchChunked_LimiterHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	limiter := rate.NewLimiter(rate.Limit(1), 1)

	got, failed := FetchChunked(ctx, ids(3), 1, limiter,
		func(_ context.Context, chunk []string) ([]string, error) {
			return chunk, nil
		}, nil)

	if failed != 3 || len(got) != 0 {
		t.Errorf("got %d results and %d failures, want 0 and 3", len(got), failed)
	}
}

func TestNewChunkLimiter(t *testing.T) {
	if NewChunkLimiter(BatchConfig{}) != nil {
		t.Error("expected nil limiter when pacing disabled")
	}
	l := NewChunkLimiter(BatchConfig{ChunksPerSecond: 5, Burst: 0})
	if l == nil || l.Burst() != 1 {
		t.Errorf("limiter = %v, want burst 1", l)
	}
}
