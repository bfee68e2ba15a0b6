// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package recommend

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ChunkIDs splits ids into consecutive chunks of at most size elements.
// A non-positive size uses DefaultChunkSize.
func ChunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// ChunkFetcher fetches the records for one chunk of identifiers.
type ChunkFetcher[T any] func(ctx context.Context, ids []string) ([]T, error)

// FetchChunked fetches ids in chunks concurrently and merges the results in
// chunk order once every chunk has resolved. A failed chunk contributes no
// records; its error is passed to onError and counted in the returned
// failure count. limiter may be nil.
func FetchChunked[T any](
	ctx context.Context,
	ids []string,
	size int,
	limiter *rate.Limiter,
	fetch ChunkFetcher[T],
	onError func(chunk []string, err error),
) (results []T, failed int) {
	chunks := ChunkIDs(ids, size)
	if len(chunks) == 0 {
		return nil, 0
	}

	parts := make([][]T, len(chunks))
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(idx int, ids []string) {
			defer wg.Done()
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					errs[idx] = err
					return
				}
			}
			parts[idx], errs[idx] = fetch(ctx, ids)
		}(i, chunk)
	}

	wg.Wait()

	total := 0
	for i := range parts {
		total += len(parts[i])
	}
	results = make([]T, 0, total)

	for i, err := range errs {
		if err != nil {
			failed++
			if onError != nil {
				onError(chunks[i], err)
			}
			continue
		}
		results = append(results, parts[i]...)
	}
	return results, failed
}

// NewChunkLimiter returns a limiter pacing chunk requests, or nil when
// pacing is disabled.
func NewChunkLimiter(cfg BatchConfig) *rate.Limiter {
	if cfg.ChunksPerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.ChunksPerSecond), burst)
}
