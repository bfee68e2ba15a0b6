// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package cache

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/psalter/internal/logging"
)

// BadgerStore is a persistent Store keyed by string. Values are JSON
// encoded. Several stores may share one database under different prefixes.
//
// Store has no error returns, so read failures count as misses and write
// failures are logged.
type BadgerStore[V any] struct {
	db     *badger.DB
	prefix string
}

// NewBadgerStore creates a store writing keys under prefix.
func NewBadgerStore[V any](db *badger.DB, prefix string) *BadgerStore[V] {
	return &BadgerStore[V]{db: db, prefix: prefix}
}

// OpenBadger opens a database at path. An empty path opens an in-memory
// database.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil
	return badger.Open(opts)
}

func (s *BadgerStore[V]) key(k string) []byte {
	return []byte(s.prefix + k)
}

// Get returns the decoded value for key.
func (s *BadgerStore[V]) Get(key string) (V, bool) {
	var value V

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &value)
		})
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		var zero V
		return zero, false
	}
	return value, true
}

// Set encodes and stores value under key.
func (s *BadgerStore[V]) Set(key string, value V) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), data)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate deletes key.
func (s *BadgerStore[V]) Invalidate(key string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("cache invalidate failed")
	}
}
