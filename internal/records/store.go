// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records holds the full, unfiltered doctor list for a session.
// The store is populated by exactly one read of its data source and is never
// modified afterwards. A failed read leaves it empty for good.
package records

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/pdiddy/doctor-directory/internal/source"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// Store is the session's record store. It is safe for concurrent use: the
// load may resolve on another goroutine while readers call Records.
type Store struct {
	once   sync.Once
	mu     sync.RWMutex
	loaded bool
	docs   []types.Doctor
	onLoad []func()
	logger *slog.Logger
}

// NewStore creates an empty store. A nil logger uses slog.Default().
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

// NewStaticStore returns a store that is already populated with docs.
func NewStaticStore(docs []types.Doctor) *Store {
	s := NewStore(nil)
	s.once.Do(func() {})
	s.docs = docs
	s.loaded = true
	return s
}

// Load reads src once and keeps the result verbatim. Later calls do nothing.
// Errors are not returned: the store stays empty and the failure is only
// logged at debug level.
func (s *Store) Load(ctx context.Context, src source.Source) {
	s.once.Do(func() {
		docs, err := src.Load(ctx)
		if err != nil {
			s.logger.Debug("record load failed", "source", src.Name(), "error", err)
			return
		}

		s.mu.Lock()
		s.docs = docs
		s.loaded = true
		observers := slices.Clone(s.onLoad)
		s.mu.Unlock()

		s.logger.Debug("records loaded", "source", src.Name(), "count", len(docs))
		for _, fn := range observers {
			fn()
		}
	})
}

// LoadAsync runs Load on a new goroutine and returns a channel that is
// closed once the read has resolved, successfully or not.
func (s *Store) LoadAsync(ctx context.Context, src source.Source) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Load(ctx, src)
	}()
	return done
}

// Records returns the loaded records, or an empty list before a successful
// load. The returned slice must not be modified.
func (s *Store) Records() []types.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs
}

// Loaded reports whether the store was populated.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// OnLoad registers fn to be called after a successful population. Observers
// registered after the load are not called.
func (s *Store) OnLoad(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLoad = append(s.onLoad, fn)
}
