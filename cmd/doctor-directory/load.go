// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"

	"github.com/pdiddy/doctor-directory/internal/records"
	"github.com/pdiddy/doctor-directory/internal/source"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// loadRecords opens the configured source and populates a record store.
// A failed read leaves the store empty; only an unusable location is an
// error.
func loadRecords(ctx context.Context, cfg types.Config) (*records.Store, error) {
	src, err := source.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := records.NewStore(slog.Default())
	store.Load(ctx, src)
	if !store.Loaded() {
		slog.Warn("no records loaded", "source", src.Name())
	}
	return store, nil
}
