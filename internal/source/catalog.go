// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"

	"github.com/pdiddy/doctor-directory/internal/catalog"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// CatalogSource reads the latest snapshot stored in a SQLite catalog.
type CatalogSource struct {
	Path string
}

// Name returns the source identifier.
func (s *CatalogSource) Name() string { return "catalog" }

// Load opens the catalog, reads the latest snapshot, and closes it again.
func (s *CatalogSource) Load(ctx context.Context) ([]types.Doctor, error) {
	c, err := catalog.Open(types.CatalogConfig{Path: s.Path})
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Latest(ctx)
}
