// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(types.CatalogConfig{Path: filepath.Join(t.TempDir(), "data", "directory.db")})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleDoctors() []types.Doctor {
	return []types.Doctor{
		{Name: "Dr. A", Mode: types.ModeVideoConsult, Specialties: []string{"Dentist"}, Fees: 500, Experience: 5},
		{Name: "Dr. B", Mode: types.ModeInClinic, Specialties: []string{"Dentist", "ENT"}, Fees: 300, Experience: 10},
		{Name: "Dr. C"},
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	c, err := Open(types.CatalogConfig{Path: filepath.Join(dir, "x.db")})
	require.NoError(t, err)
	defer c.Close()
	assert.FileExists(t, filepath.Join(dir, "x.db"))
}

func TestLatestEmptyCatalog(t *testing.T) {
	c := testCatalog(t)
	_, err := c.Latest(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestImportAndLatestPreservesOrder(t *testing.T) {
	c := testCatalog(t)
	ctx := context.Background()

	res, err := c.Import(ctx, "test.json", sampleDoctors())
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 3, res.Snapshot.Records)
	assert.NotEmpty(t, res.Snapshot.ID)

	got, err := c.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDoctors(), got)
}

func TestImportSkipsUnchangedPayload(t *testing.T) {
	c := testCatalog(t)
	ctx := context.Background()

	first, err := c.Import(ctx, "a", sampleDoctors())
	require.NoError(t, err)

	second, err := c.Import(ctx, "b", sampleDoctors())
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Snapshot.ID, second.Snapshot.ID)

	snaps, err := c.Snapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestImportNewSnapshotBecomesLatest(t *testing.T) {
	c := testCatalog(t)
	ctx := context.Background()

	_, err := c.Import(ctx, "v1", sampleDoctors())
	require.NoError(t, err)

	updated := []types.Doctor{{Name: "Dr. Z", Fees: 100}}
	res, err := c.Import(ctx, "v2", updated)
	require.NoError(t, err)
	assert.False(t, res.Skipped)

	got, err := c.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	snaps, err := c.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "v2", snaps[0].Source)
	assert.Equal(t, "v1", snaps[1].Source)
	assert.False(t, snaps[0].ImportedAt.IsZero())
}

func TestImportEmptyList(t *testing.T) {
	c := testCatalog(t)
	ctx := context.Background()

	_, err := c.Import(ctx, "empty", nil)
	require.NoError(t, err)

	got, err := c.Latest(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(sampleDoctors())
	require.NoError(t, err)
	b, err := Fingerprint(sampleDoctors())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	changed := sampleDoctors()
	changed[0].Fees = 501
	c, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
