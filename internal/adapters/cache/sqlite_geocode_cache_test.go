package cache

import (
	"context"
	"os"
	"path/filepath"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSqliteCache(t *testing.T) *SqliteGeocodeCache {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return NewSqliteGeocodeCache(conn)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	err := c.PutMany(ctx, map[string]domain.Coordinates{
		"Vlamoven 7, Arnhem, Nederland":          {Lat: 51.9866, Lng: 5.9525},
		"Franciscusdreef 68, Utrecht, Nederland": {Lat: 52.126, Lng: 5.1054},
	})
	require.NoError(t, err)

	got, err := c.GetMany(ctx, []string{
		"Vlamoven 7, Arnhem, Nederland",
		"Franciscusdreef 68, Utrecht, Nederland",
		"Missing 1, Nergens, Nederland",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 51.9866, got["Vlamoven 7, Arnhem, Nederland"].Lat, 1e-9)
	assert.InDelta(t, 5.1054, got["Franciscusdreef 68, Utrecht, Nederland"].Lng, 1e-9)
}

func TestSqliteGeocodeCacheOverwrite(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"a": {Lat: 1, Lng: 1}}))
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"a": {Lat: 2, Lng: 3}}))

	got, err := c.GetMany(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 2, Lng: 3}, got["a"])
}

func TestSqliteGeocodeCacheEmptyInput(t *testing.T) {
	c := newSqliteCache(t)

	got, err := c.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, c.PutMany(context.Background(), nil))
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"address": "Vlamoven 7, Arnhem, Nederland", "lat": 51.9866, "lng": 5.9525},
		{"address": " Franciscusdreef 68, Utrecht, Nederland ", "lat": 52.126, "lng": 5.1054}
	]`), 0o600))

	n, err := SeedFromJSON(ctx, c, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := c.GetMany(ctx, []string{"Franciscusdreef 68, Utrecht, Nederland"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSeedFromJSONRejectsBadRows(t *testing.T) {
	c := NewMemoryGeocodeCache(0)
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[{"address": "", "lat": 1, "lng": 1}]`), 0o600))
	_, err := SeedFromJSON(context.Background(), c, empty)
	require.Error(t, err)

	noCoords := filepath.Join(dir, "nocoords.json")
	require.NoError(t, os.WriteFile(noCoords, []byte(`[{"address": "x"}]`), 0o600))
	_, err = SeedFromJSON(context.Background(), c, noCoords)
	require.Error(t, err)

	_, err = SeedFromJSON(context.Background(), c, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
