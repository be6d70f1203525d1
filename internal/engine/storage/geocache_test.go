package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazsp/lifefinder/internal/model"
)

func openTestCache(t *testing.T) *GeoCache {
	t.Helper()
	cache, err := OpenGeoCache(filepath.Join(t.TempDir(), "nested", "geocache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestGeoCachePutGet(t *testing.T) {
	cache := openTestCache(t)

	loc := model.ResolvedLocation{Lat: -22.9056, Lng: -47.0608, Label: "Centro - Campinas"}
	cache.Put("Rua Barão de Jaguara, 1000, Brasil", loc)

	got, ok := cache.Get("Rua Barão de Jaguara, 1000, Brasil")
	require.True(t, ok)
	assert.Equal(t, loc, got)

	_, ok = cache.Get("outra consulta")
	assert.False(t, ok)
}

func TestGeoCachePutOverwrites(t *testing.T) {
	cache := openTestCache(t)

	cache.Put("q", model.ResolvedLocation{Lat: 1, Lng: 2, Label: "velho"})
	cache.Put("q", model.ResolvedLocation{Lat: 3, Lng: 4, Label: "novo"})

	got, ok := cache.Get("q")
	require.True(t, ok)
	assert.Equal(t, "novo", got.Label)

	n, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
