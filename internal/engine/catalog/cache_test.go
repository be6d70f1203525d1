package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/config"
)

const onlineOnlyCSV = `Nome do Life,Endereço,Bairro,Tipo de Life,Dia da Semana,Modo,Horário de Início,Líderes,Telefone
Life Conexão,,,Jovens,Quinta,Online,20:00,Carla,(19) 98888-7777
`

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifegroups.csv")
	require.NoError(t, os.WriteFile(path, []byte(onlineOnlyCSV), 0o644))

	loader := NewLoader(config.CatalogConfig{Path: path}, geocoderForTest(t, nil), zap.NewNop())
	return NewCache(loader, ttl), path
}

func TestCacheServesSnapshotWithinTTL(t *testing.T) {
	cache, path := newTestCache(t, time.Hour)

	first := cache.Get(context.Background(), nil)
	require.NoError(t, first.Err)
	require.Len(t, first.Groups, 1)

	// Removing the source file proves the second Get never reloads.
	require.NoError(t, os.Remove(path))

	second := cache.Get(context.Background(), nil)
	assert.Same(t, first, second)
}

func TestCacheReloadsAfterTTL(t *testing.T) {
	cache, _ := newTestCache(t, time.Nanosecond)

	first := cache.Get(context.Background(), nil)
	require.NoError(t, first.Err)
	time.Sleep(time.Millisecond)

	second := cache.Get(context.Background(), nil)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Groups, 1)
}

func TestCacheDoesNotStoreFailedLoads(t *testing.T) {
	cache, path := newTestCache(t, time.Hour)
	require.NoError(t, os.Remove(path))

	failed := cache.Get(context.Background(), nil)
	assert.Error(t, failed.Err)
	assert.Nil(t, cache.Cached(), "a failed load must not satisfy later callers")

	// Restoring the source makes the next Get succeed immediately.
	require.NoError(t, os.WriteFile(path, []byte(onlineOnlyCSV), 0o644))
	recovered := cache.Get(context.Background(), nil)
	require.NoError(t, recovered.Err)
	assert.Len(t, recovered.Groups, 1)
}

func TestCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	first := cache.Get(context.Background(), nil)
	require.NoError(t, first.Err)

	cache.Invalidate()
	assert.Nil(t, cache.Cached())

	second := cache.Get(context.Background(), nil)
	assert.NotSame(t, first, second)
}
