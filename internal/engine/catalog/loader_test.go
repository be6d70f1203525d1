package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/engine/geo"
	"github.com/pazsp/lifefinder/internal/model"
)

const catalogCSV = ` Nome do Life ,Endereço,Bairro,Tipo de Life,Dia da Semana,Modo,Horário de Início,Líderes,Telefone
Life Centro,"Rua Barão de Jaguara, 1000",Centro,Jovens,Terça,Presencial,19:30,Bruno,(19) 99207-1423
Life Conexão,,,Jovens,Quinta,Online,20:00,Carla,(19) 98888-7777
,ignorado,,,,,,,
Life Sem Endereço,"Rua Inexistente, 999",Longe,Casais,Sábado,Presencial,19:00,Davi,(19) 97777-6666
`

func TestParseCSV(t *testing.T) {
	groups, err := ParseCSV(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Len(t, groups, 3, "rows with an empty name are discarded")

	g := groups[0]
	assert.Equal(t, "Life Centro", g.Name)
	assert.Equal(t, "Rua Barão de Jaguara, 1000", g.Address)
	assert.Equal(t, "Centro", g.Neighborhood)
	assert.Equal(t, "Jovens", g.Category)
	assert.Equal(t, "Terça", g.Weekday)
	assert.Equal(t, "Presencial", g.Mode)
	assert.Equal(t, "19:30", g.StartTime)
	assert.Equal(t, "Bruno", g.Leader)
	assert.Equal(t, "(19) 99207-1423", g.LeaderPhone)
	assert.False(t, g.HasCoords)
}

func TestParseCSVMissingNameColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Endereço,Bairro\na,b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nome do Life")
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lifegroups.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// geocoderForTest backs a real Geocoder with a canned HTTP endpoint so the
// loader pipeline runs end to end without touching the network. known maps
// resolvable queries to their "lat,lon" answer.
func geocoderForTest(t *testing.T, known map[string][2]string) *geo.Geocoder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type result struct {
			Lat         string `json:"lat"`
			Lon         string `json:"lon"`
			DisplayName string `json:"display_name"`
		}
		results := []result{}
		if coords, ok := known[r.URL.Query().Get("q")]; ok {
			results = append(results, result{
				Lat: coords[0], Lon: coords[1],
				DisplayName: "Rua Barão de Jaguara, Centro, Campinas, Brasil",
			})
		}
		json.NewEncoder(w).Encode(results)
	}))
	t.Cleanup(srv.Close)

	return geo.NewGeocoder(config.GeocoderConfig{
		BaseURL:     srv.URL,
		CityHint:    "São Paulo",
		CountryHint: "Brasil",
		TimeoutSecs: 5,
	}, nil)
}

func TestLoadDropsOnlyInPersonRowsWithoutCoordinates(t *testing.T) {
	path := writeCatalog(t, catalogCSV)
	geocoder := geocoderForTest(t, map[string][2]string{
		"Rua Barão de Jaguara, 1000, Brasil": {"-22.9056", "-47.0608"},
	})

	stats := &Stats{}
	loader := NewLoader(config.CatalogConfig{Path: path}, geocoder, zap.NewNop())

	var seen []string
	groups, err := loader.Load(context.Background(), &LoadOptions{
		Stats:   stats,
		OnGroup: func(g model.Group) { seen = append(seen, g.Name) },
	})
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, "Life Centro", groups[0].Name)
	assert.True(t, groups[0].HasCoords)
	assert.InDelta(t, -22.9056, groups[0].Lat, 1e-9)

	// Online rows survive without coordinates.
	assert.Equal(t, "Life Conexão", groups[1].Name)
	assert.False(t, groups[1].HasCoords)

	assert.Equal(t, []string{"Life Centro", "Life Conexão"}, seen)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, int64(3), stats.Done.Load())
	assert.Equal(t, int64(1), stats.Geocoded.Load())
	assert.Equal(t, int64(1), stats.Dropped.Load())
	assert.Equal(t, int64(1), stats.Failures.Load())
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader(config.CatalogConfig{Path: filepath.Join(t.TempDir(), "nope.csv")},
		geocoderForTest(t, nil), zap.NewNop())

	groups, err := loader.Load(context.Background(), nil)
	require.Error(t, err)
	assert.Empty(t, groups)
}

func TestOptions(t *testing.T) {
	groups := []model.Group{
		{Category: "Jovens", Weekday: "Terça", Mode: "Presencial"},
		{Category: "Casais", Weekday: "Terça", Mode: "Online"},
		{Category: "Jovens", Weekday: "Quinta", Mode: "Presencial"},
		{},
	}

	categories, weekdays, modes := Options(groups)
	assert.Equal(t, []string{"Casais", "Jovens"}, categories)
	assert.Equal(t, []string{"Quinta", "Terça"}, weekdays)
	assert.Equal(t, []string{"Online", "Presencial"}, modes)
}
