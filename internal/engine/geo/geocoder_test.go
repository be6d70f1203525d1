package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazsp/lifefinder/internal/config"
)

// fakeNominatim answers with the canned result for queries it knows and an
// empty array for everything else, recording the queries it saw.
func fakeNominatim(t *testing.T, known map[string]nominatimResult, queries *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		*queries = append(*queries, q)

		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		results := []nominatimResult{}
		if res, ok := known[q]; ok {
			results = append(results, res)
		}
		json.NewEncoder(w).Encode(results)
	}))
}

func newTestGeocoder(baseURL string) *Geocoder {
	return NewGeocoder(config.GeocoderConfig{
		BaseURL:     baseURL,
		CityHint:    "São Paulo",
		CountryHint: "Brasil",
		TimeoutSecs: 5,
	}, nil)
}

func TestResolveUsesCityHintFirst(t *testing.T) {
	var queries []string
	srv := fakeNominatim(t, map[string]nominatimResult{
		"Rua Augusta 100, São Paulo, Brasil": {
			Lat: "-23.5536", Lon: "-46.6524",
			DisplayName: "Rua Augusta, Consolação, São Paulo, Brasil",
			Address:     nominatimAddress{Road: "Rua Augusta", HouseNumber: "100", Suburb: "Consolação", City: "São Paulo"},
		},
	}, &queries)
	defer srv.Close()

	g := newTestGeocoder(srv.URL)

	loc, err := g.Resolve(context.Background(), "Rua Augusta 100")
	require.NoError(t, err)
	assert.InDelta(t, -23.5536, loc.Lat, 1e-9)
	assert.InDelta(t, -46.6524, loc.Lng, 1e-9)
	assert.Equal(t, "Rua Augusta, 100, Consolação - São Paulo", loc.Label)
	assert.Equal(t, []string{"Rua Augusta 100, São Paulo, Brasil"}, queries)
}

func TestResolveFallsBackToCountryScope(t *testing.T) {
	var queries []string
	srv := fakeNominatim(t, map[string]nominatimResult{
		"Avenida Beira Mar, Fortaleza, Brasil": {
			Lat: "-3.7227", Lon: "-38.4931",
			DisplayName: "Avenida Beira Mar, Meireles, Fortaleza, Brasil",
			Address:     nominatimAddress{Road: "Avenida Beira Mar", Suburb: "Meireles", City: "Fortaleza"},
		},
	}, &queries)
	defer srv.Close()

	g := newTestGeocoder(srv.URL)

	loc, err := g.Resolve(context.Background(), "Avenida Beira Mar, Fortaleza")
	require.NoError(t, err)
	assert.Equal(t, "Fortaleza", loc.Label[len(loc.Label)-len("Fortaleza"):])
	require.Len(t, queries, 2)
	assert.Equal(t, "Avenida Beira Mar, Fortaleza, São Paulo, Brasil", queries[0])
	assert.Equal(t, "Avenida Beira Mar, Fortaleza, Brasil", queries[1])
}

func TestResolveNotFound(t *testing.T) {
	var queries []string
	srv := fakeNominatim(t, nil, &queries)
	defer srv.Close()

	g := newTestGeocoder(srv.URL)

	_, err := g.Resolve(context.Background(), "xyzzy")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, queries, 2, "both scoped attempts must run before giving up")
}

func TestResolveTransportFailureCollapsesToNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := newTestGeocoder(srv.URL)

	_, err := g.Resolve(context.Background(), "Rua Qualquer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogQuery(t *testing.T) {
	g := newTestGeocoder("http://unused")
	assert.Equal(t, "Rua A, 10, Campinas, Brasil", g.CatalogQuery("Rua A, 10, Campinas"))
}

func TestDistanceKm(t *testing.T) {
	// São Paulo cathedral to Campinas center, roughly 88 km.
	d := DistanceKm(-23.5505, -46.6333, -22.9056, -47.0608)
	assert.InDelta(t, 83.0, d, 8.0)

	assert.Zero(t, DistanceKm(-23.5505, -46.6333, -23.5505, -46.6333))
}
