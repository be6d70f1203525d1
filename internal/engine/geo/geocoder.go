package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/engine/storage"
	"github.com/pazsp/lifefinder/internal/model"
)

// ErrNotFound means the geocoder returned no result for the query.
var ErrNotFound = errors.New("address not found")

type nominatimAddress struct {
	Road          string `json:"road"`
	HouseNumber   string `json:"house_number"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Municipality  string `json:"municipality"`
}

type nominatimResult struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

// Geocoder resolves free-text addresses through an OSM Nominatim endpoint,
// with a sqlite cache in front of the network.
type Geocoder struct {
	client      *Client
	baseURL     string
	cityHint    string
	countryHint string
	cache       *storage.GeoCache
}

// NewGeocoder builds a geocoder from config. cache may be nil, in which case
// every lookup goes to the network.
func NewGeocoder(cfg config.GeocoderConfig, cache *storage.GeoCache) *Geocoder {
	return &Geocoder{
		client:      NewClient(cfg.Timeout()),
		baseURL:     cfg.BaseURL,
		cityHint:    cfg.CityHint,
		countryHint: cfg.CountryHint,
		cache:       cache,
	}
}

// Geocode resolves a complete query string. The second return value reports
// whether the result came from the cache.
func (g *Geocoder) Geocode(ctx context.Context, query string) (model.ResolvedLocation, bool, error) {
	if g.cache != nil {
		if loc, ok := g.cache.Get(query); ok {
			return loc, true, nil
		}
	}

	u := g.baseURL + "?" + url.Values{
		"q":              {query},
		"format":         {"jsonv2"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}.Encode()

	body, err := g.client.Fetch(ctx, u)
	if err != nil {
		return model.ResolvedLocation{}, false, fmt.Errorf("geocoding request failed: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return model.ResolvedLocation{}, false, fmt.Errorf("decoding geocoder response: %w", err)
	}
	if len(results) == 0 {
		return model.ResolvedLocation{}, false, ErrNotFound
	}

	r := results[0]
	lat, _ := strconv.ParseFloat(r.Lat, 64)
	lng, _ := strconv.ParseFloat(r.Lon, 64)
	loc := model.ResolvedLocation{Lat: lat, Lng: lng, Label: displayLabel(r)}

	if g.cache != nil {
		g.cache.Put(query, loc)
	}
	return loc, false, nil
}

// Resolve geocodes visitor input with scoped hints: "<text>, <city>,
// <country>" first, then "<text>, <country>". Any failure, transport
// included, collapses into ErrNotFound — the caller treats an unresolved
// address as a hard stop, not a partial result.
func (g *Geocoder) Resolve(ctx context.Context, text string) (model.ResolvedLocation, error) {
	loc, _, err := g.Geocode(ctx, fmt.Sprintf("%s, %s, %s", text, g.cityHint, g.countryHint))
	if err == nil {
		return loc, nil
	}

	loc, _, err = g.Geocode(ctx, fmt.Sprintf("%s, %s", text, g.countryHint))
	if err == nil {
		return loc, nil
	}
	return model.ResolvedLocation{}, ErrNotFound
}

// CatalogQuery builds the enrichment query for a stored group address.
func (g *Geocoder) CatalogQuery(address string) string {
	return address + ", " + g.countryHint
}
