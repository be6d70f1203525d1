package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/engine/geo"
	"github.com/pazsp/lifefinder/internal/model"
)

// Catalog column headers. The sheet is maintained by hand, so surrounding
// whitespace in header cells is tolerated.
const (
	colName         = "Nome do Life"
	colAddress      = "Endereço"
	colNeighborhood = "Bairro"
	colCategory     = "Tipo de Life"
	colWeekday      = "Dia da Semana"
	colMode         = "Modo"
	colStartTime    = "Horário de Início"
	colLeader       = "Líderes"
	colPhone        = "Telefone"
)

// Stats tracks enrichment progress. Counters are atomics so a UI can read
// them live while the loader runs.
type Stats struct {
	Total     int
	Done      atomic.Int64
	Geocoded  atomic.Int64
	CacheHits atomic.Int64
	Dropped   atomic.Int64
	Failures  atomic.Int64
}

// LoadOptions provides optional hooks for the loading pipeline.
type LoadOptions struct {
	// OnGroup is called for each retained group, in catalog order.
	OnGroup func(model.Group)
	// Stats allows passing an external Stats object for live progress
	// tracking. If nil, Load creates its own.
	Stats *Stats
}

// Loader reads the catalog CSV and enriches each row with coordinates. The
// geocoding loop is deliberately serial: the catalog is small, refreshes
// rarely, and the public geocoder throttles bursts.
type Loader struct {
	path     string
	geocoder *geo.Geocoder
	log      *zap.Logger
}

func NewLoader(cfg config.CatalogConfig, geocoder *geo.Geocoder, log *zap.Logger) *Loader {
	return &Loader{path: cfg.Path, geocoder: geocoder, log: log}
}

// Load reads, enriches and filters the catalog. In-person rows that cannot
// be geocoded are dropped; online rows are kept without coordinates. A
// source-level failure returns an empty catalog and the error — downstream
// code must treat an empty catalog as valid, degenerate input.
func (l *Loader) Load(ctx context.Context, opts *LoadOptions) ([]model.Group, error) {
	if opts == nil {
		opts = &LoadOptions{}
	}

	f, err := os.Open(l.path)
	if err != nil {
		l.log.Error("catalog open failed", zap.String("path", l.path), zap.Error(err))
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		l.log.Error("catalog parse failed", zap.String("path", l.path), zap.Error(err))
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	stats := opts.Stats
	if stats == nil {
		stats = &Stats{}
	}
	stats.Total = len(rows)

	var groups []model.Group
	for _, g := range rows {
		select {
		case <-ctx.Done():
			return groups, ctx.Err()
		default:
		}

		if addr := strings.TrimSpace(g.Address); addr != "" {
			loc, cached, err := l.geocoder.Geocode(ctx, l.geocoder.CatalogQuery(addr))
			switch {
			case err == nil:
				g.Lat, g.Lng = loc.Lat, loc.Lng
				g.HasCoords = true
				if cached {
					stats.CacheHits.Add(1)
				} else {
					stats.Geocoded.Add(1)
				}
			case errors.Is(err, context.Canceled):
				return groups, err
			default:
				stats.Failures.Add(1)
				l.log.Warn("geocoding group failed",
					zap.String("group", g.Name), zap.String("address", addr), zap.Error(err))
			}
		}

		stats.Done.Add(1)

		// Coordinates are required for in-person groups only. Online groups
		// meet nowhere in particular.
		if !g.HasCoords && !g.IsOnline() {
			stats.Dropped.Add(1)
			l.log.Warn("dropping in-person group without coordinates", zap.String("group", g.Name))
			continue
		}

		groups = append(groups, g)
		if opts.OnGroup != nil {
			opts.OnGroup(g)
		}
	}

	return groups, nil
}

// ParseCSV reads raw catalog rows. Header whitespace is trimmed, rows with
// an empty name are discarded, unknown columns are ignored.
func ParseCSV(r io.Reader) ([]model.Group, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[colName]; !ok {
		return nil, fmt.Errorf("catalog is missing the %q column", colName)
	}

	field := func(record []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var groups []model.Group
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		name := field(record, colName)
		if name == "" {
			continue
		}

		groups = append(groups, model.Group{
			Name:         name,
			Category:     field(record, colCategory),
			Weekday:      field(record, colWeekday),
			Mode:         field(record, colMode),
			StartTime:    field(record, colStartTime),
			Leader:       field(record, colLeader),
			LeaderPhone:  field(record, colPhone),
			Address:      field(record, colAddress),
			Neighborhood: field(record, colNeighborhood),
		})
	}

	return groups, nil
}

// Options returns the distinct filter values present in the catalog, sorted,
// for use as "select everything" defaults.
func Options(groups []model.Group) (categories, weekdays, modes []string) {
	return distinct(groups, func(g model.Group) string { return g.Category }),
		distinct(groups, func(g model.Group) string { return g.Weekday }),
		distinct(groups, func(g model.Group) string { return g.Mode })
}

func distinct(groups []model.Group, key func(model.Group) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, g := range groups {
		v := key(g)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
