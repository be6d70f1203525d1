package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/pazsp/lifefinder/internal/model"
)

// GeoCache persists geocoding results keyed by the exact query string, so a
// catalog reload does not re-resolve addresses that have not changed. All
// methods are best-effort: a broken cache degrades to plain network lookups.
type GeoCache struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenGeoCache(dbPath string) (*GeoCache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		return nil, err
	}

	return &GeoCache{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS geocache (
		query TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		label TEXT,
		resolved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (c *GeoCache) Get(query string) (model.ResolvedLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var loc model.ResolvedLocation
	err := c.db.QueryRow(
		"SELECT lat, lng, label FROM geocache WHERE query = ?", query,
	).Scan(&loc.Lat, &loc.Lng, &loc.Label)
	if err != nil {
		return model.ResolvedLocation{}, false
	}
	return loc, true
}

func (c *GeoCache) Put(query string, loc model.ResolvedLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.db.Exec(
		"INSERT OR REPLACE INTO geocache (query, lat, lng, label) VALUES (?,?,?,?)",
		query, loc.Lat, loc.Lng, loc.Label,
	)
}

func (c *GeoCache) Count() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM geocache").Scan(&count)
	return count, err
}

func (c *GeoCache) Close() error {
	return c.db.Close()
}
