package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pazsp/lifefinder/internal/engine/catalog"
)

// runExport loads the catalog, enriches it with coordinates and writes the
// result as CSV, so the sheet owners can see what the tool actually serves.
func runExport(args []string) error {
	var catalogPath, outputPath, format string

	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.StringVar(&catalogPath, "catalog", "", "Catalog .csv path (default: from config)")
	fs.StringVar(&outputPath, "output", "lifefinder_export.csv", "Output file path")
	fs.StringVar(&format, "format", "csv", "Export format: csv")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lifefinder export [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lifefinder export -catalog ./lifegroups.csv -output enriched.csv\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if format != "csv" {
		return fmt.Errorf("unsupported format: %s (only csv supported)", format)
	}

	deps, cleanup, err := buildDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	if catalogPath != "" {
		deps.Cfg.Catalog.Path = catalogPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	loader := catalog.NewLoader(deps.Cfg.Catalog, deps.Geocoder, deps.Log)
	stats := &catalog.Stats{}
	groups, err := loader.Load(ctx, &catalog.LoadOptions{Stats: stats})
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if len(groups) == 0 {
		return fmt.Errorf("no groups in catalog")
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{
		"name", "category", "weekday", "start_time", "mode",
		"leader", "leader_phone", "address", "neighborhood", "lat", "lng",
	})

	for _, g := range groups {
		lat, lng := "", ""
		if g.HasCoords {
			lat = fmt.Sprintf("%.6f", g.Lat)
			lng = fmt.Sprintf("%.6f", g.Lng)
		}
		w.Write([]string{
			g.Name, g.Category, g.Weekday, g.StartTime, g.Mode,
			g.Leader, g.LeaderPhone, g.Address, g.Neighborhood, lat, lng,
		})
	}

	fmt.Fprintf(os.Stderr, "Exported %d groups to %s (%d geocoded, %d cache hits, %d dropped)\n",
		len(groups), outputPath, stats.Geocoded.Load(), stats.CacheHits.Load(), stats.Dropped.Load())
	return nil
}
