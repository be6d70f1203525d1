package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/engine/catalog"
	"github.com/pazsp/lifefinder/internal/engine/notify"
	"github.com/pazsp/lifefinder/internal/engine/rank"
	"github.com/pazsp/lifefinder/internal/model"
	"github.com/pazsp/lifefinder/internal/phone"
	"github.com/pazsp/lifefinder/internal/tui"
)

func runSearch(args []string) error {
	var catalogPath, name, whatsapp, address string
	var categoriesStr, daysStr, modesStr string
	var joinName string
	var limit, timeoutSecs int

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	fs.StringVar(&catalogPath, "catalog", "", "Catalog .csv path (default: from config)")
	fs.StringVar(&name, "name", "", "Your name (required with -join)")
	fs.StringVar(&whatsapp, "zap", "", "Your WhatsApp number (required with -join)")
	fs.StringVar(&address, "address", "", "Your address (required)")
	fs.StringVar(&categoriesStr, "categories", "", "Comma-separated categories (default: all)")
	fs.StringVar(&daysStr, "days", "", "Comma-separated weekdays (default: all)")
	fs.StringVar(&modesStr, "modes", "", "Comma-separated modes (default: all)")
	fs.StringVar(&joinName, "join", "", "Send a join request for the named group")
	fs.IntVar(&limit, "limit", 10, "Max in-person results to print")
	fs.IntVar(&timeoutSecs, "timeout", 0, "Overall timeout in seconds (0 = none)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lifefinder search [flags]\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lifefinder search -address \"Rua Augusta 100, Consolação\"\n")
		fmt.Fprintf(os.Stderr, "  lifefinder search -address \"Av. Paulista 900\" -days Terça,Quinta -join \"Life Centro\" -name Ana -zap \"(11) 99999-0000\"\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if address == "" {
		return fmt.Errorf("-address is required")
	}

	var visitorPhone string
	if joinName != "" {
		if name == "" {
			return fmt.Errorf("-name is required with -join")
		}
		normalized, ok := phone.Normalize(whatsapp)
		if !ok {
			return fmt.Errorf("-zap must contain a valid WhatsApp number")
		}
		visitorPhone = normalized
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
	if timeoutSecs > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSecs)*time.Second)
		defer cancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
		cancel()
	}()

	startTime := time.Now()

	// Load and enrich the catalog
	fmt.Fprintf(os.Stderr, "Catalog: %s\n", deps.Cfg.Catalog.Path)
	loader := catalog.NewLoader(deps.Cfg.Catalog, deps.Geocoder, deps.Log)
	stats := &catalog.Stats{}
	groups, err := loader.Load(ctx, &catalog.LoadOptions{Stats: stats})
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d groups (%d geocoded, %d cache hits, %d dropped)\n",
		len(groups), stats.Geocoded.Load(), stats.CacheHits.Load(), stats.Dropped.Load())

	// Filter sets default to everything the catalog offers
	allCategories, allWeekdays, allModes := catalog.Options(groups)
	filters := model.Filters{
		Categories: pickList(categoriesStr, allCategories),
		Weekdays:   pickList(daysStr, allWeekdays),
		Modes:      pickList(modesStr, allModes),
	}

	// Resolve the visitor address
	origin, err := deps.Geocoder.Resolve(ctx, address)
	if err != nil {
		return fmt.Errorf("address %q not found — try adding city or CEP", address)
	}
	fmt.Fprintf(os.Stderr, "Origin: %s\n\n", origin.Label)

	inPerson, online := rank.FilterAndRank(groups, filters, origin)
	deps.Log.Info("headless search ranked",
		zap.String("origin", origin.Label),
		zap.Int("in_person", len(inPerson)),
		zap.Int("online", len(online)))

	printed := inPerson
	if len(printed) > limit {
		printed = printed[:limit]
	}

	if len(printed) > 0 {
		fmt.Printf("%-30s %-9s %-10s %-7s %-20s %s\n", "LIFE", "DIST", "DIA", "INÍCIO", "LÍDERES", "BAIRRO")
		for _, g := range printed {
			fmt.Printf("%-30s %-9s %-10s %-7s %-20s %s\n",
				clip(g.Name, 30), fmt.Sprintf("%.1f km", g.DistanceKm),
				clip(g.Weekday, 10), g.StartTime, clip(g.Leader, 20), g.Neighborhood)
		}
	} else {
		fmt.Println("Nenhum grupo presencial encontrado com esses filtros.")
	}

	if len(online) > 0 {
		fmt.Printf("\nOnline:\n")
		for _, g := range online {
			fmt.Printf("  %s (%s, %s) — %s\n", g.Name, g.Weekday, g.StartTime, g.Leader)
		}
	}

	duration := time.Since(startTime).Truncate(time.Second)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "══════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  LifeFinder\n")
	fmt.Fprintf(os.Stderr, "══════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Origin:     %s\n", origin.Label)
	fmt.Fprintf(os.Stderr, "  In-person:  %d\n", len(inPerson))
	fmt.Fprintf(os.Stderr, "  Online:     %d\n", len(online))
	fmt.Fprintf(os.Stderr, "  Duration:   %s\n", duration)
	fmt.Fprintf(os.Stderr, "══════════════════════════════\n")

	if joinName == "" {
		return nil
	}
	return sendJoin(ctx, deps, joinName, name, visitorPhone, groups)
}

func sendJoin(ctx context.Context, deps tui.Deps, joinName, visitorName, visitorPhone string, groups []model.Group) error {
	var target *model.Group
	for i := range groups {
		if strings.EqualFold(groups[i].Name, joinName) {
			target = &groups[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("group %q not found in catalog", joinName)
	}

	rec := model.SignupRequest{
		VisitorName:  visitorName,
		VisitorPhone: visitorPhone,
		GroupName:    target.Name,
		LeaderName:   target.Leader,
		Mode:         target.Mode,
	}

	var link string
	if normalized, ok := phone.Normalize(target.LeaderPhone); ok {
		rec.LeaderPhone = deps.Cfg.Notify.LeaderPhone(normalized)
		link = notify.Link(rec.LeaderPhone, visitorName, target.Name)
	}

	if deps.Cfg.Notify.TestMode {
		fmt.Fprintln(os.Stderr, "MODO TESTE: notification goes to the operator number")
	}

	ok, detail := deps.Dispatcher.Dispatch(ctx, rec)
	if !ok {
		fmt.Fprintf(os.Stderr, "Join request failed: %s\n", detail)
	} else {
		fmt.Fprintf(os.Stderr, "Join request sent for %q\n", target.Name)
	}
	if link != "" {
		fmt.Fprintf(os.Stderr, "WhatsApp: %s\n", link)
	}
	if !ok {
		return fmt.Errorf("join request not fully delivered")
	}
	return nil
}

// pickList parses a comma-separated override, falling back to every value the
// catalog offers.
func pickList(raw string, all []string) []string {
	if strings.TrimSpace(raw) == "" {
		return all
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
