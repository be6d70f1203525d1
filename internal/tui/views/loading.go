package views

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pazsp/lifefinder/internal/engine/catalog"
	"github.com/pazsp/lifefinder/internal/tui/styles"
)

// sharedState holds data shared between the loader goroutine and TUI.
// Lives behind a pointer so it survives bubbletea's value copies.
type sharedState struct {
	mu     sync.Mutex
	stats  *catalog.Stats
	cancel context.CancelFunc
}

func (s *sharedState) getCancel() context.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel
}

func (s *sharedState) getStats() *catalog.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// LoadingModel shows catalog loading and geocode enrichment progress.
type LoadingModel struct {
	cache       *catalog.Cache
	path        string
	progress    progress.Model
	startTime   time.Time
	done        bool
	confirmQuit bool
	snap        *catalog.Snapshot
	width       int
	height      int
	shared      *sharedState
}

// Messages
type loadTickMsg time.Time

type loadDoneMsg struct {
	snap *catalog.Snapshot
}

// CatalogReadyMsg hands the enriched snapshot to the search form.
type CatalogReadyMsg struct {
	Snapshot *catalog.Snapshot
}

func NewLoadingModel(cache *catalog.Cache, path string) LoadingModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
	)

	return LoadingModel{
		cache:     cache,
		path:      path,
		progress:  p,
		startTime: time.Now(),
		shared:    &sharedState{},
	}
}

func (m LoadingModel) Init() tea.Cmd {
	return tea.Batch(
		m.startLoading(),
		loadTickCmd(),
	)
}

func loadTickCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return loadTickMsg(t)
	})
}

func (m LoadingModel) startLoading() tea.Cmd {
	shared := m.shared
	cache := m.cache

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())

		stats := &catalog.Stats{}
		shared.mu.Lock()
		shared.stats = stats
		shared.cancel = cancel
		shared.mu.Unlock()

		snap := cache.Get(ctx, &catalog.LoadOptions{Stats: stats})
		cancel()
		return loadDoneMsg{snap: snap}
	}
}

func (m LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if cancel := m.shared.getCancel(); cancel != nil {
				cancel()
			}
			return m, tea.Quit
		case "esc":
			if m.done {
				return m, func() tea.Msg { return NavigateToHome{} }
			}
			if m.confirmQuit {
				// Second esc: cancel and go home
				if cancel := m.shared.getCancel(); cancel != nil {
					cancel()
				}
				return m, func() tea.Msg { return NavigateToHome{} }
			}
			// First esc: show confirmation
			m.confirmQuit = true
			return m, nil
		case "enter":
			if m.done {
				if m.snap != nil && m.snap.Err == nil {
					snap := m.snap
					return m, func() tea.Msg {
						return CatalogReadyMsg{Snapshot: snap}
					}
				}
				return m, func() tea.Msg { return NavigateToHome{} }
			}
			if m.confirmQuit {
				m.confirmQuit = false
				return m, nil
			}
		}
		// Any other key cancels the confirmation
		if m.confirmQuit {
			m.confirmQuit = false
		}
	case loadTickMsg:
		if m.done {
			return m, nil
		}
		return m, loadTickCmd()
	case loadDoneMsg:
		m.done = true
		m.snap = msg.snap
		// Fresh snapshots move straight to the form; only errors linger here.
		if m.snap != nil && m.snap.Err == nil {
			snap := m.snap
			return m, func() tea.Msg {
				return CatalogReadyMsg{Snapshot: snap}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	var pModel tea.Model
	pModel, cmd = m.progress.Update(msg)
	m.progress = pModel.(progress.Model)
	return m, cmd
}

func (m LoadingModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Loading catalog: " + m.path))
	b.WriteString("\n\n")

	statsBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Muted).
		Padding(0, 1).
		Width(30).
		Render(m.renderStats())
	b.WriteString(statsBox)
	b.WriteString("\n\n")

	stats := m.shared.getStats()
	var pct float64
	if stats != nil && stats.Total > 0 {
		pct = float64(stats.Done.Load()) / float64(stats.Total)
	}
	b.WriteString(m.progress.ViewAs(pct))
	b.WriteString("\n\n")

	switch {
	case m.done && m.snap != nil && m.snap.Err != nil:
		b.WriteString(styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.snap.Err)))
		b.WriteString("\n\n")
		b.WriteString(styles.StatusBar.Render("enter back to menu"))
	case m.done:
		count := 0
		if m.snap != nil {
			count = len(m.snap.Groups)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Success).Bold(true).
			Render(fmt.Sprintf("Catalog ready! %d groups", count)))
		b.WriteString("\n\n")
		b.WriteString(styles.StatusBar.Render("enter continue • esc back"))
	case m.confirmQuit:
		b.WriteString(styles.ErrorText.Render("Press ESC again to stop loading and go back"))
		b.WriteString("\n")
		b.WriteString(styles.StatusBar.Render("esc confirm stop • any key continue"))
	default:
		b.WriteString(styles.StatusBar.Render("esc cancel • ctrl+c quit"))
	}

	return b.String()
}

func (m LoadingModel) renderStats() string {
	var sb strings.Builder
	elapsed := time.Since(m.startTime).Truncate(time.Second)

	var done, total, geocoded, cacheHits, dropped, failures int64
	stats := m.shared.getStats()
	if stats != nil {
		done = stats.Done.Load()
		total = int64(stats.Total)
		geocoded = stats.Geocoded.Load()
		cacheHits = stats.CacheHits.Load()
		dropped = stats.Dropped.Load()
		failures = stats.Failures.Load()
	}

	statLabel := lipgloss.NewStyle().Foreground(styles.Muted).Width(12)
	statVal := lipgloss.NewStyle().Foreground(styles.Text).Bold(true)

	row := func(label string, value string) {
		sb.WriteString(statLabel.Render(label))
		sb.WriteString(statVal.Render(value))
		sb.WriteString("\n")
	}

	row("Groups:", fmt.Sprintf("%d/%d", done, total))
	row("Geocoded:", fmt.Sprintf("%d", geocoded))
	row("Cache hits:", fmt.Sprintf("%d", cacheHits))

	if dropped > 0 {
		sb.WriteString(statLabel.Render("Dropped:"))
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Warning).Bold(true).
			Render(fmt.Sprintf("%d", dropped)))
		sb.WriteString("\n")
	}
	if failures > 0 {
		sb.WriteString(statLabel.Render("Failures:"))
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Error).Bold(true).
			Render(fmt.Sprintf("%d", failures)))
		sb.WriteString("\n")
	}

	row("Elapsed:", elapsed.String())

	// ETA
	if done > 0 && total > 0 && !m.done {
		rate := float64(done) / elapsed.Seconds()
		if rate > 0 {
			remaining := float64(total-done) / rate
			eta := time.Duration(remaining * float64(time.Second)).Truncate(time.Second)
			row("ETA:", "~"+eta.String())
		}
	}

	return sb.String()
}
