package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/engine/catalog"
	"github.com/pazsp/lifefinder/internal/engine/geo"
	"github.com/pazsp/lifefinder/internal/engine/notify"
	"github.com/pazsp/lifefinder/internal/tui/views"
)

type viewID int

const (
	viewHome viewID = iota
	viewLoading
	viewForm
	viewResults
	viewFilePicker
	viewRecent
)

// Deps carries the engine components the TUI drives. Everything is built
// once at startup and injected; views never construct their own transports.
type Deps struct {
	Cfg        *config.Config
	Geocoder   *geo.Geocoder
	Dispatcher *notify.Dispatcher
	Log        *zap.Logger
}

// App is the root bubbletea model.
type App struct {
	deps        Deps
	cache       *catalog.Cache
	catalogPath string
	currentView viewID
	width       int
	height      int
	home        views.HomeModel
	loading     views.LoadingModel
	form        views.FormModel
	results     views.ResultsModel
	filePicker  views.FilePickerModel
	recent      views.RecentModel
}

func NewApp(deps Deps) App {
	a := App{
		deps:        deps,
		currentView: viewHome,
		home:        views.NewHomeModel(deps.Cfg.Notify.TestMode),
	}
	a.setCatalog(deps.Cfg.Catalog.Path)
	return a
}

// setCatalog points the app at a catalog file, replacing the snapshot cache.
func (a *App) setCatalog(path string) {
	a.catalogPath = path
	cfg := a.deps.Cfg.Catalog
	cfg.Path = path
	loader := catalog.NewLoader(cfg, a.deps.Geocoder, a.deps.Log)
	a.cache = catalog.NewCache(loader, cfg.CacheTTL())
}

func (a App) Init() tea.Cmd {
	return a.home.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && a.currentView != viewLoading {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case views.StartSearchMsg:
		// A live snapshot skips the loading screen entirely.
		if snap := a.cache.Cached(); snap != nil {
			a.currentView = viewForm
			a.form = views.NewFormModel(snap)
			return a, a.form.Init()
		}
		a.currentView = viewLoading
		a.loading = views.NewLoadingModel(a.cache, a.catalogPath)
		return a, tea.Batch(a.loading.Init(), a.sizeCmd())
	case views.ReloadCatalogMsg:
		a.cache.Invalidate()
		a.currentView = viewLoading
		a.loading = views.NewLoadingModel(a.cache, a.catalogPath)
		return a, tea.Batch(a.loading.Init(), a.sizeCmd())
	case views.CatalogReadyMsg:
		a.currentView = viewForm
		a.form = views.NewFormModel(msg.Snapshot)
		return a, a.form.Init()
	case views.SubmitSearchMsg:
		a.currentView = viewResults
		a.results = views.NewResultsModel(msg.Query, msg.Groups, views.ResultsDeps{
			Geocoder:   a.deps.Geocoder,
			Dispatcher: a.deps.Dispatcher,
			Notify:     a.deps.Cfg.Notify,
			Log:        a.deps.Log,
		})
		return a, tea.Batch(a.results.Init(), a.sizeCmd())
	case views.NavigateToHome:
		a.currentView = viewHome
		return a, nil
	case views.NavigateToLoad:
		a.currentView = viewFilePicker
		a.filePicker = views.NewFilePickerModel()
		return a, a.filePicker.Init()
	case views.CatalogChosenMsg:
		a.setCatalog(msg.Path)
		SaveRecent(msg.Path)
		a.currentView = viewLoading
		a.loading = views.NewLoadingModel(a.cache, a.catalogPath)
		return a, tea.Batch(a.loading.Init(), a.sizeCmd())
	case views.NavigateToRecent:
		a.currentView = viewRecent
		entries := LoadRecent()
		var recentEntries []views.RecentEntry
		for _, e := range entries {
			recentEntries = append(recentEntries, views.RecentEntry{
				Path:     e.Path,
				OpenedAt: e.OpenedAt,
			})
		}
		a.recent = views.NewRecentModel(recentEntries)
		return a, a.recent.Init()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case viewHome:
		var m tea.Model
		m, cmd = a.home.Update(msg)
		a.home = m.(views.HomeModel)
	case viewLoading:
		var m tea.Model
		m, cmd = a.loading.Update(msg)
		a.loading = m.(views.LoadingModel)
	case viewForm:
		var m tea.Model
		m, cmd = a.form.Update(msg)
		a.form = m.(views.FormModel)
	case viewResults:
		var m tea.Model
		m, cmd = a.results.Update(msg)
		a.results = m.(views.ResultsModel)
	case viewFilePicker:
		var m tea.Model
		m, cmd = a.filePicker.Update(msg)
		a.filePicker = m.(views.FilePickerModel)
	case viewRecent:
		var m tea.Model
		m, cmd = a.recent.Update(msg)
		a.recent = m.(views.RecentModel)
	}

	return a, cmd
}

func (a App) View() string {
	var content string
	switch a.currentView {
	case viewHome:
		content = a.home.View()
	case viewLoading:
		content = a.loading.View()
	case viewForm:
		content = a.form.View()
	case viewResults:
		content = a.results.View()
	case viewFilePicker:
		content = a.filePicker.View()
	case viewRecent:
		content = a.recent.View()
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// Run starts the TUI.
func Run(deps Deps) error {
	p := tea.NewProgram(NewApp(deps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
