package views

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/engine/geo"
	"github.com/pazsp/lifefinder/internal/engine/notify"
	"github.com/pazsp/lifefinder/internal/engine/rank"
	"github.com/pazsp/lifefinder/internal/model"
	"github.com/pazsp/lifefinder/internal/phone"
	"github.com/pazsp/lifefinder/internal/tui/components"
	"github.com/pazsp/lifefinder/internal/tui/styles"
)

type focusArea int

const (
	focusTable focusArea = iota
	focusFilter
	focusCard
	focusMap
)

type tabID int

const (
	tabInPerson tabID = iota
	tabOnline
)

type joinState int

const (
	joinIdle joinState = iota
	joinConfirm
	joinSending
	joinDone
)

// ResultsDeps are the engine pieces the results view needs.
type ResultsDeps struct {
	Geocoder   *geo.Geocoder
	Dispatcher *notify.Dispatcher
	Notify     config.NotifyConfig
	Log        *zap.Logger
}

// ResultsModel resolves the visitor address, ranks the catalog and lets the
// visitor browse and join groups.
type ResultsModel struct {
	deps   ResultsDeps
	query  model.VisitorQuery
	groups []model.Group

	resolving  bool
	resolveErr string
	origin     model.ResolvedLocation

	tab        tabID
	inPerson   []model.RankedGroup
	online     []model.Group
	filteredIn []model.RankedGroup
	filteredOn []model.Group

	table    table.Model
	filter   textinput.Model
	mapView  components.MapView
	focus    focusArea
	selected int
	width    int
	height   int

	join       joinState
	joinOK     bool
	joinDetail string
	joinLink   string
	exportMsg  string

	cardScrollY int
	cardLines   []string
}

type resolvedMsg struct {
	Loc model.ResolvedLocation
	Err error
}

type joinResultMsg struct {
	OK     bool
	Detail string
	Link   string
}

func NewResultsModel(query model.VisitorQuery, groups []model.Group, deps ResultsDeps) ResultsModel {
	filter := textinput.New()
	filter.Placeholder = "Type to filter..."
	filter.CharLimit = 50

	return ResultsModel{
		deps:      deps,
		query:     query,
		groups:    groups,
		resolving: true,
		filter:    filter,
		mapView:   components.NewMapView(40, 10),
		selected:  -1,
	}
}

func (m ResultsModel) Init() tea.Cmd {
	deps := m.deps
	address := m.query.Address
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		loc, err := deps.Geocoder.Resolve(ctx, address)
		return resolvedMsg{Loc: loc, Err: err}
	}
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case resolvedMsg:
		m.resolving = false
		if msg.Err != nil {
			m.resolveErr = "Endereço não encontrado — tente adicionar cidade ou CEP"
			m.deps.Log.Warn("visitor address not resolved", zap.String("address", m.query.Address))
			return m, nil
		}
		m.origin = msg.Loc
		m.inPerson, m.online = rank.FilterAndRank(m.groups, m.query.Filters, m.origin)
		m.filteredIn = m.inPerson
		m.filteredOn = m.online
		m.deps.Log.Info("search ranked",
			zap.String("origin", m.origin.Label),
			zap.Int("in_person", len(m.inPerson)),
			zap.Int("online", len(m.online)))
		m.rebuild()
		return m, nil

	case joinResultMsg:
		m.join = joinDone
		m.joinOK = msg.OK
		m.joinDetail = msg.Detail
		m.joinLink = msg.Link
		m.cacheCard()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		if m.resolveErr != "" {
			if key == "esc" || key == "enter" {
				return m, func() tea.Msg { return NavigateToHome{} }
			}
			return m, nil
		}
		if m.resolving {
			if key == "esc" {
				return m, func() tea.Msg { return NavigateToHome{} }
			}
			return m, nil
		}

		// A pending join confirmation swallows navigation keys.
		if m.join == joinConfirm {
			switch key {
			case "enter", "y":
				if g, ok := m.selectedGroup(); ok {
					m.join = joinSending
					return m, m.joinCmd(g)
				}
				m.join = joinIdle
			default:
				m.join = joinIdle
			}
			return m, nil
		}

		switch m.focus {
		case focusTable:
			switch key {
			case "esc", "q":
				return m, func() tea.Msg { return NavigateToHome{} }
			case "/", "tab":
				m.focus = focusFilter
				m.filter.Focus()
				return m, textinput.Blink
			case "t":
				m.switchTab()
				return m, nil
			case "1":
				m.focus = focusCard
				m.table.SetStyles(m.unfocusedTableStyles())
				return m, nil
			case "2":
				if m.tab == tabInPerson {
					m.focus = focusMap
					m.table.SetStyles(m.unfocusedTableStyles())
				}
				return m, nil
			case "enter":
				if _, ok := m.selectedGroup(); ok {
					m.join = joinConfirm
				}
				return m, nil
			case "e":
				m.exportCSV()
				return m, nil
			}

		case focusFilter:
			switch key {
			case "esc", "enter", "tab":
				m.focus = focusTable
				m.filter.Blur()
				return m, nil
			}

		case focusCard:
			maxScroll := len(m.cardLines) - m.panelHeight()
			if maxScroll < 0 {
				maxScroll = 0
			}
			switch key {
			case "esc":
				m.focus = focusTable
				m.table.SetStyles(m.focusedTableStyles())
				return m, nil
			case "up", "k":
				if m.cardScrollY > 0 {
					m.cardScrollY--
				}
				return m, nil
			case "down", "j":
				if m.cardScrollY < maxScroll {
					m.cardScrollY++
				}
				return m, nil
			}

		case focusMap:
			switch key {
			case "esc":
				m.focus = focusTable
				m.table.SetStyles(m.focusedTableStyles())
				return m, nil
			case "+", "=":
				m.mapView.ZoomIn()
				return m, nil
			case "-":
				m.mapView.ZoomOut()
				return m, nil
			case "0":
				m.mapView.ZoomReset()
				return m, nil
			case "up", "k":
				m.mapView.Pan(1, 0)
				return m, nil
			case "down", "j":
				m.mapView.Pan(-1, 0)
				return m, nil
			case "left", "h":
				m.mapView.Pan(0, -1)
				return m, nil
			case "right", "l":
				m.mapView.Pan(0, 1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusTable:
		m.table, cmd = m.table.Update(msg)
		cursor := m.table.Cursor()
		if cursor != m.selected && cursor < m.tabLen() {
			m.selected = cursor
			m.cardScrollY = 0
			m.join = joinIdle
			m.joinLink = ""
			m.cacheCard()
			m.mapView.SetSelected(cursor)
		}
	case focusFilter:
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
	}

	return m, cmd
}

func (m *ResultsModel) switchTab() {
	if m.tab == tabInPerson {
		m.tab = tabOnline
	} else {
		m.tab = tabInPerson
	}
	m.focus = focusTable
	m.join = joinIdle
	m.joinLink = ""
	m.applyFilter()
}

func (m ResultsModel) tabLen() int {
	if m.tab == tabInPerson {
		return len(m.filteredIn)
	}
	return len(m.filteredOn)
}

// selectedGroup returns the group under the cursor on the active tab.
func (m ResultsModel) selectedGroup() (model.Group, bool) {
	if m.selected < 0 {
		return model.Group{}, false
	}
	if m.tab == tabInPerson {
		if m.selected < len(m.filteredIn) {
			return m.filteredIn[m.selected].Group, true
		}
		return model.Group{}, false
	}
	if m.selected < len(m.filteredOn) {
		return m.filteredOn[m.selected], true
	}
	return model.Group{}, false
}

func (m ResultsModel) joinCmd(g model.Group) tea.Cmd {
	deps := m.deps
	query := m.query

	rec := model.SignupRequest{
		VisitorName:  query.Name,
		VisitorPhone: query.Phone,
		GroupName:    g.Name,
		LeaderName:   g.Leader,
		Mode:         g.Mode,
	}

	var link string
	if normalized, ok := phone.Normalize(g.LeaderPhone); ok {
		rec.LeaderPhone = deps.Notify.LeaderPhone(normalized)
		link = notify.Link(rec.LeaderPhone, query.Name, g.Name)
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		ok, detail := deps.Dispatcher.Dispatch(ctx, rec)
		return joinResultMsg{OK: ok, Detail: detail, Link: link}
	}
}

func (m *ResultsModel) rebuild() {
	m.buildTable()
	m.updateLayout()
	if m.tabLen() > 0 {
		m.selected = 0
	} else {
		m.selected = -1
	}
	m.cacheCard()

	points := make([]components.Point, len(m.filteredIn))
	for i, g := range m.filteredIn {
		points[i] = components.Point{Lat: g.Lat, Lng: g.Lng}
	}
	m.mapView.SetPoints(points)
	m.mapView.SetOrigin(components.Point{Lat: m.origin.Lat, Lng: m.origin.Lng})
	m.mapView.SetSelected(m.selected)
}

func (m *ResultsModel) buildTable() {
	nameW := 26
	dayW := 10
	timeW := 7
	leaderW := 18
	hoodW := 16
	distW := 8
	if m.width > 110 {
		extra := m.width - 110
		nameW += extra * 4 / 10
		leaderW += extra * 3 / 10
		hoodW += extra * 3 / 10
	}

	var columns []table.Column
	var rows []table.Row

	if m.tab == tabInPerson {
		columns = []table.Column{
			{Title: "Life", Width: nameW},
			{Title: "Dist", Width: distW},
			{Title: "Dia", Width: dayW},
			{Title: "Início", Width: timeW},
			{Title: "Líderes", Width: leaderW},
			{Title: "Bairro", Width: hoodW},
		}
		rows = make([]table.Row, len(m.filteredIn))
		for i, g := range m.filteredIn {
			rows[i] = table.Row{
				truncate(g.Name, nameW),
				fmt.Sprintf("%.1f km", g.DistanceKm),
				truncate(g.Weekday, dayW),
				g.StartTime,
				truncate(g.Leader, leaderW),
				truncate(g.Neighborhood, hoodW),
			}
		}
	} else {
		columns = []table.Column{
			{Title: "Life", Width: nameW + distW},
			{Title: "Dia", Width: dayW},
			{Title: "Início", Width: timeW},
			{Title: "Líderes", Width: leaderW},
			{Title: "Modo", Width: hoodW},
		}
		rows = make([]table.Row, len(m.filteredOn))
		for i, g := range m.filteredOn {
			rows[i] = table.Row{
				truncate(g.Name, nameW+distW),
				truncate(g.Weekday, dayW),
				g.StartTime,
				truncate(g.Leader, leaderW),
				truncate(g.Mode, hoodW),
			}
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(m.focusedTableStyles())
	m.table = t
}

func (m ResultsModel) focusedTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Secondary)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Bold(true)
	return s
}

func (m ResultsModel) unfocusedTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Muted)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(lipgloss.Color("#333333")).
		Bold(false)
	return s
}

func (m ResultsModel) panelHeight() int {
	h := m.height/2 - 6
	if h < 6 {
		h = 6
	}
	return h
}

func (m *ResultsModel) updateLayout() {
	if m.width <= 0 {
		return
	}
	tableH := m.height/2 - 4
	if tableH < 5 {
		tableH = 5
	}
	m.table.SetHeight(tableH)
	m.buildTable()

	mapW := m.width/2 - 6
	if mapW < 20 {
		mapW = 20
	}
	m.mapView.SetSize(mapW, m.panelHeight())
}

// normalize removes accents/diacritics and lowercases text for fuzzy matching.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	result, _, _ := transform.String(t, strings.ToLower(s))
	return result
}

func groupHaystack(g model.Group) string {
	return normalize(strings.Join([]string{
		g.Name, g.Category, g.Weekday, g.Leader, g.Neighborhood, g.Address,
	}, " "))
}

func (m *ResultsModel) applyFilter() {
	raw := strings.TrimSpace(m.filter.Value())
	if raw == "" {
		m.filteredIn = m.inPerson
		m.filteredOn = m.online
	} else {
		words := strings.Fields(normalize(raw))
		match := func(g model.Group) bool {
			haystack := groupHaystack(g)
			for _, w := range words {
				if !strings.Contains(haystack, w) {
					return false
				}
			}
			return true
		}

		m.filteredIn = nil
		for _, g := range m.inPerson {
			if match(g.Group) {
				m.filteredIn = append(m.filteredIn, g)
			}
		}
		m.filteredOn = nil
		for _, g := range m.online {
			if match(g) {
				m.filteredOn = append(m.filteredOn, g)
			}
		}
	}

	m.buildTable()
	if m.tabLen() > 0 {
		m.selected = 0
	} else {
		m.selected = -1
	}
	m.cacheCard()

	points := make([]components.Point, len(m.filteredIn))
	for i, g := range m.filteredIn {
		points[i] = components.Point{Lat: g.Lat, Lng: g.Lng}
	}
	m.mapView.SetPoints(points)
	m.mapView.SetSelected(m.selected)
}

func (m *ResultsModel) cacheCard() {
	g, ok := m.selectedGroup()
	if !ok {
		m.cardLines = nil
		return
	}

	var lines []string
	lines = append(lines, g.Name)
	lines = append(lines, g.Category+" · "+g.Mode)
	if m.tab == tabInPerson && m.selected < len(m.filteredIn) {
		lines = append(lines, fmt.Sprintf("%.1f km de você", m.filteredIn[m.selected].DistanceKm))
	}
	lines = append(lines, "")

	addRow := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%-10s %s", label, value))
		}
	}
	addRow("Dia:", g.Weekday)
	addRow("Início:", g.StartTime)
	addRow("Líderes:", g.Leader)
	addRow("Endereço:", g.Address)
	addRow("Bairro:", g.Neighborhood)

	if m.join == joinDone {
		lines = append(lines, "")
		if m.joinOK {
			lines = append(lines, "Pedido enviado! O líder vai te chamar no WhatsApp.")
		} else {
			lines = append(lines, "Falha no envio: "+m.joinDetail)
		}
		if m.joinLink != "" {
			lines = append(lines, "")
			lines = append(lines, "Fale direto com o líder:")
			lines = append(lines, m.joinLink)
		}
	}

	m.cardLines = lines
}

func (m ResultsModel) View() string {
	if m.resolving {
		content := styles.Title.Render("Buscando seu endereço...") + "\n\n" +
			styles.StatusBar.Render("esc cancel")
		return styles.Border.Render(content)
	}
	if m.resolveErr != "" {
		content := styles.ErrorText.Render(m.resolveErr) + "\n\n" +
			styles.StatusBar.Render("esc back")
		return styles.Border.Render(content)
	}

	var b strings.Builder

	if m.deps.Notify.TestMode {
		b.WriteString(styles.TestModeBanner.Render("MODO TESTE — notificações vão para o operador"))
		b.WriteString("\n")
	}

	b.WriteString(styles.Title.Render("Perto de: " + m.origin.Label))
	b.WriteString("\n")

	// Tabs
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	// Filter
	filterStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	if m.focus == focusFilter {
		filterStyle = lipgloss.NewStyle().Foreground(styles.Secondary)
	}
	b.WriteString(filterStyle.Render("Filter: "))
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	if m.tabLen() == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).
			Render("Nenhum grupo encontrado com esses filtros"))
		b.WriteString("\n\n")
		b.WriteString(styles.StatusBar.Render("t switch tab • / filter • esc back"))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderPanels())
	b.WriteString("\n")

	if m.exportMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Success).Render(m.exportMsg))
		b.WriteString("\n")
	}

	var statusText string
	switch {
	case m.join == joinConfirm:
		g, _ := m.selectedGroup()
		statusText = fmt.Sprintf("enviar pedido para %q? enter confirm • any key cancel", g.Name)
	case m.join == joinSending:
		statusText = "enviando pedido..."
	case m.focus == focusTable && m.tab == tabInPerson:
		statusText = "↑↓ navigate • enter join • t online tab • 1 details • 2 map • / filter • e export • esc back"
	case m.focus == focusTable:
		statusText = "↑↓ navigate • enter join • t in-person tab • 1 details • / filter • e export • esc back"
	case m.focus == focusFilter:
		statusText = "type to filter • esc back"
	case m.focus == focusCard:
		statusText = "↑↓ scroll • esc back to table"
	case m.focus == focusMap:
		statusText = "+/- zoom • arrows pan • 0 reset • esc back to table"
	}
	b.WriteString(styles.StatusBar.Render(statusText))

	return b.String()
}

func (m ResultsModel) renderTabs() string {
	active := lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted)

	inLabel := fmt.Sprintf("Presenciais (%d)", len(m.filteredIn))
	onLabel := fmt.Sprintf("Online (%d)", len(m.filteredOn))

	if m.tab == tabInPerson {
		return active.Render("[ "+inLabel+" ]") + "  " + inactive.Render(onLabel)
	}
	return inactive.Render(inLabel) + "  " + active.Render("[ "+onLabel+" ]")
}

func (m ResultsModel) renderPanels() string {
	detailW := m.width - 2
	if detailW < 40 {
		detailW = 40
	}
	panelH := m.panelHeight()

	cardOuterW := detailW / 2
	mapOuterW := detailW - cardOuterW - 1

	cardBorderColor := styles.Muted
	if m.focus == focusCard {
		cardBorderColor = styles.Secondary
	}
	cardInnerW := cardOuterW - 4
	if cardInnerW < 20 {
		cardInnerW = 20
	}
	cardBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cardBorderColor).
		Padding(0, 1).
		Width(cardOuterW - 2).
		Height(panelH).
		Render(m.viewCardPanel(cardInnerW, panelH))
	cardLabel := lipgloss.NewStyle().Bold(true).Foreground(cardBorderColor).Render("[1] Detalhes")
	cardBox = cardLabel + "\n" + cardBox

	if m.tab != tabInPerson {
		return cardBox
	}

	mapBorderColor := styles.Muted
	if m.focus == focusMap {
		mapBorderColor = styles.Secondary
	}
	mapBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mapBorderColor).
		Padding(0, 1).
		Width(mapOuterW - 2).
		Height(panelH).
		Render(m.mapView.View())
	mapLabel := lipgloss.NewStyle().Bold(true).Foreground(mapBorderColor).Render("[2] Mapa")
	mapBox = mapLabel + "\n" + mapBox

	return lipgloss.JoinHorizontal(lipgloss.Top, cardBox, " ", mapBox)
}

func (m ResultsModel) viewCardPanel(w, h int) string {
	if len(m.cardLines) == 0 {
		return lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).
			Render("Selecione um grupo\npara ver os detalhes")
	}

	lines := m.cardLines

	scrollY := m.cardScrollY
	if scrollY > len(lines)-h {
		scrollY = len(lines) - h
	}
	if scrollY < 0 {
		scrollY = 0
	}

	end := scrollY + h
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[scrollY:end]

	var sb strings.Builder
	label := lipgloss.NewStyle().Foreground(styles.Muted)
	valStyle := lipgloss.NewStyle().Foreground(styles.Text)

	for i, line := range visible {
		switch {
		case scrollY+i == 0:
			sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.Text).
				Render(truncate(line, w)))
		case strings.Contains(line, "km de você"):
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Warning).
				Render(truncate(line, w)))
		case strings.HasPrefix(line, "https://wa.me/"):
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Secondary).
				Render(truncate(line, w)))
		case strings.HasPrefix(line, "Pedido enviado"):
			sb.WriteString(lipgloss.NewStyle().Foreground(styles.Success).Bold(true).
				Render(truncate(line, w)))
		case strings.HasPrefix(line, "Falha no envio"):
			sb.WriteString(styles.ErrorText.Render(truncate(line, w)))
		default:
			sb.WriteString(valStyle.Render(truncate(line, w)))
		}
		if i < len(visible)-1 {
			sb.WriteString("\n")
		}
	}

	if scrollY > 0 {
		sb.WriteString("\n")
		sb.WriteString(label.Render("  ▲ more above"))
	}
	if end < len(lines) {
		sb.WriteString("\n")
		sb.WriteString(label.Render("  ▼ more below"))
	}

	return sb.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func (m *ResultsModel) exportCSV() {
	csvPath := fmt.Sprintf("lifefinder_%s.csv", time.Now().Format("20060102_150405"))

	f, err := os.Create(csvPath)
	if err != nil {
		m.exportMsg = fmt.Sprintf("Export error: %v", err)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{
		"name", "category", "weekday", "start_time", "mode",
		"leader", "neighborhood", "address", "distance_km",
	})

	count := 0
	for _, g := range m.filteredIn {
		w.Write([]string{
			g.Name, g.Category, g.Weekday, g.StartTime, g.Mode,
			g.Leader, g.Neighborhood, g.Address,
			fmt.Sprintf("%.2f", g.DistanceKm),
		})
		count++
	}
	for _, g := range m.filteredOn {
		w.Write([]string{
			g.Name, g.Category, g.Weekday, g.StartTime, g.Mode,
			g.Leader, g.Neighborhood, g.Address, "",
		})
		count++
	}

	m.exportMsg = fmt.Sprintf("Exported %d rows to %s", count, csvPath)
}
