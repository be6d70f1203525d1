package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pazsp/lifefinder/internal/engine/catalog"
	"github.com/pazsp/lifefinder/internal/model"
	"github.com/pazsp/lifefinder/internal/phone"
	"github.com/pazsp/lifefinder/internal/tui/styles"
)

// Field indices — the filter rows are virtual fields (not textinputs)
const (
	fieldName = iota
	fieldZap
	fieldAddress
	fieldCategories
	fieldWeekdays
	fieldModes
	fieldCount
)

// multiSelect is a horizontal row of toggleable options.
type multiSelect struct {
	label    string
	options  []string
	selected []bool
	cursor   int
}

func newMultiSelect(label string, options []string) multiSelect {
	selected := make([]bool, len(options))
	// Everything starts selected; the visitor narrows down from there.
	for i := range selected {
		selected[i] = true
	}
	return multiSelect{label: label, options: options, selected: selected}
}

func (ms *multiSelect) left() {
	if ms.cursor > 0 {
		ms.cursor--
	}
}

func (ms *multiSelect) right() {
	if ms.cursor < len(ms.options)-1 {
		ms.cursor++
	}
}

func (ms *multiSelect) toggle() {
	if ms.cursor < len(ms.selected) {
		ms.selected[ms.cursor] = !ms.selected[ms.cursor]
	}
}

func (ms *multiSelect) toggleAll() {
	all := true
	for _, s := range ms.selected {
		if !s {
			all = false
			break
		}
	}
	for i := range ms.selected {
		ms.selected[i] = !all
	}
}

func (ms multiSelect) values() []string {
	var out []string
	for i, opt := range ms.options {
		if ms.selected[i] {
			out = append(out, opt)
		}
	}
	return out
}

// FormModel collects the visitor's details and filter selections.
type FormModel struct {
	groups  []model.Group
	inputs  []textinput.Model
	filters [3]multiSelect // categories, weekdays, modes
	focused int
	err     string
}

func NewFormModel(snapshot *catalog.Snapshot) FormModel {
	inputs := make([]textinput.Model, 3)
	inputs[fieldName] = newInput("Seu nome", 40)
	inputs[fieldZap] = newInput("(11) 99999-9999", 20)
	inputs[fieldAddress] = newInput("Rua, número, bairro ou CEP", 60)
	inputs[fieldName].Focus()

	categories, weekdays, modes := catalog.Options(snapshot.Groups)

	return FormModel{
		groups: snapshot.Groups,
		inputs: inputs,
		filters: [3]multiSelect{
			newMultiSelect("Tipo:", categories),
			newMultiSelect("Dia:", weekdays),
			newMultiSelect("Modo:", modes),
		},
	}
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = width
	return ti
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()

		switch key {
		case "esc":
			return m, func() tea.Msg { return NavigateToHome{} }

		case "ctrl+r":
			return m, func() tea.Msg { return ReloadCatalogMsg{} }

		case "up", "shift+tab":
			m.err = ""
			return m, m.focusPrev()

		case "down", "tab":
			m.err = ""
			return m, m.focusNext()

		case "enter":
			if cmd := m.submit(); cmd != nil {
				return m, cmd
			}
			return m, nil

		case "left":
			if ms := m.focusedFilter(); ms != nil {
				ms.left()
				return m, nil
			}

		case "right":
			if ms := m.focusedFilter(); ms != nil {
				ms.right()
				return m, nil
			}

		case " ":
			if ms := m.focusedFilter(); ms != nil {
				ms.toggle()
				return m, nil
			}

		case "a":
			if ms := m.focusedFilter(); ms != nil {
				ms.toggleAll()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focused < len(m.inputs) {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}
	return m, cmd
}

// focusedFilter returns the focused multi-select row, or nil when a textinput
// has focus.
func (m *FormModel) focusedFilter() *multiSelect {
	if m.focused >= fieldCategories && m.focused <= fieldModes {
		return &m.filters[m.focused-fieldCategories]
	}
	return nil
}

func (m *FormModel) focusNext() tea.Cmd {
	if m.focused < len(m.inputs) {
		m.inputs[m.focused].Blur()
	}
	m.focused++
	if m.focused >= fieldCount {
		m.focused = fieldName
	}
	if m.focused < len(m.inputs) {
		m.inputs[m.focused].Focus()
		return textinput.Blink
	}
	return nil
}

func (m *FormModel) focusPrev() tea.Cmd {
	if m.focused < len(m.inputs) {
		m.inputs[m.focused].Blur()
	}
	m.focused--
	if m.focused < 0 {
		m.focused = fieldCount - 1
	}
	if m.focused < len(m.inputs) {
		m.inputs[m.focused].Focus()
		return textinput.Blink
	}
	return nil
}

func (m *FormModel) submit() tea.Cmd {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if name == "" {
		m.err = "Nome é obrigatório"
		return nil
	}

	rawZap := strings.TrimSpace(m.inputs[fieldZap].Value())
	normalized, ok := phone.Normalize(rawZap)
	if !ok {
		m.err = "WhatsApp inválido — informe DDD e número"
		return nil
	}

	address := strings.TrimSpace(m.inputs[fieldAddress].Value())
	if address == "" {
		m.err = "Endereço é obrigatório"
		return nil
	}

	filters := model.Filters{
		Categories: m.filters[0].values(),
		Weekdays:   m.filters[1].values(),
		Modes:      m.filters[2].values(),
	}
	if len(filters.Categories) == 0 || len(filters.Weekdays) == 0 || len(filters.Modes) == 0 {
		m.err = "Selecione ao menos uma opção em cada filtro"
		return nil
	}

	groups := m.groups
	return func() tea.Msg {
		return SubmitSearchMsg{
			Query: model.VisitorQuery{
				Name:    name,
				Phone:   normalized,
				Address: address,
				Filters: filters,
			},
			Groups: groups,
		}
	}
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Search") + "\n\n")

	b.WriteString(m.renderField("Nome:", fieldName))
	b.WriteString(m.renderField("WhatsApp:", fieldZap))
	b.WriteString(m.renderField("Endereço:", fieldAddress))
	b.WriteString("\n")

	for i, ms := range m.filters {
		b.WriteString(m.renderFilter(ms, m.focused == fieldCategories+i))
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render("  " + m.err))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.StatusBar.Render("enter search • tab next • space toggle • a all • ctrl+r reload catalog • esc back"))

	return styles.Border.Render(b.String())
}

func (m FormModel) renderField(label string, idx int) string {
	l := styles.Label.Render(label)
	v := m.inputs[idx].View()
	return fmt.Sprintf("%s %s\n", l, v)
}

func (m FormModel) renderFilter(ms multiSelect, focused bool) string {
	label := styles.Label.Render(ms.label)

	checkedStyle := lipgloss.NewStyle().Foreground(styles.Success)
	uncheckedStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	cursorStyle := lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).Underline(true)

	if len(ms.options) == 0 {
		return label + " " + uncheckedStyle.Render("(nenhuma opção no catálogo)") + "\n"
	}

	var parts []string
	for i, opt := range ms.options {
		mark := "☐ "
		style := uncheckedStyle
		if ms.selected[i] {
			mark = "☑ "
			style = checkedStyle
		}
		if focused && i == ms.cursor {
			style = cursorStyle
		}
		parts = append(parts, style.Render(mark+opt))
	}

	line := label + " " + strings.Join(parts, "  ")
	if focused {
		line += lipgloss.NewStyle().Foreground(styles.Secondary).Render(" ←→")
	}
	return line + "\n"
}

// SubmitSearchMsg starts address resolution and ranking.
type SubmitSearchMsg struct {
	Query  model.VisitorQuery
	Groups []model.Group
}

// ReloadCatalogMsg forces a catalog reload, bypassing the TTL window.
type ReloadCatalogMsg struct{}
