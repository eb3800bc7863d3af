package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csgtools/csd-inspect/inspect"
	"github.com/csgtools/csd-inspect/registry"
	"github.com/csgtools/csd-inspect/simtarget"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	varStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectVar modelState = iota
	stateShowValue
)

type rootInfo struct {
	name    string
	summary string
}

type interactiveModel struct {
	world    *simtarget.World
	reg      *registry.Registry
	filter   textinput.Model
	roots    []rootInfo
	visible  []rootInfo
	selected int
	state    modelState
	err      error
	shown    string
	lines    []string
}

func newInteractiveModel() *interactiveModel {
	w := simtarget.NewWorld()
	reg := registry.New()
	reg.Register(demoImage, w.Syms)

	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.Prompt = "/ "
	ti.Width = 30
	ti.Focus()

	m := &interactiveModel{
		world:  w,
		reg:    reg,
		filter: ti,
		state:  stateSelectVar,
	}
	for _, name := range w.RootNames() {
		info := rootInfo{name: name}
		if v, ok := w.Root(name); ok {
			if r, err := reg.Inspect(demoImage, v); err == nil && r != nil {
				info.summary = r.Summary()
			}
		}
		m.roots = append(m.roots, info)
	}
	m.visible = m.roots
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.state == stateSelectVar && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.state == stateSelectVar && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateSelectVar && len(m.visible) > 0 {
				m.showVariable(m.visible[m.selected].name)
				m.state = stateShowValue
			}
			return m, nil

		case "esc":
			if m.state == stateShowValue {
				m.state = stateSelectVar
				m.err = nil
				return m, nil
			}
			return m, tea.Quit

		case "q":
			// Plain letters belong to the filter while selecting.
			if m.state == stateShowValue {
				m.state = stateSelectVar
				m.err = nil
				return m, nil
			}
		}
	}

	if m.state == stateSelectVar {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	var vis []rootInfo
	for _, r := range m.roots {
		if needle == "" || strings.Contains(strings.ToLower(r.name), needle) {
			vis = append(vis, r)
		}
	}
	m.visible = vis
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

// showVariable re-inspects the variable: sequences are one-shot, so each
// viewing is a fresh traversal.
func (m *interactiveModel) showVariable(name string) {
	m.shown = name
	m.lines = nil
	m.err = nil

	v, ok := m.world.Root(name)
	if !ok {
		m.err = fmt.Errorf("variable %q disappeared", name)
		return
	}
	r, err := m.reg.Inspect(demoImage, v)
	if err != nil {
		m.err = err
		return
	}
	if r == nil {
		m.lines = []string{"no inspection support for this type"}
		return
	}

	if r.Summary() != "" {
		m.lines = append(m.lines, summaryStyle.Render(r.Summary()))
	}
	indent := ""
	if r.Hint() == inspect.HintSequence {
		indent = "  "
	}
	seq := r.Children()
	for c, ok := seq.Next(); ok; c, ok = seq.Next() {
		m.lines = append(m.lines, indent+c.Label+" = "+valueStyle.Render(c.Value.Format()))
	}
	if err := seq.Err(); err != nil {
		m.err = err
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("CSG Inspector"))
	b.WriteString(" demo target\n\n")

	switch m.state {
	case stateSelectVar:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching variables"))
			b.WriteString("\n")
		}
		for i, r := range m.visible {
			line := varStyle.Render(r.name)
			if r.summary != "" {
				line += " = " + summaryStyle.Render(r.summary)
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> ") + line)
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter inspect • esc quit"))

	case stateShowValue:
		b.WriteString(varStyle.Render(m.shown))
		b.WriteString("\n\n")
		for _, line := range m.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • ctrl+c quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
