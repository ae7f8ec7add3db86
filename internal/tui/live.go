// Package tui previews the walk in the terminal: one character per grid
// cell, ticking at the configured cadence.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/BjarneSeger/walk-bg/internal/config"
	"github.com/BjarneSeger/walk-bg/internal/walk"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// historyLen bounds the coverage sparkline window.
const historyLen = 120

type TickMsg time.Time

// Model is the Bubble Tea model for the live preview.
type Model struct {
	cfg      *config.Config
	themeIdx int

	grid    *walk.Grid
	stepper *walk.Stepper
	pos     walk.Point
	stats   walk.Stats

	interval time.Duration
	running  bool
	ready    bool
	coverage []float64

	dotStyle    lipgloss.Style
	activeStyle lipgloss.Style
}

// NewModel builds the preview off the loaded config. fps caps the tick rate
// when the configured cadence is faster than the terminal should redraw.
func NewModel(cfg *config.Config, fps int, seed int64) Model {
	interval := cfg.WalkInterval()
	if fps > 0 {
		if floor := time.Second / time.Duration(fps); interval < floor {
			interval = floor
		}
	}
	m := Model{
		cfg:      cfg,
		grid:     walk.NewGrid(1, 1),
		stepper:  walk.NewStepper(seed),
		interval: interval,
		running:  true,
	}
	m.themeIdx = m.matchTheme()
	m.restyle()
	return m
}

// matchTheme finds the builtin theme the config colors correspond to, so
// cycling starts from the active look.
func (m *Model) matchTheme() int {
	for i, t := range config.Themes {
		if t.Bg == m.cfg.BgColor && t.Fg == m.cfg.FgColor && t.Active == m.cfg.ActiveColor {
			return i
		}
	}
	return 0
}

func (m *Model) restyle() {
	t := config.Themes[m.themeIdx]
	m.dotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(config.HexRGB(t.Fg)))
	m.activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(config.HexRGB(t.Active)))
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// one cell per two columns, leaving room for the header and stats
		m.grid.Resize((msg.Width-4)/2, msg.Height-10)
		m.pos = m.grid.Center()
		m.stats.Reset()
		m.coverage = nil
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(config.Themes)
			m.restyle()
		}
		return m, nil

	case TickMsg:
		if m.running && m.ready {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	x, y := m.stepper.Step(m.pos.X, m.pos.Y, m.grid.Width(), m.grid.Height())
	m.pos = walk.Point{X: x, Y: y}
	m.stats.Record(m.grid, x, y)
	m.grid.Visit(x, y)
	m.coverage = append(m.coverage, 100*walk.Coverage(m.grid))
	if len(m.coverage) > historyLen {
		m.coverage = m.coverage[len(m.coverage)-historyLen:]
	}
}

func (m *Model) reset() {
	m.grid.Resize(m.grid.Width(), m.grid.Height())
	m.pos = m.grid.Center()
	m.stats.Reset()
	m.coverage = nil
}

// cellRune buckets a visit count into the display ramp.
func cellRune(visits uint8) string {
	switch {
	case visits == 0:
		return "·"
	case visits < 4:
		return "░"
	case visits < 7:
		return "▒"
	case visits < 10:
		return "▓"
	default:
		return "█"
	}
}

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder

	title := "walk-bg preview"
	if !m.running {
		title += "  " + pausedStyle.Render("[paused]")
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	for y := 0; y < m.grid.Height(); y++ {
		b.WriteString("  ")
		for x := 0; x < m.grid.Width(); x++ {
			cell := cellRune(m.grid.Visits(x, y))
			style := m.dotStyle
			if m.cfg.HighlightActive && x == m.pos.X && y == m.pos.Y {
				cell = "█"
				style = m.activeStyle
			}
			b.WriteString(style.Render(cell))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if len(m.coverage) > 1 {
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(m.coverage,
			asciigraph.Height(3),
			asciigraph.Width(m.grid.Width()*2),
			asciigraph.Caption("coverage %")))
		b.WriteString("\n")
	}

	theme := config.Themes[m.themeIdx]
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"steps %d  revisits %d  coverage %.1f%%  theme %s  tick %s",
		m.stats.Steps, m.stats.Revisits, 100*walk.Coverage(m.grid), theme.Name, m.interval)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · r reset · t theme · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive preview and blocks until it exits.
func Run(cfg *config.Config, fps int, seed int64) error {
	p := tea.NewProgram(NewModel(cfg, fps, seed))
	_, err := p.Run()
	return err
}
