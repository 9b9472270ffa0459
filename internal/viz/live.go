// Package viz renders the running simulation in the terminal: the box with
// fast/slow particles, the barrier band flashing on gate openings, and the
// demon's ledger.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lruiz/demonsim/internal/demon"
	"github.com/lruiz/demonsim/internal/sim"
)

const (
	canvasWidth  = 72
	canvasHeight = 20

	energyHistoryCap = 600
)

type TickMsg time.Time

// Model drives the clock from bubbletea tick messages: a fixed number of
// simulation steps per frame, one Snapshot rendered per tick.
type Model struct {
	clock         *sim.Clock
	snap          sim.Snapshot
	canvas        *Canvas
	fps           int
	stepsPerFrame int
	running       bool
	energyHistory []float64
}

func NewModel(clock *sim.Clock, fps, stepsPerFrame int) Model {
	cfg := clock.Config()
	return Model{
		clock:         clock,
		canvas:        NewCanvas(canvasWidth, canvasHeight, cfg.Box.Lx, cfg.Box.Ly),
		fps:           fps,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		energyHistory: make([]float64, 0, energyHistoryCap),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.clock.Reset()
			m.snap = sim.Snapshot{}
			m.energyHistory = m.energyHistory[:0]
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.snap = m.clock.Step()
			}
			m.energyHistory = append(m.energyHistory, m.snap.Energy)
			if len(m.energyHistory) > energyHistoryCap {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	cfg := m.clock.Config()

	m.canvas.Clear()
	m.canvas.DrawBarrier(cfg.Barrier.Center, m.snap.GateOpen)
	for i, pos := range m.snap.Positions {
		m.canvas.DrawParticle(pos.X, pos.Y, m.snap.Classes[i] == demon.Fast)
	}

	left := canvasStyle.Render(m.canvas.Render())
	right := statsStyle.Render(m.statsView())

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return view + helpStyle.Render("\n  space pause · r reset · q quit")
}

func (m Model) statsView() string {
	cfg := m.clock.Config()

	gate := gateClosedStyle.Render("closed")
	if m.snap.GateOpen {
		gate = gateOpenStyle.Render("OPEN")
	}

	status := ""
	if !m.running {
		status = pausedStyle.Render(" · paused")
	}

	s := headerStyle.Render("maxwell's demon") + status + "\n"
	s += row("step", fmt.Sprintf("%d", m.snap.Step))
	s += row("time", fmt.Sprintf("%.2fs", m.snap.Time))
	s += row("gate", gate)
	s += row("bits", fmt.Sprintf("%d", m.snap.Bits))
	s += row("energy", fmt.Sprintf("%.3f kT", m.snap.Energy))
	s += row("chamber A", fmt.Sprintf("%d", m.snap.CountA))
	s += row("chamber B", fmt.Sprintf("%d", m.snap.CountB))
	s += row("threshold", fmt.Sprintf("%.2f", cfg.Threshold))
	s += row("policy", fmt.Sprintf("fast %s / slow %s", cfg.Policy.FastPass, cfg.Policy.SlowPass))

	if len(m.energyHistory) > 2 {
		s += "\n" + asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(28),
			asciigraph.Caption("energy cost (kT)"),
		)
	}
	return s
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
