package viz

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(38)

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	fastStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	slowStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	barrierStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barrierOpenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	gateOpenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	gateClosedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)
