package kiosk

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"backend-turnero/internal/models"
	"backend-turnero/internal/realtime"
)

var (
	colorWaiting  = lipgloss.Color("#FFD700")
	colorBoarding = lipgloss.Color("#0066ff")
	colorReserved = lipgloss.Color("#FF8C42")
	colorMuted    = lipgloss.Color("#6C757D")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWaiting).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBoarding).
			Padding(0, 2).
			MarginBottom(1)

	numberStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(4)

	nameStyle = lipgloss.NewStyle().Width(28)

	boardingRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorBoarding)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

func statusStyle(s models.VesselStatus) lipgloss.Style {
	switch s {
	case models.StatusBoarding:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoarding)
	case models.StatusReserved:
		return lipgloss.NewStyle().Foreground(colorReserved)
	}
	return lipgloss.NewStyle().Foreground(colorWaiting)
}

// BoardMsg - A board_update received from the server.
type BoardMsg realtime.BoardMessage

// ConnMsg - Connection state change; nil Err means connected.
type ConnMsg struct{ Err error }

type Model struct {
	view      View
	connected bool
	lastErr   error
	updatedAt string
	width     int
	height    int
}

func NewModel() Model {
	return Model{view: View{Empty: true}}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case BoardMsg:
		m.view = BuildView(msg.Data)
		m.updatedAt = msg.Timestamp

	case ConnMsg:
		m.connected = msg.Err == nil
		m.lastErr = msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TURNERO DE EMBARCACIONES"))
	b.WriteString("\n")

	boarding := m.view.Boarding
	if boarding == "" {
		boarding = "-"
	}
	next := m.view.Next
	if next == "" {
		next = "-"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("EMBARCANDO: %s\nSiguiente en Turno: %s", boarding, next)))
	b.WriteString("\n")

	if m.view.Empty {
		b.WriteString(mutedStyle.Render("No hay embarcaciones registradas"))
		b.WriteString("\n")
	}

	for _, r := range m.view.Rows {
		line := numberStyle.Render(r.Number) + nameStyle.Render(r.Name) + statusStyle(r.Status).Render(string(r.Status))
		if r.Next {
			line += mutedStyle.Render("  << siguiente")
		}
		if r.Boarding {
			line = boardingRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.connected:
		b.WriteString(mutedStyle.Render("conectado · " + m.updatedAt))
	case m.lastErr != nil:
		b.WriteString(mutedStyle.Render("reconectando: " + m.lastErr.Error()))
	default:
		b.WriteString(mutedStyle.Render("conectando..."))
	}
	if m.view.Anomalies > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" · %d anomalías", m.view.Anomalies)))
	}
	b.WriteString("\n")
	return b.String()
}
