package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/googly/internal/config"
	"github.com/san-kum/googly/internal/sim"
)

const (
	stateMenu = iota
	stateLive
)

// Menu picks a preset and then hands over to the live view.
type Menu struct {
	state   int
	cursor  int
	presets []string
	logger  *slog.Logger
	live    Model
	err     error
}

func NewMenu(logger *slog.Logger) Menu {
	return Menu{presets: config.ListPresets(), logger: logger}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m Menu) start() (Menu, tea.Cmd) {
	name := m.presets[m.cursor]
	cfg := config.GetPreset(name)
	s, err := sim.FromConfig(cfg, m.logger)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(s, name, cfg.Run.Dt)
	m.state = stateLive
	return m, m.live.Init()
}

// Live returns the live model once a preset has been chosen.
func (m Menu) Live() (Model, bool) {
	return m.live, m.state == stateLive
}

func describe(cfg *config.Config) string {
	return fmt.Sprintf("%s  g=%.2f  d=%.3f  r=%.2f",
		cfg.Host.Motion, cfg.Physics.Gravity, cfg.Physics.Damping, cfg.Rig.EyeRadius)
}

func (m Menu) View() string {
	if m.state == stateLive {
		return m.live.View()
	}

	head := lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	pick := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	accent := lipgloss.NewStyle().Foreground(CurrentTheme.Accent)

	var b strings.Builder
	b.WriteString("\n\n    " + head.Render("GOOGLY") + "\n    " + sub.Render("verlet googly eyes") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := describe(config.GetPreset(name))
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", pick.Render("▸"), pick.Render(fmt.Sprintf("%-10s", name)), accent.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", sub.Render(fmt.Sprintf("%-10s", name)), sub.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + head.Render("j/k") + sub.Render(" navigate  ") + head.Render("enter") + sub.Render(" select  ") + head.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunMenu starts the preset picker full screen.
func RunMenu(logger *slog.Logger) error {
	_, err := tea.NewProgram(NewMenu(logger), tea.WithAltScreen()).Run()
	return err
}
