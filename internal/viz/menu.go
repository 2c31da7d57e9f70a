package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fluxsim/internal/config"
)

var scenarioInfo = map[string]string{
	"soliton1d":   "moving kink soliton",
	"matter2d":    "orbital matter packet",
	"gravity2d":   "rotating packet in a well",
	"wave3d":      "offset radial wave",
	"collapse3d":  "gaussian collapse",
	"shielding3d": "wave against a barrier slab",
	"atomic3d":    "3d orbital packet",
}

const (
	stateMenu = iota
	stateSim
)

type menu struct {
	state, cursor int
	scenarios     []string
	coarse        bool
	err           error
	live          Model
}

func newMenu() menu {
	return menu{
		state:     stateMenu,
		scenarios: config.ListScenarios(),
		coarse:    true,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "c":
		m.coarse = !m.coarse
	case "enter":
		return m.start()
	}
	return m, nil
}

func (m menu) preset() string {
	if m.coarse {
		return "coarse"
	}
	return "default"
}

func (m menu) start() (menu, tea.Cmd) {
	cfg := config.GetPreset(m.scenarios[m.cursor], m.preset())
	if cfg == nil {
		m.err = fmt.Errorf("no %s preset for %s", m.preset(), m.scenarios[m.cursor])
		return m, nil
	}
	live, err := NewModel(cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state, m.err = live, stateSim, nil
	return m, m.live.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	t := CurrentTheme
	h := lipgloss.NewStyle().Foreground(t.Header).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	sel := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.Accent)
	key := lipgloss.NewStyle().Foreground(t.Field).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("FLUXSIM") + "\n    " + sub.Render("nonlinear field integrator") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.scenarios {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", key.Render("▸"), sel.Render(fmt.Sprintf("%-12s", name)), desc.Render(scenarioInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", sub.Render(fmt.Sprintf("  %-12s", name)), sub.Render(scenarioInfo[name])))
		}
	}
	b.WriteString(fmt.Sprintf("\n    preset: %s\n", sel.Render(m.preset())))
	if m.err != nil {
		b.WriteString("    " + lipgloss.NewStyle().Foreground(t.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("c") + sub.Render(" coarse/default  ") + key.Render("enter") + sub.Render(" start  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunMenu opens the scenario picker in the alternate screen.
func RunMenu() error {
	_, err := tea.NewProgram(newMenu(), tea.WithAltScreen()).Run()
	return err
}
