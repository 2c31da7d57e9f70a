package viz

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/fluxsim/internal/config"
	"github.com/san-kum/fluxsim/internal/field"
)

func smallPreset(t *testing.T, scenario string, n int) *config.Config {
	t.Helper()
	cfg := config.GetPreset(scenario, "coarse")
	if cfg == nil {
		t.Fatalf("no coarse preset for %s", scenario)
	}
	cfg.Resize(n)
	cfg.Steps = 5
	return cfg
}

func tickN(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func key(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStepsUntilDone(t *testing.T) {
	for _, tc := range []struct {
		scenario string
		n        int
	}{
		{"soliton1d", 64},
		{"matter2d", 16},
		{"wave3d", 8},
	} {
		m, err := NewModel(smallPreset(t, tc.scenario, tc.n))
		if err != nil {
			t.Fatalf("%s: %v", tc.scenario, err)
		}
		m = tickN(m, 10)

		if m.integ.Steps() != 5 {
			t.Errorf("%s: expected 5 steps, got %d", tc.scenario, m.integ.Steps())
		}
		view := m.View()
		if !strings.Contains(view, strings.ToUpper(tc.scenario)) {
			t.Errorf("%s: view missing scenario header", tc.scenario)
		}
		if !strings.Contains(view, "DONE") {
			t.Errorf("%s: expected DONE status", tc.scenario)
		}
	}
}

func TestModelPauseAndSpeed(t *testing.T) {
	cfg := smallPreset(t, "soliton1d", 64)
	cfg.Steps = 100
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatal(err)
	}

	m = key(m, " ")
	m = tickN(m, 3)
	if m.integ.Steps() != 0 {
		t.Errorf("expected no steps while paused, got %d", m.integ.Steps())
	}

	m = key(m, " ")
	m = key(m, "+")
	m = key(m, "+")
	m = tickN(m, 2)
	if m.integ.Steps() != 8 {
		t.Errorf("expected 8 steps at 4 per tick, got %d", m.integ.Steps())
	}

	m = key(m, "r")
	if m.integ.Steps() != 0 || len(m.energyHistory) != 0 {
		t.Error("expected reset to restart the run")
	}
}

func TestModelReportsDivergence(t *testing.T) {
	cfg := smallPreset(t, "soliton1d", 16)
	cfg.Length = 1
	cfg.Dt = 1
	cfg.Steps = 200
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.stepsPerTick = maxStepsPerTick
	m = tickN(m, 4)

	if !errors.Is(m.err, field.ErrNumericalDivergence) {
		t.Fatalf("expected divergence, got %v", m.err)
	}
	if !strings.Contains(m.View(), "DIVERGED") {
		t.Error("expected DIVERGED status")
	}
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	cfg := smallPreset(t, "gravity2d", 16)
	cfg.Points = []int{16}
	if _, err := NewModel(cfg); !errors.Is(err, field.ErrInvalidConfiguration) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}

func TestCanvasProfileAndShade(t *testing.T) {
	c := NewCanvas(10, 4)
	cw, ch := c.Dots()
	if cw != 20 || ch != 16 {
		t.Fatalf("expected 20x16 dots, got %dx%d", cw, ch)
	}

	ys := make([]float64, 50)
	for i := range ys {
		ys[i] = math.Sin(float64(i) / 5)
	}
	c.DrawProfile(ys, 1.5)
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBase }) {
		t.Error("expected dots after drawing a profile")
	}

	c.Clear()
	c.Shade(func(u, v float64) float64 { return 1 })
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if !c.IsSet(x, y) {
				t.Fatalf("dot (%d,%d) not set at full intensity", x, y)
			}
		}
	}

	c.Clear()
	c.Shade(func(u, v float64) float64 { return 0 })
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBase }) {
		t.Error("expected empty canvas at zero intensity")
	}
}

func TestCameraProjectsCentre(t *testing.T) {
	cam := NewCamera()
	x, y, ok := cam.Project(Vec3{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("expected origin at (50,40), got (%d,%d) visible=%v", x, y, ok)
	}
}

func TestSaveGIF(t *testing.T) {
	m, err := NewModel(smallPreset(t, "soliton1d", 32))
	if err != nil {
		t.Fatal(err)
	}
	m = tickN(m, 1)
	m.captureFrame()
	m.captureFrame()

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := m.saveGIF(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected gif written, got %v", err)
	}
}

func TestThemesCycle(t *testing.T) {
	start := CurrentTheme.Name
	for range Themes {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("expected to cycle back to %s, got %s", start, CurrentTheme.Name)
	}
	if GetTheme("nope").Name != ThemeSpectral.Name {
		t.Error("expected fallback theme")
	}
}

func TestMenuStartsLiveView(t *testing.T) {
	m := newMenu()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := next.(menu)

	if mm.state != stateSim {
		t.Fatalf("expected live view, err=%v", mm.err)
	}
	if mm.live.cfg.Scenario != mm.scenarios[1] {
		t.Errorf("expected %s, got %s", mm.scenarios[1], mm.live.cfg.Scenario)
	}
}
