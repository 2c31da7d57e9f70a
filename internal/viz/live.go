package viz

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fluxsim/internal/analysis"
	"github.com/san-kum/fluxsim/internal/config"
	"github.com/san-kum/fluxsim/internal/experiment"
	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/integrators"
	"github.com/san-kum/fluxsim/internal/metrics"
)

const (
	width           = 72
	height          = 22
	historyCapacity = 400
	maxStepsPerTick = 64
	gifName         = "fluxsim.gif"
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives one leapfrog integration and renders it to the terminal.
type Model struct {
	cfg           *config.Config
	registry      *experiment.Registry
	integ         *integrators.Leapfrog
	energy        *metrics.Energy
	width, height int
	canvas        *Canvas
	camera        *Camera
	running       bool
	stepsPerTick  int
	energyHistory []float64
	peakHistory   []float64
	err           error
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
}

// NewModel builds the integrator for cfg. The configuration is not
// modified.
func NewModel(cfg *config.Config) (Model, error) {
	m := Model{
		cfg:          cfg.Clone(),
		registry:     experiment.NewRegistry(),
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		camera:       NewCamera(),
		running:      true,
		stepsPerTick: 1,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	setup, err := m.registry.Build(m.cfg)
	if err != nil {
		return err
	}
	integ, err := integrators.NewLeapfrog(setup.Grid, setup.Params, setup.Terms, setup.Prev, setup.Curr)
	if err != nil {
		return err
	}
	m.energy = metrics.NewEnergy(setup.Grid, setup.Params)
	integ.AddMetric(m.energy)

	m.integ = integ
	m.err = nil
	m.energyHistory = m.energyHistory[:0]
	m.peakHistory = m.peakHistory[:0]
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the integration.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "+", "=":
			m.stepsPerTick = min(maxStepsPerTick, m.stepsPerTick*2)
		case "-", "_":
			m.stepsPerTick = max(1, m.stepsPerTick/2)
		case "t":
			NextTheme()
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "]":
			m.camera.ZoomIn()
		case "[":
			m.camera.ZoomOut()
		case "g":
			if m.recording {
				m.err = m.saveGIF(gifName)
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.finished() && m.err == nil {
			m.advance()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) finished() bool {
	return m.cfg.Steps > 0 && m.integ.Steps() >= m.cfg.Steps
}

// advance performs up to stepsPerTick steps and records diagnostics.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick && !m.finished(); i++ {
		if err := m.integ.Step(); err != nil {
			m.err = err
			m.running = false
			return
		}
	}

	m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
	m.peakHistory = appendCapped(m.peakHistory, m.integ.Current().MaxAbs())
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// draw renders the current snapshot according to the grid dimension.
func (m *Model) draw() {
	m.canvas.Clear()
	g, phi := m.integ.Grid(), m.integ.Current()

	switch g.Dim() {
	case 1:
		m.canvas.DrawProfile(phi, math.Max(1.5, 1.1*phi.MaxAbs()))
	case 2:
		m.drawPlane(g, phi)
	default:
		m.drawCloud(g, phi)
	}
}

func (m *Model) drawPlane(g *field.Grid, phi field.Field) {
	peak := phi.MaxAbs()
	if peak == 0 {
		return
	}
	nx, ny := g.Points(0), g.Points(1)
	m.canvas.Shade(func(u, v float64) float64 {
		i := min(nx-1, int(u*float64(nx)))
		j := min(ny-1, int((1-v)*float64(ny)))
		return math.Abs(phi[g.Index(i, j)]) / peak
	})
}

func (m *Model) drawCloud(g *field.Grid, phi field.Field) {
	DrawBox(m.canvas, m.camera)

	peak := phi.MaxAbs()
	if peak == 0 {
		return
	}
	x, y, z := g.Mesh(0), g.Mesh(1), g.Mesh(2)
	points := make([]Vec3, 0)
	for k, v := range phi {
		if math.Abs(v) >= 0.3*peak {
			points = append(points, Vec3{x[k], y[k], z[k]})
		}
	}
	DrawCloud(m.canvas, m.camera, points, g.Length()/2)
}

func (m *Model) status(st styleSet) string {
	var simErr *field.SimulationError
	switch {
	case errors.As(m.err, &simErr):
		return st.failed.Render(fmt.Sprintf("DIVERGED at step %d", simErr.Step))
	case m.err != nil:
		return st.failed.Render("ERROR: " + m.err.Error())
	case m.finished():
		return st.paused.Render("DONE")
	case !m.running:
		return st.paused.Render("PAUSED")
	case m.recording:
		return st.running.Render("RECORDING")
	}
	return st.running.Render("RUNNING")
}

// View renders the TUI interface.
func (m Model) View() string {
	st := styles()
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.cfg.Scenario)) + "\n")
	s.WriteString(m.status(st) + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	g := m.integ.Grid()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Grid", gridLabel(g))
	row("Step", fmt.Sprintf("%d / %d", m.integ.Steps(), m.cfg.Steps))
	row("Time", fmt.Sprintf("%.3f", m.integ.Time()))
	row("Speed", fmt.Sprintf("%d steps/tick", m.stepsPerTick))
	if n := len(m.peakHistory); n > 0 {
		row("Peak", fmt.Sprintf("%.4f", m.peakHistory[n-1]))
		row("", Sparkline(m.peakHistory, 24))
	}
	if n := len(m.energyHistory); n > 0 {
		row("Energy", fmt.Sprintf("%.4f", m.energyHistory[n-1]))
	}
	if g.Dim() == 1 {
		row("Odd defect", fmt.Sprintf("%.4f", analysis.OddDefect(g, m.integ.Current())))
	}
	if m.cfg.Steps > 0 {
		s.WriteString("\n" + ProgressBar(float64(m.integ.Steps())/float64(m.cfg.Steps), 30) + "\n")
	}

	s.WriteString(st.help.Render("\nSP:Pause R:Reset Q:Quit\n+/-:Speed T:Theme G:Record ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from t = 0       ║
║  Q        - Quit                     ║
║  + / -    - Double/halve speed       ║
║  x y z    - Rotate 3D view (shift:-) ║
║  [ / ]    - Zoom 3D view             ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func gridLabel(g *field.Grid) string {
	parts := make([]string, g.Dim())
	for axis := range parts {
		parts[axis] = fmt.Sprint(g.Points(axis))
	}
	return fmt.Sprintf("%s  L=%g", strings.Join(parts, "x"), g.Length())
}

// captureFrame rasterises the Braille canvas into a two-colour frame.
func (m *Model) captureFrame() {
	const dot = 4
	cw, ch := m.canvas.Dots()
	img := image.NewPaletted(image.Rect(0, 0, cw*dot, ch*dot), color.Palette{color.Black, color.White})
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			if !m.canvas.IsSet(x, y) {
				continue
			}
			for py := 0; py < dot-1; py++ {
				for px := 0; px < dot-1; px++ {
					img.SetColorIndex(x*dot+px, y*dot+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF(path string) error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// Run starts the live view for cfg in the alternate screen.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
