package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/googly/internal/scene"
	"github.com/san-kum/googly/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 300
	frameRate       = 60

	// gifDelay is the recorded frame delay in hundredths of a second.
	gifDelay = 2
)

type TickMsg time.Time

// param is a tunable rig value shown in the stats panel.
type param struct {
	name   string
	step   float64
	lo, hi float64
	get    func() float64
	set    func(float64)
}

// Model is the bubbletea model of the live view. It steps the simulator
// once per tick and draws the rig as a braille wireframe.
type Model struct {
	sim       *sim.Simulator
	name      string
	dt        float64
	canvas    *Canvas
	camera    *Camera
	wire      *Wireframe
	edges     EdgeCache
	running   bool
	showHelp  bool
	params    []param
	initial   []float64
	selected  int
	nudgeStep float64
	trace     []float64
	speed     []float64
	recorder  *Recorder
	gifPath   string
	svgPath   string
	status    string
	err       error
}

// NewModel wraps s for interactive display. dt is the fixed step taken per
// frame.
func NewModel(s *sim.Simulator, name string, dt float64) Model {
	rig := s.Rig()
	opts := rig.Options()

	extent := opts.EyeSpacing/2 + opts.EyeRadius
	switch m := s.Motion().(type) {
	case sim.Shake:
		extent += m.Amplitude
	case sim.Orbit:
		extent += m.Amplitude
	}
	cam := NewCamera()
	cam.Fit(extent)

	params := []param{
		{name: "gravity", step: 0.1, lo: -5, hi: 5, get: rig.Gravity, set: rig.SetGravity},
		{name: "damping", step: 0.005, lo: 0, hi: 1, get: rig.Damping, set: rig.SetDamping},
	}
	initial := make([]float64, len(params))
	for i, p := range params {
		initial[i] = p.get()
	}

	return Model{
		sim:       s,
		name:      name,
		dt:        dt,
		canvas:    NewCanvas(width, height),
		camera:    cam,
		wire:      NewWireframe(),
		edges:     make(EdgeCache),
		running:   true,
		params:    params,
		initial:   initial,
		nudgeStep: opts.EyeRadius,
		trace:     make([]float64, 0, historyCapacity),
		speed:     make([]float64, 0, historyCapacity),
		gifPath:   "googly.gif",
		svgPath:   "googly.svg",
	}
}

// WithGIFPath sets where the g key saves recordings.
func (m Model) WithGIFPath(path string) Model {
	m.gifPath = path
	return m
}

// WithSVGPath sets where the s key saves snapshots.
func (m Model) WithSVGPath(path string) Model {
	m.svgPath = path
	return m
}

func (m Model) Running() bool             { return m.running }
func (m Model) Err() error                { return m.err }
func (m Model) Simulator() *sim.Simulator { return m.sim }

// Selected returns the name and value of the parameter under the cursor.
func (m Model) Selected() (string, float64) {
	p := m.params[m.selected]
	return p.name, p.get()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running {
			m.step()
		}
	case "r":
		m.reset()
	case "tab":
		m.selected = (m.selected + 1) % len(m.params)
	case "k":
		m.adjust(1)
	case "j":
		m.adjust(-1)
	case "up":
		m.sim.Nudge(mgl64.Vec3{0, m.nudgeStep, 0})
	case "down":
		m.sim.Nudge(mgl64.Vec3{0, -m.nudgeStep, 0})
	case "left":
		m.sim.Nudge(mgl64.Vec3{-m.nudgeStep, 0, 0})
	case "right":
		m.sim.Nudge(mgl64.Vec3{m.nudgeStep, 0, 0})
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
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	case "g":
		m.toggleRecording()
	case "s":
		m.snapshot()
	}
	return m, nil
}

func (m *Model) adjust(dir float64) {
	p := m.params[m.selected]
	v := p.get() + dir*p.step
	p.set(max(p.lo, min(p.hi, v)))
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(gifDelay)
		m.status = "recording"
		return
	}
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.status = "gif: " + err.Error()
	} else {
		m.status = "saved " + m.gifPath
	}
	m.recorder = nil
}

func (m *Model) snapshot() {
	m.draw()
	if err := WriteSVG(m.svgPath, CanvasSVG(m.canvas, 4, CurrentTheme)); err != nil {
		m.status = "svg: " + err.Error()
		return
	}
	m.status = "saved " + m.svgPath
}

func (m *Model) step() {
	sample, err := m.sim.Step(m.dt)
	if err == nil && !sample.IsValid() {
		err = sim.ErrUnstable
	}
	if err != nil {
		m.err = err
		m.running = false
		return
	}

	m.trace = pushHistory(m.trace, sample.Left[1])
	v := m.sim.Rig().Left().Physics.Velocity().Len() / m.dt
	m.speed = pushHistory(m.speed, v)
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset rewinds the simulator and restores the tuned parameters.
func (m *Model) reset() {
	m.sim.Reset()
	for i, p := range m.params {
		p.set(m.initial[i])
	}
	m.trace = m.trace[:0]
	m.speed = m.speed[:0]
	m.err = nil
	m.running = true
}

// draw renders socket wireframes and solid irises onto the canvas.
func (m *Model) draw() {
	rig := m.sim.Rig()
	m.canvas.Clear()
	m.wire.Clear()
	m.wire.AddScene(m.sim.Head(), m.edges, func(n *scene.Node) bool {
		mat := n.Material()
		return mat != nil && !mat.Transparent && mat != rig.IrisMaterial()
	})
	Render3D(m.canvas, m.wire, m.camera)

	cw, ch := m.canvas.PixelSize()
	r := int(rig.Options().IrisRadius * m.camera.PixelScale(cw, ch))
	for _, e := range []*scene.Node{rig.Left().Iris, rig.Right().Iris} {
		if x, y, _, ok := m.camera.Project(e.WorldPosition(), cw, ch); ok {
			m.canvas.FillCircle(x, y, r)
		}
	}
}

func (m Model) View() string {
	pal := newPalette(CurrentTheme)
	m.draw()

	var s strings.Builder
	title := GradientText("GOOGLY "+strings.ToUpper(m.name), CurrentTheme.Primary, CurrentTheme.Secondary)
	s.WriteString(pal.header.Render(title) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(pal.failed.Render("STOPPED: "+m.err.Error()) + "\n")
	case m.recorder != nil:
		s.WriteString(pal.recording.Render(fmt.Sprintf("REC %d", m.recorder.Len())) + "\n")
	case m.running:
		s.WriteString(pal.running.Render("RUNNING") + "\n")
	default:
		s.WriteString(pal.paused.Render("PAUSED") + "\n")
	}
	if m.status != "" {
		s.WriteString(pal.label.Render(m.status) + "\n")
	}

	if len(m.trace) > 1 {
		chart := asciigraph.Plot(m.trace, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("left iris y"))
		s.WriteString(pal.graph.Render(chart) + "\n")
	}

	sample := m.sim.Sample()
	s.WriteString(pal.label.Render("Time") + pal.value.Render(fmt.Sprintf("%.2fs", sample.Time)) + "\n")
	s.WriteString(pal.label.Render("Left") + pal.value.Render(fmtPlanar(sample.Left)) + "\n")
	s.WriteString(pal.label.Render("Right") + pal.value.Render(fmtPlanar(sample.Right)) + "\n")
	s.WriteString(pal.label.Render("Head") + pal.value.Render(fmt.Sprintf("%+.3f %+.3f %+.3f", sample.Head[0], sample.Head[1], sample.Head[2])) + "\n")
	s.WriteString(pal.label.Render("Speed") + pal.value.Render(Sparkline(m.speed, 24)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, p := range m.params {
		val := p.get()
		line := fmt.Sprintf("%-8s %s %.3f", p.name, Bar((val-p.lo)/(p.hi-p.lo), 10), val)
		if i == m.selected {
			s.WriteString(pal.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + pal.label.UnsetWidth().Render(line) + "\n")
		}
	}
	s.WriteString(pal.help.Render("SP:Pause R:Reset Q:Quit\nTab/J/K:Tune Arrows:Nudge\nT:Theme G:Record S:Snap ?:Help"))

	canvasView := pal.canvas.Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, pal.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func fmtPlanar(v mgl64.Vec3) string {
	return fmt.Sprintf("%+.4f %+.4f", v[0], v[1])
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single step when paused  ║
║  R        - Reset                    ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  K / J    - Raise / lower parameter  ║
║  Arrows   - Nudge the head           ║
║  x y z    - Orbit camera (shift: -)  ║
║  + / -    - Zoom                     ║
║  G        - Toggle GIF recording     ║
║  S        - Save SVG snapshot        ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive starts the live view full screen.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
