package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/quadtree"
	"github.com/san-kum/gravsim/internal/space"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 45
	historyCapacity = 600
	maxStepsPerTick = 16
	tickInterval    = time.Second / 60
)

type TickMsg time.Time

// Builder returns a freshly seeded space. It is called once on start and
// again on every reset.
type Builder func() (*space.Space, error)

// Model is a bubbletea program that steps a space once per tick and draws it
// on a braille canvas.
type Model struct {
	build Builder
	space *space.Space
	title string
	dt    float64

	t            float64
	stepsPerTick int
	running      bool
	showTree     bool
	showLinks    bool
	showHelp     bool

	width, height int
	bodyLayer     *Canvas
	treeLayer     *Canvas
	theme         Theme

	kinetic   []float64
	stepTimes []float64
	lastTick  time.Time
	fps       float64
}

func NewModel(build Builder, dt float64, title string) (Model, error) {
	s, err := build()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		build:        build,
		space:        s,
		title:        title,
		dt:           dt,
		stepsPerTick: 1,
		running:      true,
		theme:        Themes[0],
		kinetic:      make([]float64, 0, historyCapacity),
		stepTimes:    make([]float64, 0, historyCapacity),
	}
	m.resize(defaultWidth+panelWidth, defaultHeight)
	m.draw()
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Space() *space.Space { return m.space }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if elapsed := now.Sub(m.lastTick).Seconds(); elapsed > 0 {
				m.fps = 0.9*m.fps + 0.1/elapsed
			}
		}
		m.lastTick = now
		if m.running {
			m.advance(m.stepsPerTick)
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running {
			m.advance(1)
		}
	case "r":
		if err := m.reset(); err != nil {
			return m, tea.Quit
		}
	case "o":
		m.showTree = !m.showTree
	case "l":
		m.showLinks = !m.showLinks
	case "t":
		m.theme = NextTheme(m.theme)
	case "+", "=":
		m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
	case "-", "_":
		m.stepsPerTick = max(m.stepsPerTick/2, 1)
	case "?":
		m.showHelp = !m.showHelp
	}
	m.draw()
	return m, nil
}

func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		start := time.Now()
		m.space.Update(m.dt)
		m.t += m.dt
		m.stepTimes = pushBounded(m.stepTimes, float64(time.Since(start).Microseconds())/1000)
	}
	m.kinetic = pushBounded(m.kinetic, metrics.Kinetic(m.space))
}

func (m *Model) reset() error {
	s, err := m.build()
	if err != nil {
		return err
	}
	m.space = s
	m.t = 0
	m.kinetic = m.kinetic[:0]
	m.stepTimes = m.stepTimes[:0]
	m.draw()
	return nil
}

func pushBounded(series []float64, v float64) []float64 {
	series = append(series, v)
	if len(series) > historyCapacity {
		series = series[1:]
	}
	return series
}

func (m *Model) resize(w, h int) {
	cw := max(w-panelWidth-4, 10)
	ch := max(h-2, 5)
	m.width, m.height = cw, ch
	m.bodyLayer = NewCanvas(cw, ch)
	m.treeLayer = NewCanvas(cw, ch)
}

// project maps world coordinates to canvas dots, preserving aspect ratio.
func (m *Model) project(p geom.Vector2) (int, int) {
	dw, dh := m.bodyLayer.Dots()
	vp := m.space.Viewport()
	scale := min(float64(dw)/vp.X, float64(dh)/vp.Y)
	return int(p.X * scale), int(p.Y * scale)
}

func (m *Model) draw() {
	m.bodyLayer.Clear()
	m.treeLayer.Clear()

	for _, b := range m.space.Bodies() {
		x, y := m.project(b.Position)
		m.bodyLayer.Set(x, y)
	}

	if !m.showTree && !m.showLinks {
		return
	}
	m.space.Tree().Walk(func(n *quadtree.Node) bool {
		if !n.IsLeaf() {
			return true
		}
		box := n.Boundary()
		if m.showTree {
			x0, y0 := m.project(box.Min())
			x1, y1 := m.project(box.Max())
			m.treeLayer.Rect(x0, y0, x1, y1)
		}
		if m.showLinks {
			cx, cy := m.project(box.Center)
			for _, b := range n.LeafBodies() {
				bx, by := m.project(b.Position)
				m.treeLayer.Line(bx, by, cx, cy)
			}
		}
		return true
	})
}

func (m Model) View() string {
	st := stylesFor(m.theme)

	var layer *Canvas
	if m.showTree || m.showLinks {
		layer = m.treeLayer
	}
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(composite(m.bodyLayer, layer, st))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.kinetic) > 1 {
		chart := asciigraph.Plot(m.kinetic, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	params := m.space.Params()
	stats := m.space.Tree().Stats()

	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Steps", fmt.Sprintf("%d (x%d/tick)", m.space.Steps(), m.stepsPerTick))
	row("Bodies", fmt.Sprintf("%d", len(m.space.Bodies())))
	row("Theta", fmt.Sprintf("%.2f", params.Theta))
	row("dt", fmt.Sprintf("%.4f", m.dt))
	row("Tree", fmt.Sprintf("%d nodes, height %d", stats.Nodes, stats.Height))
	row("FPS", fmt.Sprintf("%.1f", m.fps))
	if n := len(m.stepTimes); n > 0 {
		row("Step", fmt.Sprintf("%.2fms", m.stepTimes[n-1]))
		s.WriteString(st.label.Render("") + st.value.Render(Sparkline(m.stepTimes, 24)) + "\n")
	}
	if u := m.space.Unplaced(); u > 0 {
		s.WriteString(st.label.Render("Unplaced") + st.warn.Render(fmt.Sprintf("%d", u)) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause R:Reset Q:Quit\nO:Tree L:Links T:Theme ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))

	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space   pause or resume
  .       single step while paused
  R       reset to the initial bodies
  O       toggle quadtree cell outlines
  L       toggle body to leaf links
  + / -   double or halve steps per tick
  T       cycle colour theme
  ?       toggle this help
  Q       quit
`
