package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planar/internal/phys"
	"github.com/san-kum/planar/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	asleepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
	settledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
)

type TickMsg time.Time

// Model is the interactive terminal view of a running scene. The rebuild
// callback recreates the runner from scratch for the reset key.
type Model struct {
	runner  *sim.Runner
	rebuild func() (*sim.Runner, error)
	cfg     sim.Config

	scene  string
	floorY float64
	scale  float64 // sub-pixels per world unit

	canvas        *Canvas
	energyHistory []float64
	t             float64
	running       bool
	stepErr       error
}

func NewModel(runner *sim.Runner, rebuild func() (*sim.Runner, error), cfg sim.Config, scene string, floorY float64) Model {
	return Model{
		runner:        runner,
		rebuild:       rebuild,
		cfg:           cfg,
		scene:         scene,
		floorY:        floorY,
		scale:         4,
		canvas:        NewCanvas(width, height),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.reset()
		case "s":
			m.sleepAll()
		case "w":
			m.wakeAll()
		case "+", "=":
			m.scale *= 1.25
		case "-", "_":
			m.scale /= 1.25
		}
	case TickMsg:
		if m.running && m.stepErr == nil {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.runner.StepOnce(m.cfg); err != nil {
		m.stepErr = err
		m.running = false
		return
	}
	m.t += m.cfg.Dt

	m.energyHistory = append(m.energyHistory, sim.TotalEnergy(m.runner.Space()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	runner, err := m.rebuild()
	if err != nil {
		m.stepErr = err
		m.running = false
		return
	}
	m.runner = runner
	m.t = 0
	m.energyHistory = m.energyHistory[:0]
	m.stepErr = nil
	m.running = true
}

func (m *Model) sleepAll() {
	m.runner.Space().EachActiveBody(func(b *phys.Body) {
		// The integration set never contains static bodies, so Sleep
		// cannot fail here.
		_ = b.Sleep()
	})
}

func (m *Model) wakeAll() {
	m.runner.Space().EachBody(func(b *phys.Body) {
		b.Activate()
	})
}

// project maps a world point to sub-pixel coordinates: x centered, y up,
// with the floor sitting a few rows above the bottom edge.
func (m *Model) project(wx, wy float64) (int, int) {
	cw, ch := width*2, height*4
	sx := cw/2 + int(wx*m.scale)
	sy := ch - 8 - int((wy-m.floorY)*m.scale)
	return sx, sy
}

func (m *Model) draw() {
	m.canvas.Clear()
	cw := width * 2

	_, fy := m.project(0, m.floorY)
	m.canvas.DrawLine(0, fy, cw-1, fy)

	s := m.runner.Space()
	s.EachBody(func(b *phys.Body) {
		for _, sh := range b.Shapes() {
			c := sh.WorldCenter()
			sx, sy := m.project(c.X, c.Y)
			r := int(sh.Radius * m.scale)
			if b.IsSleeping() {
				m.canvas.Mark(sx, sy, 'z')
				continue
			}
			m.canvas.DrawCircle(sx, sy, r)
			// rotation tick so spin is visible
			rot := b.Rotation()
			m.canvas.DrawLine(sx, sy, sx+int(rot.X*float64(r)), sy-int(rot.Y*float64(r)))
		}
		if len(b.Shapes()) == 0 {
			sx, sy := m.project(b.Position().X, b.Position().Y)
			if b.IsSleeping() {
				m.canvas.Mark(sx, sy, 'z')
			} else {
				m.canvas.Set(sx, sy)
			}
		}
	})
}

func (m Model) View() string {
	s := m.runner.Space()

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(strings.ToUpper(m.scene)) + "\n")

	status := "RUNNING"
	switch {
	case m.stepErr != nil:
		status = "ERROR: " + m.stepErr.Error()
	case !m.running:
		status = "PAUSED"
	case s.ActiveCount() == 0:
		status = settledStyle.Render("SETTLED")
	}
	sb.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		sb.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}

	sb.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	sb.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", energy)) + "\n")
	sb.WriteString(labelStyle.Render("Awake") + valueStyle.Render(fmt.Sprintf("%d", s.ActiveCount())) + "\n")
	sb.WriteString(labelStyle.Render("Sleeping") + asleepStyle.Render(fmt.Sprintf("%d", s.SleepingCount())) + "\n")
	sb.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", s.ArbiterCount())) + "\n")

	sb.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nS:Sleep-all W:Wake-all +/-:Zoom"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(sb.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
