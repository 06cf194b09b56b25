package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heartswarm/internal/control"
	"github.com/san-kum/heartswarm/internal/metrics"
	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/sim"
)

const (
	panelWidth      = 36
	historyCapacity = 120
	litThreshold    = 24

	// Logical box the heart must fit in, whatever the terminal size.
	fitWidth  = 420
	fitHeight = 380
)

type TickMsg time.Time

// Model hosts a loop in the terminal: ticks fire the loop's pending frame and
// the raster is shown as colored braille.
type Model struct {
	loop     *sim.Loop
	sched    *sim.FrameScheduler
	panel    *control.Panel
	raster   *render.Raster
	canvas   *Canvas
	series   *metrics.Series
	history  []float64
	interval time.Duration

	termW, termH int
	cols, rows   int
}

// NewModel wraps a started loop painting onto raster.
func NewModel(loop *sim.Loop, sched *sim.FrameScheduler, raster *render.Raster, panel *control.Panel, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	series := metrics.NewSeries()
	loop.AddObserver(series)
	return Model{
		loop:     loop,
		sched:    sched,
		panel:    panel,
		raster:   raster,
		canvas:   NewCanvas(1, 1),
		series:   series,
		history:  make([]float64, 0, historyCapacity),
		interval: time.Second / time.Duration(fps),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.layout()
	case tea.MouseMsg:
		m.pointer(msg.X, msg.Y)
	case tea.BlurMsg:
		m.loop.PointerLeave()
	case tea.KeyMsg:
		a := control.ActionForKey(msg.String())
		if m.panel.Handle(a) {
			m.loop.Stop()
			return m, tea.Quit
		}
		if a == control.TogglePanel {
			m.layout()
		}
	case TickMsg:
		if !m.panel.Paused {
			m.sched.Fire()
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

// layout sizes the raster to the canvas area and tells the loop the new
// logical canvas size.
func (m *Model) layout() {
	cols := m.termW
	if m.panel.ShowPanel {
		cols -= panelWidth
	}
	m.cols = max(cols, 8)
	m.rows = max(m.termH-1, 4)

	pw, ph := m.cols*2, m.rows*4
	scale := render.FitScale(pw, ph, fitWidth, fitHeight)
	m.raster.Resize(pw, ph, scale)
	m.canvas = NewCanvas(m.cols, m.rows)
	m.loop.Resize(float64(pw)/scale, float64(ph)/scale)
}

// pointer maps a terminal cell to logical coordinates. Cells outside the
// canvas count as the pointer leaving.
func (m *Model) pointer(x, y int) {
	if x < 0 || y < 0 || x >= m.cols || y >= m.rows {
		m.loop.PointerLeave()
		return
	}
	s := m.raster.Scale()
	m.loop.SetPointer((float64(x)+0.5)*2/s, (float64(y)+0.5)*4/s)
}

func (m *Model) record() {
	samples := m.series.Samples()
	if len(samples) == 0 {
		return
	}
	m.history = append(m.history, samples[len(samples)-1].LeaderSpeed)
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	m.series.Reset()
}

// View renders the TUI interface.
func (m Model) View() string {
	m.canvas.FromImage(m.raster.Image(), litThreshold)
	view := m.canvas.Render()
	if !m.panel.ShowPanel {
		return view
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, view, m.viewPanel())
}

func (m Model) viewPanel() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("HEARTSWARM") + "\n")
	for _, line := range m.panel.Lines() {
		s.WriteString(lineStyle.Render(line) + "\n")
	}
	if m.panel.Paused {
		s.WriteString(pausedStyle.Render("PAUSED") + "\n")
	}
	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(panelWidth-12),
			asciigraph.Caption("leader speed"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}
	st := m.loop.Stats()
	s.WriteString(helpStyle.Render(frameLine(st)))
	return panelStyle.Render(s.String())
}

func frameLine(st sim.Stats) string {
	return fmt.Sprintf("frame %d  skipped %d  faulted %d", st.Frames, st.Skipped, st.Faulted)
}

// Run starts the program with mouse motion and focus reporting, which feed
// the pointer hooks.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
