package viz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/layout"
	"github.com/san-kum/tempograph/internal/playback"
	"github.com/san-kum/tempograph/internal/session"
)

const (
	defaultWidth  = 40
	defaultHeight = 16
	defaultTop    = 5
	chartWidth    = 30
)

type TickMsg time.Time

type Options struct {
	Title string
	// Width and Height size the canvas in terminal cells.
	Width, Height int
	Theme         string
	// NodeColor overrides the theme's graph colour when set.
	NodeColor string
	// Top is the number of heaviest visible nodes listed.
	Top int
}

// Model plays a session's graph through a playback controller.
type Model struct {
	sess *session.Session
	ctrl *playback.Controller
	opts Options

	theme     int
	canvas    *Canvas
	positions map[string]layout.Point
	timeline  []float64
	vis       filter.Visibility
	temporal  bool
	err       error
}

// NewModel builds a player for the graph currently committed to sess.
func NewModel(sess *session.Session, ctrl *playback.Controller, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Top <= 0 {
		opts.Top = defaultTop
	}

	m := Model{
		sess:   sess,
		ctrl:   ctrl,
		opts:   opts,
		theme:  themeIndex(opts.Theme),
		canvas: NewCanvas(opts.Width, opts.Height),
	}

	if g := sess.Graph(); g != nil {
		w, h := m.canvas.Dots()
		m.positions = layout.Circle(g.Nodes, float64(w-1), float64(h-1))
	}
	if r, ok := sess.Range(); ok {
		m.temporal = true
		m.timeline, _ = sess.Index().Timeline(r, chartWidth)
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.ctrl.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Stop()
			return m, tea.Quit
		case " ":
			_, m.err = m.ctrl.Toggle()
		case "left", "[":
			m.scrub(-1)
		case "right", "]":
			m.scrub(1)
		case "home":
			if r, ok := m.sess.Range(); ok {
				m.ctrl.Stop()
				m.seek(r.Min)
			}
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case TickMsg:
		if m.ctrl.State() == playback.Running {
			frame, err := m.ctrl.Advance()
			if err != nil {
				m.err = err
			} else {
				m.vis = frame.Visibility
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// scrub pauses playback and moves the cursor by dir steps.
func (m *Model) scrub(dir int) {
	if !m.temporal {
		return
	}
	m.ctrl.Stop()
	m.seek(m.sess.Cursor() + dir)
}

func (m *Model) seek(t int) {
	vis, err := m.sess.Seek(t)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.vis = vis
}

// refresh reads the visibility at the current cursor. A graph without a
// range shows everything.
func (m *Model) refresh() {
	vis, err := m.sess.Visibility()
	switch {
	case err == nil:
		m.vis = vis
	case errors.Is(err, session.ErrNotTemporal):
		m.vis = allVisible(m.sess.Graph())
	default:
		m.err = err
	}
}

func allVisible(g *graph.Graph) filter.Visibility {
	v := filter.Visibility{Nodes: make(map[string]bool, len(g.Nodes)), Edges: make([]bool, len(g.Edges))}
	for _, n := range g.Nodes {
		v.Nodes[n.ID] = true
	}
	for i := range v.Edges {
		v.Edges[i] = true
	}
	return v
}

func (m Model) currentTheme() Theme {
	t := Themes[m.theme]
	if m.opts.NodeColor != "" && m.theme == themeIndex(m.opts.Theme) {
		t.Graph = lipgloss.Color(m.opts.NodeColor)
	}
	return t
}

func (m Model) draw() {
	m.canvas.Clear()
	g := m.sess.Graph()
	if g == nil {
		return
	}

	for i, e := range g.Edges {
		if i >= len(m.vis.Edges) || !m.vis.Edges[i] || e.SelfLoop() {
			continue
		}
		m.canvas.Segment(m.positions[e.Source], m.positions[e.Target])
	}
	for _, n := range g.Nodes {
		p := m.positions[n.ID]
		if m.vis.Nodes[n.ID] {
			m.canvas.Disc(round(p.X), round(p.Y), 1)
		} else {
			m.canvas.Set(round(p.X), round(p.Y))
		}
	}
}

func (m Model) View() string {
	theme := m.currentTheme()
	m.draw()

	var s strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "tempograph"
	}
	s.WriteString(statusStyle(theme.Accent).Render(strings.ToUpper(title)) + "\n")

	r, temporal := m.sess.Range()
	switch {
	case !temporal:
		s.WriteString(statusStyle(theme.Muted).Render("STATIC") + "\n\n")
	case m.ctrl.State() == playback.Running:
		s.WriteString(statusStyle(theme.Running).Render("RUNNING") + "\n\n")
	default:
		s.WriteString(statusStyle(theme.Paused).Render("PAUSED") + "\n\n")
	}

	if temporal {
		cursor := m.sess.Cursor()
		s.WriteString(labelStyle.Render("Cursor") + fmt.Sprintf("%d", cursor) + "\n")
		s.WriteString(labelStyle.Render("Range") + fmt.Sprintf("%d..%d", r.Min, r.Max) + "\n")
		progress := 1.0
		if r.Max > r.Min {
			progress = float64(uint64(cursor)-uint64(r.Min)) / float64(uint64(r.Max)-uint64(r.Min))
		}
		s.WriteString(ProgressBar(progress, 24, theme.Accent) + "\n")
	}
	s.WriteString(labelStyle.Render("Nodes") + fmt.Sprintf("%d", m.vis.VisibleNodes()) + "\n")
	s.WriteString(labelStyle.Render("Edges") + fmt.Sprintf("%d", m.vis.VisibleEdges()) + "\n\n")

	if len(m.timeline) > 1 {
		chart := asciigraph.Plot(m.timeline, asciigraph.Height(4), asciigraph.Width(chartWidth), asciigraph.Caption("visible nodes"))
		s.WriteString(chart + "\n\n")
	}

	s.WriteString(Separator(30, theme.Muted) + "\n")
	for _, n := range m.heaviest() {
		s.WriteString(fmt.Sprintf("%-12s %g\n", truncate(n.ID, 12), n.Weight))
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Play/Pause ←/→:Step Home:Rewind\nT:Theme Q:Quit"))

	canvasView := panelStyle.Render(lipgloss.NewStyle().Foreground(theme.Graph).Render(m.canvas.String()))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// heaviest returns the visible nodes with the largest weights.
func (m Model) heaviest() []graph.Node {
	g := m.sess.Graph()
	if g == nil {
		return nil
	}
	nodes := make([]graph.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if m.vis.Nodes[n.ID] {
			nodes = append(nodes, n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Weight > nodes[j].Weight })
	if len(nodes) > m.opts.Top {
		nodes = nodes[:m.opts.Top]
	}
	return nodes
}

// Run starts the player on the terminal's alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
