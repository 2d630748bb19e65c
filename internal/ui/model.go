package ui

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/gfx/term"
	"github.com/atomicstack/touch-widgets/internal/layout"
	"github.com/atomicstack/touch-widgets/internal/pager"
	"github.com/atomicstack/touch-widgets/internal/scene"
	"github.com/atomicstack/touch-widgets/internal/theme"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// historyRows is how many recent activities are listed under the status
	// line.
	historyRows = 3
	chromeRows  = 1 + historyRows
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Layout is shown as is. Nil shows the demo layout sized to the screen.
	Layout *layout.Layout
	// Width and Height fix the widget screen in cells. Zero follows the
	// terminal, less the rows taken by the status line and history.
	Width  int
	Height int
	// SwipeDistance overrides the pager's minimum swipe length in cells.
	SwipeDistance int
	// Feed delivers samples from outside the program.
	Feed *Feed
}

// Model implements the Bubble Tea model hosting the widget scene on a
// terminal canvas.
type Model struct {
	opts        Options
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	canvas   *term.Canvas
	detector *gesture.Detector
	scene    *scene.Scene
	feed     *Feed

	keys     keyMap
	query    string
	quitting bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the scene and shows its first page.
func NewModel(opts Options) *Model {
	m := &Model{
		opts:   opts,
		width:  defaultWidth,
		height: defaultHeight,
		feed:   opts.Feed,
		keys:   defaultKeyMap(),
		canvas: term.New(0, 0),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	m.rebuild()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return waitForSample(m.feed)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(SampleMsg{}):         m.handleSampleMsg,
		reflect.TypeOf(feedDoneMsg{}):       m.handleFeedDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if m.fixedWidth && m.fixedHeight {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.rebuild()
	return nil
}

func (m *Model) handleFeedDoneMsg(tea.Msg) tea.Cmd {
	m.feed = nil
	return nil
}

// screenSize is the widget screen in cells.
func (m *Model) screenSize() (int, int) {
	w, h := m.width, m.height
	if !m.fixedHeight {
		h -= chromeRows
	}
	return max(w, 1), max(h, 1)
}

func (m *Model) metrics() pager.Metrics {
	metrics := pager.CellMetrics()
	if m.opts.SwipeDistance > 0 {
		metrics.SwipeDistance = m.opts.SwipeDistance
	}
	return metrics
}

func (m *Model) layoutFor(w, h int) *layout.Layout {
	if m.opts.Layout != nil {
		return m.opts.Layout
	}
	return layout.Demo(w, h)
}

// rebuild tears the scene down and starts a fresh one sized to the screen,
// staying on the page that was showing.
func (m *Model) rebuild() {
	page := wire.None
	if m.scene != nil {
		page = m.scene.Page()
		m.scene.Stop()
	}
	m.query = ""

	w, h := m.screenSize()
	m.canvas.Resize(w, h)
	l := m.layoutFor(w, h)
	if page != wire.None && page < l.Pager.Pages {
		at := *l
		at.Pager.First = page
		l = &at
	}
	m.detector = gesture.NewDetector()
	m.scene = scene.New(l, m.detector, m.canvas, m.metrics())
	m.scene.Start()
}

func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		m.scene.Stop()
	}
	return tea.Quit
}

// Scene exposes the hosted scene.
func (m *Model) Scene() *scene.Scene { return m.scene }

// Detector exposes the gesture detector the scene is bound to.
func (m *Model) Detector() *gesture.Detector { return m.detector }

// Screen returns the widget screen as plain text.
func (m *Model) Screen() string { return m.canvas.Plain() }

// Query returns what has been typed into the open menu's search.
func (m *Model) Query() string { return m.query }

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool { return m.quitting }
