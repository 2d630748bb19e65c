package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
	"github.com/atomicstack/touch-widgets/internal/menu"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Close     key.Binding
	Choose    key.Binding
	Erase     key.Binding
	Pick      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Choose:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Erase:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "erase")),
		Pick:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "pick")),
	}
}

// pageHelp and menuHelp list the bindings shown in the status line.
func (k keyMap) pageHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

func (k keyMap) menuHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Choose, k.Close}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.Host.Key(keyMsg.String())
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return m.quit()
	}
	if m.quitting {
		return nil
	}
	if open := m.scene.OpenMenu(); open != nil {
		m.handleMenuKey(open, keyMsg)
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Prev):
		m.turnPage(-1)
	case key.Matches(keyMsg, m.keys.Next):
		m.turnPage(1)
	}
	return nil
}

// handleMenuKey searches the open menu as the user types. A digit typed
// before any search text picks that row directly.
func (m *Model) handleMenuKey(open *menu.Menu, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.query = ""
		m.scene.CloseMenu()
	case key.Matches(msg, m.keys.Choose):
		item := open.Find(m.query)
		if item < 0 {
			return
		}
		m.query = ""
		open.Choose(item)
	case key.Matches(msg, m.keys.Erase):
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case m.query == "" && key.Matches(msg, m.keys.Pick):
		open.Choose(int(msg.Runes[0] - '1'))
	case msg.Type == tea.KeySpace:
		if m.query != "" {
			m.query += " "
		}
	case msg.Type == tea.KeyRunes:
		m.query += string(msg.Runes)
	}
}

// turnPage steps the pager. It is ignored mid-touch so a key cannot pull the
// page out from under a finger.
func (m *Model) turnPage(step int) {
	if m.detector.Pressed() {
		return
	}
	if page := m.scene.Page(); page != wire.None {
		m.scene.GotoPage(page + step)
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	p := geom.Point{X: mouse.X, Y: mouse.Y}
	switch mouse.Action {
	case tea.MouseActionPress:
		if mouse.Button != tea.MouseButtonLeft {
			return nil
		}
		m.touch(gesture.Sample{Phase: gesture.PhaseDown, Pos: p})
	case tea.MouseActionMotion:
		m.touch(gesture.Sample{Phase: gesture.PhaseMove, Pos: p})
	case tea.MouseActionRelease:
		m.touch(gesture.Sample{Phase: gesture.PhaseUp, Pos: p})
	}
	return nil
}

func (m *Model) handleSampleMsg(msg tea.Msg) tea.Cmd {
	sample, ok := msg.(SampleMsg)
	if !ok {
		return nil
	}
	m.touch(sample.Sample)
	if m.feed != nil {
		return waitForSample(m.feed)
	}
	return nil
}

// touch feeds one sample to the detector. A touch must start on the screen;
// once it has, later samples are pulled back to the nearest edge cell.
func (m *Model) touch(s gesture.Sample) {
	if m.quitting {
		return
	}
	screen := geom.R(0, 0, m.canvas.Width(), m.canvas.Height())
	switch s.Phase {
	case gesture.PhaseDown:
		if !screen.Contains(s.Pos) {
			return
		}
	default:
		if !m.detector.Pressed() {
			return
		}
		s.Pos = clampTo(screen, s.Pos)
	}
	events.Host.Sample(s.Phase.String(), s.Pos.X, s.Pos.Y)
	m.detector.Feed(s)
}

func clampTo(r geom.Rect, p geom.Point) geom.Point {
	return geom.Point{
		X: min(max(p.X, r.X), r.Right()-1),
		Y: min(max(p.Y, r.Y), r.Bottom()-1),
	}
}
