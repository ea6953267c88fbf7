package ui

import (
	"image"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inkshell/internal/input"
	"github.com/atomicstack/inkshell/internal/platform"
)

// screenTop is the terminal row the screen preview starts on.
const screenTop = 1

type keyMap struct {
	Quit      key.Binding
	Escape    key.Binding
	Return    key.Binding
	Backward  key.Binding
	Forward   key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Combine   key.Binding
	Alternate key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "close")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		Return:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "return")),
		Backward:  key.NewBinding(key.WithKeys("left", "up"), key.WithHelp("←/↑", "back")),
		Forward:   key.NewBinding(key.WithKeys("right", "down"), key.WithHelp("→/↓", "forward")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "delete")),
		Delete:    key.NewBinding(key.WithKeys("delete")),
		Combine:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "menu")),
		Alternate: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "frontlight")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Backward, k.Forward, k.Return, k.Backspace, k.Combine, k.Alternate, k.Escape, k.Quit}
}

// keycode translates a terminal key into the raw keycode a device keyboard
// would report.
func (k keyMap) keycode(msg tea.KeyMsg) (input.Keycode, bool) {
	switch {
	case key.Matches(msg, k.Escape):
		return input.KeyEscape, true
	case key.Matches(msg, k.Return):
		return input.KeyReturn, true
	case key.Matches(msg, k.Backward):
		return input.KeyLeft, true
	case key.Matches(msg, k.Forward):
		return input.KeyRight, true
	case key.Matches(msg, k.Backspace):
		return input.KeyBackspace, true
	case key.Matches(msg, k.Delete):
		return input.KeyDelete, true
	case key.Matches(msg, k.Combine):
		return input.KeyLeftAlt, true
	case key.Matches(msg, k.Alternate):
		return input.KeyRightAlt, true
	}
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return "", false
	}
	return input.Keycode(string(msg.Runes)), true
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	if key.Matches(keyMsg, m.keys.Quit) {
		m.push(platform.Event{Kind: platform.Quit})
		m.quitting = true
		return tea.Quit
	}
	code, ok := m.keys.keycode(keyMsg)
	if !ok {
		return nil
	}
	m.push(platform.Key(code))
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	switch mouse.Action {
	case tea.MouseActionPress:
		if mouse.Button != tea.MouseButtonLeft {
			return nil
		}
		pt, ok := m.toDevice(mouse.X, mouse.Y)
		if !ok {
			return nil
		}
		m.pressed = true
		m.finger(input.FingerDown, pt)
	case tea.MouseActionMotion:
		if !m.pressed {
			return nil
		}
		m.finger(input.FingerMotion, m.clampToDevice(mouse.X, mouse.Y))
	case tea.MouseActionRelease:
		if !m.pressed {
			return nil
		}
		m.pressed = false
		m.finger(input.FingerUp, m.clampToDevice(mouse.X, mouse.Y))
	}
	return nil
}

func (m *Model) finger(status input.FingerStatus, pt image.Point) {
	m.push(platform.Finger(input.DeviceEvent{
		ID:       0,
		Status:   status,
		Position: pt,
		Time:     m.now().Sub(m.start).Seconds(),
	}))
}

// toDevice maps a terminal cell over the screen preview to the device
// pixel at its centre.
func (m *Model) toDevice(x, y int) (image.Point, bool) {
	cx, cy := x, y-screenTop
	if cx < 0 || cy < 0 || cx >= m.cols || cy >= m.rows {
		return image.Point{}, false
	}
	return image.Pt(
		(2*cx+1)*m.device.Width/(2*m.cols),
		(2*cy+1)*m.device.Height/(2*m.rows),
	), true
}

func (m *Model) clampToDevice(x, y int) image.Point {
	x = min(max(x, 0), m.cols-1)
	y = min(max(y, screenTop), screenTop+m.rows-1)
	pt, _ := m.toDevice(x, y)
	return pt
}
