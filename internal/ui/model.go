package ui

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/inkshell/internal/device"
	"github.com/atomicstack/inkshell/internal/dispatcher"
	"github.com/atomicstack/inkshell/internal/framebuffer"
	"github.com/atomicstack/inkshell/internal/platform"
	"github.com/atomicstack/inkshell/internal/theme"
)

var styles = theme.Default()

// pushTimeout bounds how long the terminal waits on a full platform source.
const pushTimeout = 50 * time.Millisecond

type msgHandler func(tea.Msg) tea.Cmd

// StatusMsg carries a dispatcher snapshot and the matching screen preview.
type StatusMsg struct {
	Status dispatcher.Status
	Screen []string
}

// Model implements the Bubble Tea model for the terminal host.
type Model struct {
	device device.Descriptor
	source *platform.Channel
	keys   keyMap

	width  int
	height int
	cols   int
	rows   int

	status    dispatcher.Status
	hasStatus bool
	screen    []string
	errMsg    string
	quitting  bool

	pressed bool
	start   time.Time
	now     func() time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel returns a host for dev that pushes input into source.
func NewModel(dev device.Descriptor, source *platform.Channel) *Model {
	cols, rows := PreviewSize(dev.Width, dev.Height)
	m := &Model{
		device: dev,
		source: source,
		keys:   defaultKeyMap(),
		cols:   cols,
		rows:   rows,
		now:    time.Now,
	}
	m.start = m.now()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(StatusMsg{}):         m.handleStatusMsg,
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

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.width = size.Width
	m.height = size.Height
	return nil
}

func (m *Model) handleStatusMsg(msg tea.Msg) tea.Cmd {
	s := msg.(StatusMsg)
	m.status = s.Status
	m.hasStatus = true
	if len(s.Screen) > 0 {
		m.screen = s.Screen
	}
	return nil
}

func (m *Model) push(evt platform.Event) {
	if !m.source.Push(evt, pushTimeout) {
		m.errMsg = "input dropped: " + evt.String()
		return
	}
	m.errMsg = ""
}

// Status returns the last snapshot received.
func (m *Model) Status() (dispatcher.Status, bool) {
	return m.status, m.hasStatus
}

// Observer returns a dispatcher observer that publishes snapshots of fb
// through send, typically a Program's Send method. It runs on the
// dispatcher goroutine, which owns fb.
func Observer(send func(tea.Msg), fb *framebuffer.Memory) func(dispatcher.Status) {
	w, h := fb.Dims()
	cols, rows := PreviewSize(w, h)
	return func(s dispatcher.Status) {
		send(StatusMsg{Status: s, Screen: Downsample(fb.Gray, fb.Inverted(), cols, rows)})
	}
}
