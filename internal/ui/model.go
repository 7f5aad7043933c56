package ui

import (
	"reflect"

	"github.com/atomicstack/sway-titlebar/internal/state"
	"github.com/atomicstack/sway-titlebar/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Commander runs a sway command; the reply arrives asynchronously.
type Commander interface {
	Command(command string) error
}

// Options carries the display settings of the strip.
type Options struct {
	Layout   state.Layout
	Tooltips bool
}

// Model implements the Bubble Tea model for the titlebar strip.
type Model struct {
	windows   *state.WindowStore
	layout    state.Layout
	tooltips  bool
	signal    *RenderSignal
	commander Commander
	done      <-chan struct{}
	watching  bool

	buttons map[int64]*button
	order   []*button
	view    state.View
	hovered int64
	width   int

	keys     keyMap
	handlers map[reflect.Type]msgHandler
}

// NewModel builds the strip over store. signal wakes the model after tree
// updates; done is closed when the ipc worker exits. Either may be nil.
func NewModel(opts Options, store *state.WindowStore, signal *RenderSignal, commander Commander, done <-chan struct{}) *Model {
	if store == nil {
		store = state.NewWindowStore()
	}
	layout := opts.Layout
	if layout.MaxShown < 1 {
		layout = state.DefaultLayout()
	}
	m := &Model{
		windows:   store,
		layout:    layout,
		tooltips:  opts.Tooltips,
		signal:    signal,
		commander: commander,
		done:      done,
		watching:  signal != nil,
		buttons:   map[int64]*button{},
		keys:      defaultKeyMap(),
	}
	m.registerHandlers()
	m.rebuildButtons()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if !m.watching {
		return nil
	}
	return waitForRender(m.signal, m.done)
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
		reflect.TypeOf(renderMsg{}):         m.handleRenderMsg,
		reflect.TypeOf(watcherDoneMsg{}):    m.handleWatcherDoneMsg,
		reflect.TypeOf(focusResultMsg{}):    m.handleFocusResultMsg,
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

// ButtonNames lists the names of the current buttons in display order.
func (m *Model) ButtonNames() []string {
	names := make([]string, 0, len(m.order))
	for _, b := range m.order {
		names = append(names, b.name)
	}
	return names
}

// CurrentView returns the layout used by the last render pass.
func (m *Model) CurrentView() state.View {
	return m.view
}
