package ui

import (
	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	"github.com/atomicstack/sway-titlebar/internal/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Forward  key.Binding
	Backward key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Forward: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "scroll forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "scroll backward"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Forward):
		m.scroll(state.ScrollForward)
	case key.Matches(keyMsg, m.keys.Backward):
		m.scroll(state.ScrollBackward)
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if dir := scrollDirection(mouse); dir != state.ScrollNone {
		m.scroll(dir)
		return nil
	}
	switch mouse.Action {
	case tea.MouseActionMotion:
		m.hover(mouse.X, mouse.Y)
	case tea.MouseActionPress:
		if mouse.Button != tea.MouseButtonLeft || mouse.Y != 0 {
			return nil
		}
		if b := m.buttonAt(mouse.X); b != nil {
			return m.focusCmd(b)
		}
	}
	return nil
}

// scrollDirection normalises wheel input: down and right move forward,
// up and left move backward.
func scrollDirection(mouse tea.MouseMsg) state.ScrollDirection {
	if mouse.Action != tea.MouseActionPress {
		return state.ScrollNone
	}
	switch mouse.Button {
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		return state.ScrollForward
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		return state.ScrollBackward
	default:
		return state.ScrollNone
	}
}

// scroll moves the offset and re-renders only when it changed.
func (m *Model) scroll(dir state.ScrollDirection) bool {
	moved := m.windows.Scroll(dir)
	if moved {
		m.rebuildButtons()
	}
	traceDir := events.ScrollForward
	if dir == state.ScrollBackward {
		traceDir = events.ScrollBackward
	}
	events.Titlebar.Scroll(traceDir, m.view.Offset, moved)
	return moved
}

func (m *Model) hover(x, y int) {
	var id int64
	if y == 0 {
		if b := m.buttonAt(x); b != nil {
			id = b.id
		}
	}
	if id == m.hovered {
		return
	}
	m.hovered = id
	if id != 0 {
		events.Titlebar.Hover(id)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	return nil
}
