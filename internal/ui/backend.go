package ui

import (
	"fmt"

	"github.com/atomicstack/sway-titlebar/internal/logging"
	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForRender(signal *RenderSignal, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-signal.C():
			return renderMsg{}
		case <-done:
			return watcherDoneMsg{}
		}
	}
}

type renderMsg struct{}

type watcherDoneMsg struct{}

type focusResultMsg struct {
	id  int64
	err error
}

func (m *Model) handleRenderMsg(msg tea.Msg) tea.Cmd {
	m.rebuildButtons()
	if !m.watching {
		return nil
	}
	return waitForRender(m.signal, m.done)
}

// handleWatcherDoneMsg stops listening for updates. The strip keeps
// showing the last known state.
func (m *Model) handleWatcherDoneMsg(msg tea.Msg) tea.Cmd {
	m.watching = false
	logging.Errorf("ipc connection closed, titlebar no longer updates")
	return nil
}

func (m *Model) focusCmd(b *button) tea.Cmd {
	commander := m.commander
	id, command := b.id, b.command
	events.Titlebar.Click(id, command)
	return func() tea.Msg {
		if commander == nil {
			return focusResultMsg{id: id, err: fmt.Errorf("focus %d: no ipc connection", id)}
		}
		if err := commander.Command(command); err != nil {
			return focusResultMsg{id: id, err: fmt.Errorf("focus %d: %w", id, err)}
		}
		return focusResultMsg{id: id}
	}
}

func (m *Model) handleFocusResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(focusResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		logging.Error(res.err)
	}
	return nil
}
