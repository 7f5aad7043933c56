package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests. The
// model should be built without a render signal: commands run inline, so a
// pending render wait would block.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
// It reports whether the model asked the program to quit.
func (h *Harness) Send(msg tea.Msg) bool {
	if h.model == nil {
		return false
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	return h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) bool {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return false
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
	return false
}

// Render runs a render pass as if the tree synchronizer had signalled.
func (h *Harness) Render() {
	h.Send(renderMsg{})
}

// Click presses the left button at column x of the strip.
func (h *Harness) Click(x int) {
	h.Send(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

// Wheel sends one wheel notch.
func (h *Harness) Wheel(button tea.MouseButton) {
	h.Send(tea.MouseMsg{Button: button, Action: tea.MouseActionPress})
}

// Hover moves the pointer to column x of the strip.
func (h *Harness) Hover(x int) {
	h.Send(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion})
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
