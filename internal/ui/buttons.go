package ui

import (
	"strconv"

	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	"github.com/atomicstack/sway-titlebar/internal/state"
	"github.com/atomicstack/sway-titlebar/internal/sway"
	"github.com/charmbracelet/lipgloss"
)

// button is one clickable window entry of the strip.
type button struct {
	id      int64
	name    string
	label   string
	tooltip string
	focused bool
	command string

	// start and end are the columns [start, end) the rendered button covers.
	start int
	end   int
}

func (b *button) contains(x int) bool {
	return x >= b.start && x < b.end
}

func buttonName(id int64) string {
	return "sway-window-" + strconv.FormatInt(id, 10)
}

// newButton maps one visible entry to a button. The click command only
// depends on the window id.
func newButton(entry state.Entry, tooltips bool) *button {
	b := &button{
		id:      entry.ID,
		name:    buttonName(entry.ID),
		label:   entry.Label,
		focused: entry.Focused,
		command: sway.FocusCommand(entry.ID),
	}
	if tooltips {
		b.tooltip = entry.Name
	}
	return b
}

// rebuildButtons runs a render pass: it lays out the store under its lock,
// discards the previous button set and creates one button per visible
// window.
func (m *Model) rebuildButtons() {
	view := m.windows.Layout(m.layout)
	m.view = view
	m.buttons = make(map[int64]*button, len(view.Entries))
	m.order = m.order[:0]

	x := 0
	names := make([]string, 0, len(view.Entries))
	for _, entry := range view.Entries {
		b := newButton(entry, m.tooltips)
		width := lipgloss.Width(m.buttonStyle(b, false).Render(b.label))
		b.start, b.end = x, x+width
		x += width
		m.buttons[b.id] = b
		m.order = append(m.order, b)
		names = append(names, b.name)
	}
	if _, ok := m.buttons[m.hovered]; !ok {
		m.hovered = 0
	}
	events.Titlebar.Render(view.Begin, view.End, view.Offset, view.EntryChars, names)
}

func (m *Model) buttonAt(x int) *button {
	for _, b := range m.order {
		if b.contains(x) {
			return b
		}
	}
	return nil
}

func (m *Model) buttonStyle(b *button, hovered bool) lipgloss.Style {
	switch {
	case b.focused && styles.FocusedButton != nil:
		return *styles.FocusedButton
	case hovered && styles.HoveredButton != nil:
		return *styles.HoveredButton
	case styles.Button != nil:
		return *styles.Button
	default:
		return lipgloss.NewStyle()
	}
}
