package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const emptyLabel = "no windows"

// View renders the strip on the first line and, when a button is hovered
// and tooltips are enabled, the full window name on the second.
func (m *Model) View() string {
	var b strings.Builder
	if len(m.order) == 0 {
		if styles.Empty != nil {
			b.WriteString(styles.Empty.Render(emptyLabel))
		} else {
			b.WriteString(emptyLabel)
		}
		return m.clip(b.String())
	}
	for _, btn := range m.order {
		b.WriteString(m.buttonStyle(btn, btn.id == m.hovered).Render(btn.label))
	}
	line := m.clip(b.String())
	if tip := m.tooltipLine(); tip != "" {
		return line + "\n" + tip
	}
	return line
}

func (m *Model) tooltipLine() string {
	if !m.tooltips || m.hovered == 0 {
		return ""
	}
	btn, ok := m.buttons[m.hovered]
	if !ok || btn.tooltip == "" {
		return ""
	}
	text := btn.tooltip
	if styles.Tooltip != nil {
		text = styles.Tooltip.Render(text)
	}
	return m.clip(text)
}

func (m *Model) clip(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "")
}
