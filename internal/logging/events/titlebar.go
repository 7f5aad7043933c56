package events

import "github.com/atomicstack/sway-titlebar/internal/logging"

type TitlebarTracer struct{}

type scrollDirection string

const (
	ScrollForward  scrollDirection = "forward"
	ScrollBackward scrollDirection = "backward"
)

var Titlebar = TitlebarTracer{}

func (TitlebarTracer) Render(begin, end, offset, entryChars int, buttons []string) {
	logging.Trace("titlebar.render", map[string]interface{}{
		"begin":      begin,
		"end":        end,
		"offset":     offset,
		"entryChars": entryChars,
		"buttons":    buttons,
	})
}

func (TitlebarTracer) Scroll(dir scrollDirection, offset int, moved bool) {
	logging.Trace("titlebar.scroll", map[string]interface{}{"direction": string(dir), "offset": offset, "moved": moved})
}

func (TitlebarTracer) Click(id int64, command string) {
	logging.Trace("titlebar.click", map[string]interface{}{"id": id, "command": command})
}

func (TitlebarTracer) Hover(id int64) {
	logging.Trace("titlebar.hover", map[string]interface{}{"id": id})
}
