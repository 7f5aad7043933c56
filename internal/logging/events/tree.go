package events

import "github.com/atomicstack/sway-titlebar/internal/logging"

type TreeTracer struct{}

var Tree = TreeTracer{}

func (TreeTracer) Request(reason string) {
	logging.Trace("tree.request", map[string]interface{}{"reason": reason})
}

func (TreeTracer) Update(workspace string, windows, focus int) {
	logging.Trace("tree.update", map[string]interface{}{
		"workspace": workspace,
		"windows":   windows,
		"focus":     focus,
	})
}

func (TreeTracer) Malformed(nodes []string) {
	logging.Trace("tree.malformed", map[string]interface{}{"nodes": nodes})
}

func (TreeTracer) Conflict(count int) {
	logging.Trace("tree.conflict", map[string]interface{}{"extra": count})
}

func (TreeTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("tree.error", map[string]interface{}{"error": err.Error()})
}
