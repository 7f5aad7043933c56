package events

import "github.com/atomicstack/sway-titlebar/internal/logging"

type IPCTracer struct{}

var IPC = IPCTracer{}

func (IPCTracer) Subscribe(events []string) {
	logging.Trace("ipc.subscribe", map[string]interface{}{"events": events})
}

func (IPCTracer) Send(kind string, payload string) {
	logging.Trace("ipc.send", map[string]interface{}{"type": kind, "payload": payload})
}

func (IPCTracer) Event(kind string, size int) {
	logging.Trace("ipc.event", map[string]interface{}{"type": kind, "bytes": size})
}

func (IPCTracer) Response(kind string, size int) {
	logging.Trace("ipc.response", map[string]interface{}{"type": kind, "bytes": size})
}

func (IPCTracer) Closed(conn string, err error) {
	payload := map[string]interface{}{"conn": conn}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ipc.closed", payload)
}
