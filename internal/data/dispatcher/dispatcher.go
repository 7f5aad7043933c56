package dispatcher

import (
	"fmt"

	"github.com/atomicstack/sway-titlebar/internal/logging"
	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	"github.com/atomicstack/sway-titlebar/internal/state"
	"github.com/atomicstack/sway-titlebar/internal/sway"
)

// TreeRequester issues GET_TREE; the reply comes back via HandleResponse.
type TreeRequester interface {
	RequestTree(reason string) error
}

type Result struct {
	WindowsUpdated bool
	Windows        int
	Focus          int
}

// Dispatcher keeps the window store in sync with sway. Every window or
// workspace event triggers a tree fetch; every tree reply replaces the
// store's contents and raises the render signal.
type Dispatcher struct {
	windows *state.WindowStore
	tree    TreeRequester
	notify  func()
}

// New wires a dispatcher. notify is called after each successful update
// and must not block.
func New(windows *state.WindowStore, tree TreeRequester, notify func()) *Dispatcher {
	return &Dispatcher{windows: windows, tree: tree, notify: notify}
}

// HandleEvent requests a fresh tree for window and workspace events. The
// event payload is not inspected.
func (d *Dispatcher) HandleEvent(msg sway.Message) {
	evt, ok := msg.Event()
	if !ok {
		return
	}
	switch evt {
	case sway.EventWindow, sway.EventWorkspace:
	default:
		return
	}
	if d.tree == nil {
		return
	}
	if err := d.tree.RequestTree(evt.String()); err != nil {
		logging.Error(fmt.Errorf("request tree: %w", err))
	}
}

// HandleResponse routes command replies.
func (d *Dispatcher) HandleResponse(msg sway.Message) {
	reply, ok := msg.Reply()
	if !ok {
		return
	}
	switch reply {
	case sway.MsgGetTree:
		d.Apply(msg.Payload)
	case sway.MsgRunCommand:
		d.checkCommandReply(msg.Payload)
	}
}

// Apply parses a GET_TREE payload into the store. An unreadable payload
// leaves the previous state in place.
func (d *Dispatcher) Apply(payload []byte) (Result, error) {
	flat, err := sway.FocusedWorkspace(payload)
	if err != nil {
		err = fmt.Errorf("parse tree: %w", err)
		events.Tree.Error(err)
		logging.Error(err)
		return Result{}, err
	}
	if len(flat.Malformed) > 0 {
		events.Tree.Malformed(flat.Malformed)
		for _, node := range flat.Malformed {
			logging.Errorf("unexpected node in tree: %s", node)
		}
	}
	if flat.Conflicts > 0 {
		events.Tree.Conflict(flat.Conflicts)
		logging.Errorf("tree reports %d extra focused windows, keeping the first", flat.Conflicts)
	}

	d.windows.Replace(flat.Windows, flat.Focus)
	events.Tree.Update(flat.Workspace, len(flat.Windows), flat.Focus)

	if d.notify != nil {
		d.notify()
	}
	return Result{WindowsUpdated: true, Windows: len(flat.Windows), Focus: flat.Focus}, nil
}

func (d *Dispatcher) checkCommandReply(payload []byte) {
	results, err := sway.ParseCommandReply(payload)
	if err != nil {
		logging.Error(err)
		return
	}
	for _, res := range results {
		if !res.Success {
			logging.Errorf("command failed: %s", res.Error)
		}
	}
}
