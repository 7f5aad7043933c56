package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/sway-titlebar/internal/logging"
	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	"github.com/atomicstack/sway-titlebar/internal/sway"
)

// Conn is the ipc surface the watcher drives. *sway.Client implements it.
type Conn interface {
	Subscribe(events ...sway.EventType) error
	Send(t sway.MessageType, payload []byte) error
	ReadResponse() (sway.Message, error)
	ReadEvent() (sway.Message, error)
	Close() error
}

// Handler receives everything read from sway, always on the watcher's
// single consumer goroutine.
type Handler interface {
	HandleEvent(sway.Message)
	HandleResponse(sway.Message)
}

// SubscribedEvents are the events that trigger a tree refresh.
var SubscribedEvents = []sway.EventType{sway.EventWindow, sway.EventWorkspace}

const queueSize = 16

// Watcher runs the ipc worker: one reader goroutine per connection feeding
// a channel each, and one consumer goroutine delivering both channels to a
// Handler in arrival order.
type Watcher struct {
	conn     Conn
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events    chan sway.Message
	responses chan sway.Message
	readers   sync.WaitGroup
	done      chan struct{}

	stopOnce sync.Once
}

// NewWatcher wraps conn. Tree requests are spaced by at least interval;
// zero sends one request per event.
func NewWatcher(conn Conn, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		conn:      conn,
		throttle:  newThrottle(interval),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan sway.Message, queueSize),
		responses: make(chan sway.Message, queueSize),
		done:      make(chan struct{}),
	}
}

// Start subscribes to window and workspace events, launches the worker
// goroutines and requests the initial tree.
func (w *Watcher) Start(h Handler) error {
	if err := w.conn.Subscribe(SubscribedEvents...); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	names := make([]string, len(SubscribedEvents))
	for i, e := range SubscribedEvents {
		names[i] = e.String()
	}
	events.IPC.Subscribe(names)

	w.readers.Add(2)
	go w.read("event", w.conn.ReadEvent, w.events)
	go w.read("command", w.conn.ReadResponse, w.responses)
	go w.consume(h)

	if err := w.RequestTree("startup"); err != nil {
		logging.Error(err)
	}
	return nil
}

// RequestTree asks sway for the full tree. The reply reaches the handler
// through HandleResponse.
func (w *Watcher) RequestTree(reason string) error {
	w.throttle.wait()
	events.Tree.Request(reason)
	return w.send(sway.MsgGetTree, nil)
}

// Command runs a sway command such as a focus request. The reply reaches
// the handler through HandleResponse.
func (w *Watcher) Command(command string) error {
	return w.send(sway.MsgRunCommand, []byte(command))
}

func (w *Watcher) send(t sway.MessageType, payload []byte) error {
	if err := w.ctx.Err(); err != nil {
		return fmt.Errorf("send %s: watcher stopped", t)
	}
	events.IPC.Send(t.String(), string(payload))
	return w.conn.Send(t, payload)
}

// Done is closed once the consumer goroutine has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// Stop cancels the worker and closes the connections so blocked readers
// return.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.cancel()
		if err := w.conn.Close(); err != nil {
			logging.Error(fmt.Errorf("close ipc: %w", err))
		}
	})
}

// Wait blocks until all worker goroutines have exited. Only valid after
// Start.
func (w *Watcher) Wait() {
	w.readers.Wait()
	<-w.done
}

func (w *Watcher) read(name string, next func() (sway.Message, error), out chan<- sway.Message) {
	defer w.readers.Done()
	defer close(out)
	for {
		msg, err := next()
		if err != nil {
			if w.ctx.Err() == nil {
				logging.Error(fmt.Errorf("%s connection: %w", name, err))
			}
			events.IPC.Closed(name, err)
			return
		}
		select {
		case out <- msg:
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) consume(h Handler) {
	defer close(w.done)
	evts, resps := w.events, w.responses
	for evts != nil || resps != nil {
		select {
		case <-w.ctx.Done():
			return
		case msg, ok := <-evts:
			if !ok {
				evts = nil
				continue
			}
			events.IPC.Event(msg.Kind(), len(msg.Payload))
			h.HandleEvent(msg)
		case msg, ok := <-resps:
			if !ok {
				resps = nil
				continue
			}
			events.IPC.Response(msg.Kind(), len(msg.Payload))
			h.HandleResponse(msg)
		}
	}
}
