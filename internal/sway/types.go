package sway

import "fmt"

// MessageType identifies a request sent to sway and the matching reply.
type MessageType uint32

const (
	MsgRunCommand MessageType = 0
	MsgSubscribe  MessageType = 2
	MsgGetTree    MessageType = 4
)

func (t MessageType) String() string {
	switch t {
	case MsgRunCommand:
		return "run_command"
	case MsgSubscribe:
		return "subscribe"
	case MsgGetTree:
		return "get_tree"
	default:
		return fmt.Sprintf("message(%d)", uint32(t))
	}
}

// eventMask is set on the type field of every event pushed by sway.
const eventMask uint32 = 1 << 31

// EventType identifies an asynchronous event delivered on a subscribed
// connection.
type EventType uint32

const (
	EventWorkspace EventType = EventType(eventMask | 0)
	EventWindow    EventType = EventType(eventMask | 3)
)

var eventNames = map[EventType]string{
	EventWorkspace: "workspace",
	EventWindow:    "window",
}

func (e EventType) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", uint32(e)&^eventMask)
}

// Message is one framed unit read from or written to the socket. Type holds
// either a MessageType (replies) or an EventType (events).
type Message struct {
	Type    uint32
	Payload []byte
}

// IsEvent reports whether the message was pushed as an event.
func (m Message) IsEvent() bool {
	return m.Type&eventMask != 0
}

// Event returns the event type carried by the message.
func (m Message) Event() (EventType, bool) {
	if !m.IsEvent() {
		return 0, false
	}
	return EventType(m.Type), true
}

// Reply returns the request type this message answers.
func (m Message) Reply() (MessageType, bool) {
	if m.IsEvent() {
		return 0, false
	}
	return MessageType(m.Type), true
}

// Kind is a short human readable name used in logs and traces.
func (m Message) Kind() string {
	if evt, ok := m.Event(); ok {
		return evt.String()
	}
	return MessageType(m.Type).String()
}
