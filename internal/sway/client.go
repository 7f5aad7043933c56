package sway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/buger/jsonparser"
)

var ErrSubscribeRejected = errors.New("sway: subscription rejected")

// Client talks to sway over two connections: commands and their replies
// travel on one, subscribed events arrive on the other. Keeping them apart
// means a burst of events never interleaves with a pending GET_TREE reply.
type Client struct {
	cmd io.ReadWriteCloser
	evt io.ReadWriteCloser

	writeMu sync.Mutex
	closeMu sync.Once
}

// Dial opens both connections to the sway socket at socketPath.
func Dial(socketPath string) (*Client, error) {
	cmd, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial command socket: %w", err)
	}
	evt, err := net.Dial("unix", socketPath)
	if err != nil {
		cmd.Close()
		return nil, fmt.Errorf("dial event socket: %w", err)
	}
	return NewClient(cmd, evt), nil
}

// NewClient wraps already established connections.
func NewClient(cmd, evt io.ReadWriteCloser) *Client {
	return &Client{cmd: cmd, evt: evt}
}

// Subscribe registers for the given events on the event connection and
// waits for sway to acknowledge the subscription.
func (c *Client) Subscribe(events ...EventType) error {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.String())
	}
	payload, err := json.Marshal(names)
	if err != nil {
		return err
	}
	if err := WriteMessage(c.evt, uint32(MsgSubscribe), payload); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	for {
		reply, err := ReadMessage(c.evt)
		if err != nil {
			return fmt.Errorf("subscribe reply: %w", err)
		}
		if reply.IsEvent() {
			continue
		}
		ok, err := jsonparser.GetBoolean(reply.Payload, "success")
		if err != nil {
			return fmt.Errorf("subscribe reply: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrSubscribeRejected, payload)
		}
		return nil
	}
}

// Send writes a request on the command connection. The reply is delivered
// later through ReadResponse.
func (c *Client) Send(t MessageType, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := WriteMessage(c.cmd, uint32(t), payload); err != nil {
		return fmt.Errorf("send %s: %w", t, err)
	}
	return nil
}

// ReadResponse blocks until the next reply on the command connection.
func (c *Client) ReadResponse() (Message, error) {
	return ReadMessage(c.cmd)
}

// ReadEvent blocks until the next event on the event connection.
func (c *Client) ReadEvent() (Message, error) {
	return ReadMessage(c.evt)
}

// Close shuts both connections, unblocking pending reads.
func (c *Client) Close() error {
	var err error
	c.closeMu.Do(func() {
		err = errors.Join(c.cmd.Close(), c.evt.Close())
	})
	return err
}
