package testutil

import (
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/atomicstack/sway-titlebar/internal/sway"
)

// SwayServer is an in-process stand-in for the sway ipc socket. It answers
// SUBSCRIBE, GET_TREE and RUN_COMMAND and can push events to every
// subscribed connection.
type SwayServer struct {
	Path string

	t        *testing.T
	listener net.Listener

	mu          sync.Mutex
	tree        []byte
	commands    []string
	subscribers []net.Conn
	conns       []net.Conn
	wg          sync.WaitGroup

	commandSeen chan string
}

// StartSwayServer listens on a unique unix socket. The server shuts down
// when the test ends.
func StartSwayServer(t *testing.T, tree string) *SwayServer {
	t.Helper()
	baseDir, err := os.MkdirTemp("", "sway-titlebar-*")
	if err != nil {
		t.Fatalf("failed to create socket dir: %v", err)
	}
	path := filepath.Join(baseDir, "ipc.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		_ = os.RemoveAll(baseDir)
		t.Skipf("skipping: unix sockets unavailable: %v", err)
	}
	s := &SwayServer{
		Path:        path,
		t:           t,
		listener:    listener,
		tree:        []byte(tree),
		commandSeen: make(chan string, 16),
	}
	s.wg.Add(1)
	go s.accept()
	t.Cleanup(func() {
		s.Close()
		_ = os.RemoveAll(baseDir)
	})
	return s
}

// SetTree replaces the payload returned for GET_TREE.
func (s *SwayServer) SetTree(tree string) {
	s.mu.Lock()
	s.tree = []byte(tree)
	s.mu.Unlock()
}

// Commands returns the RUN_COMMAND payloads received so far.
func (s *SwayServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// CommandSeen delivers each RUN_COMMAND payload as it arrives.
func (s *SwayServer) CommandSeen() <-chan string {
	return s.commandSeen
}

// Emit sends an event to every subscribed connection.
func (s *SwayServer) Emit(evt sway.EventType, payload string) {
	s.mu.Lock()
	subs := append([]net.Conn(nil), s.subscribers...)
	s.mu.Unlock()
	for _, conn := range subs {
		if err := sway.WriteMessage(conn, uint32(evt), []byte(payload)); err != nil {
			s.t.Logf("emit %s: %v", evt, err)
		}
	}
}

// Close stops accepting, drops all connections and waits for handlers.
func (s *SwayServer) Close() {
	_ = s.listener.Close()
	s.mu.Lock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *SwayServer) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *SwayServer) serve(conn net.Conn) {
	defer s.wg.Done()
	for {
		msg, err := sway.ReadMessage(conn)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				_ = conn.Close()
			}
			return
		}
		reply, ok := s.reply(conn, msg)
		if !ok {
			continue
		}
		if err := sway.WriteMessage(conn, msg.Type, reply); err != nil {
			return
		}
	}
}

func (s *SwayServer) reply(conn net.Conn, msg sway.Message) ([]byte, bool) {
	switch sway.MessageType(msg.Type) {
	case sway.MsgSubscribe:
		var names []string
		if err := json.Unmarshal(msg.Payload, &names); err != nil {
			return []byte(`{"success":false}`), true
		}
		s.mu.Lock()
		s.subscribers = append(s.subscribers, conn)
		s.mu.Unlock()
		return []byte(`{"success":true}`), true
	case sway.MsgGetTree:
		s.mu.Lock()
		tree := append([]byte(nil), s.tree...)
		s.mu.Unlock()
		return tree, true
	case sway.MsgRunCommand:
		command := string(msg.Payload)
		s.mu.Lock()
		s.commands = append(s.commands, command)
		s.mu.Unlock()
		select {
		case s.commandSeen <- command:
		default:
		}
		return []byte(`[{"success":true}]`), true
	default:
		return []byte(`[]`), true
	}
}
