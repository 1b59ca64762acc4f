// Package stomptest provides an in-process STOMP broker for tests.
package stomptest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/booknet/internal/stomp"
	"github.com/gorilla/websocket"
)

// Broker accepts STOMP clients over a websocket served by httptest.
type Broker struct {
	// Authorize, when set, inspects the CONNECT frame. A non-nil error is
	// answered with an ERROR frame carrying its message.
	Authorize func(connect stomp.Frame) error
	// DropReceipts stops the broker from answering DISCONNECT receipts.
	DropReceipts bool

	server   *httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions []*session
	received []stomp.Frame
	changed  chan struct{}
}

type session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	subs    map[string]string // id -> destination
}

// NewBroker starts a broker. Close it when done.
func NewBroker() *Broker {
	b := &Broker{
		upgrader: websocket.Upgrader{Subprotocols: stomp.Subprotocols},
		changed:  make(chan struct{}, 1),
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

// URL returns the ws:// address of the broker.
func (b *Broker) URL() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http") + "/ws"
}

// Close stops the broker and drops every connection.
func (b *Broker) Close() {
	b.mu.Lock()
	for _, s := range b.sessions {
		s.conn.Close()
	}
	b.mu.Unlock()
	b.server.Close()
}

func (b *Broker) record(f stomp.Frame) {
	b.mu.Lock()
	b.received = append(b.received, f)
	b.mu.Unlock()
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

// Received returns every frame clients sent, in order.
func (b *Broker) Received() []stomp.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]stomp.Frame(nil), b.received...)
}

// Commands returns the commands of Received.
func (b *Broker) Commands() []string {
	frames := b.Received()
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.Command
	}
	return out
}

// WaitFor blocks until a frame with command has been received or timeout
// elapses, returning the first such frame.
func (b *Broker) WaitFor(command string, timeout time.Duration) (stomp.Frame, bool) {
	deadline := time.After(timeout)
	for {
		for _, f := range b.Received() {
			if f.Command == command {
				return f, true
			}
		}
		select {
		case <-b.changed:
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			return stomp.Frame{}, false
		}
	}
}

// Send delivers body as a MESSAGE to every subscription on destination.
// It returns how many subscriptions received it.
func (b *Broker) Send(destination string, body []byte) int {
	b.mu.Lock()
	sessions := append([]*session(nil), b.sessions...)
	b.mu.Unlock()

	delivered := 0
	for _, s := range sessions {
		b.mu.Lock()
		var ids []string
		for id, dest := range s.subs {
			if dest == destination {
				ids = append(ids, id)
			}
		}
		b.mu.Unlock()
		for _, id := range ids {
			msg := stomp.NewFrame(stomp.CmdMessage,
				"subscription", id,
				"destination", destination,
				"message-id", fmt.Sprintf("m-%d", delivered),
				"content-type", "application/json")
			msg.Body = body
			if s.write(msg) == nil {
				delivered++
			}
		}
	}
	return delivered
}

// Subscribers returns the number of live subscriptions on destination.
func (b *Broker) Subscribers(destination string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.sessions {
		for _, dest := range s.subs {
			if dest == destination {
				n++
			}
		}
	}
	return n
}

// Kick closes every client connection without a DISCONNECT exchange.
func (b *Broker) Kick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.sessions {
		s.conn.Close()
	}
	b.sessions = nil
}

func (s *session) write(f stomp.Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, f.Encode())
}

func (b *Broker) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s := &session{conn: conn, subs: make(map[string]string)}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			b.drop(s)
			return
		}
		frames, err := stomp.Parse(data)
		if err != nil {
			return
		}
		for _, f := range frames {
			b.record(f)
			if !b.handle(s, f) {
				b.drop(s)
				return
			}
		}
	}
}

func (b *Broker) handle(s *session, f stomp.Frame) bool {
	switch f.Command {
	case stomp.CmdConnect:
		if b.Authorize != nil {
			if err := b.Authorize(f); err != nil {
				s.write(stomp.NewFrame(stomp.CmdError, "message", err.Error()))
				return false
			}
		}
		b.mu.Lock()
		b.sessions = append(b.sessions, s)
		b.mu.Unlock()
		s.write(stomp.NewFrame(stomp.CmdConnected, "version", "1.2", "heart-beat", "0,0"))
	case stomp.CmdSubscribe:
		b.mu.Lock()
		s.subs[f.Header("id")] = f.Header("destination")
		b.mu.Unlock()
	case stomp.CmdUnsubscribe:
		b.mu.Lock()
		delete(s.subs, f.Header("id"))
		b.mu.Unlock()
	case stomp.CmdDisconnect:
		if receipt := f.Header("receipt"); receipt != "" && !b.DropReceipts {
			s.write(stomp.NewFrame(stomp.CmdReceipt, "receipt-id", receipt))
		}
		b.drop(s)
	}
	return true
}

func (b *Broker) drop(s *session) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.subs = make(map[string]string)
	for i, other := range b.sessions {
		if other == s {
			b.sessions = append(b.sessions[:i], b.sessions[i+1:]...)
			return
		}
	}
}
