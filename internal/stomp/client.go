package stomp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/gorilla/websocket"
)

// ErrNotConnected is returned for operations on a closed client.
var ErrNotConnected = errors.New("stomp client not connected")

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultDisconnectTimeout = 2 * time.Second
)

// Subprotocols offered during the websocket handshake.
var Subprotocols = []string{"v12.stomp", "v11.stomp", "v10.stomp"}

// ServerError is an ERROR frame received from the broker.
type ServerError struct {
	Message string
	Body    string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return "stomp error: " + e.Message
	}
	return fmt.Sprintf("stomp error: %s: %s", e.Message, e.Body)
}

// DialOptions configures Dial.
type DialOptions struct {
	// Headers are added to the CONNECT frame, e.g. Authorization.
	Headers map[string]string
	// HTTPHeader is sent with the websocket upgrade request.
	HTTPHeader http.Header
	// ConnectTimeout bounds the wait for CONNECTED when ctx has no deadline.
	ConnectTimeout time.Duration
	// DisconnectTimeout bounds the wait for the DISCONNECT receipt.
	DisconnectTimeout time.Duration
	Dialer            *websocket.Dialer
	Logger            logging.Logger
}

// Handler receives MESSAGE frames for one subscription. Handlers run on the
// client's read goroutine, one at a time, in arrival order.
type Handler func(Frame)

// Client is a connected STOMP session.
type Client struct {
	conn    *websocket.Conn
	logger  logging.Logger
	version string
	timeout time.Duration

	writeMu sync.Mutex

	mu       sync.Mutex
	subs     map[string]Handler
	receipts map[string]chan struct{}
	nextID   int
	err      error

	done      chan struct{}
	closeOnce sync.Once
}

// Dial opens a websocket to rawURL and completes the STOMP handshake.
func Dial(ctx context.Context, rawURL string, opts DialOptions) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse stomp url: %w", err)
	}
	base := opts.Dialer
	if base == nil {
		base = websocket.DefaultDialer
	}
	dialer := *base
	dialer.Subprotocols = Subprotocols

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("component", "stomp")

	conn, resp, err := dialer.DialContext(ctx, u.String(), opts.HTTPHeader)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	connect := NewFrame(CmdConnect,
		"accept-version", "1.2,1.1,1.0",
		"host", u.Hostname(),
		"heart-beat", "0,0",
	)
	for k, v := range opts.Headers {
		connect.Headers[k] = v
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		timeout := opts.ConnectTimeout
		if timeout <= 0 {
			timeout = defaultConnectTimeout
		}
		deadline = time.Now().Add(timeout)
	}
	conn.SetWriteDeadline(deadline)
	conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, connect.Encode()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send CONNECT: %w", err)
	}
	connected, err := awaitConnected(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetWriteDeadline(time.Time{})
	conn.SetReadDeadline(time.Time{})

	disconnectTimeout := opts.DisconnectTimeout
	if disconnectTimeout <= 0 {
		disconnectTimeout = defaultDisconnectTimeout
	}
	c := &Client{
		conn:     conn,
		logger:   logger,
		version:  connected.Header("version"),
		timeout:  disconnectTimeout,
		subs:     make(map[string]Handler),
		receipts: make(map[string]chan struct{}),
		done:     make(chan struct{}),
	}
	logger.Info("connected", "url", u.Redacted(), "version", c.version)
	go c.readLoop()
	return c, nil
}

func awaitConnected(conn *websocket.Conn) (Frame, error) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return Frame{}, fmt.Errorf("await CONNECTED: %w", err)
		}
		frames, err := Parse(data)
		if err != nil {
			return Frame{}, err
		}
		for _, f := range frames {
			switch f.Command {
			case CmdConnected:
				return f, nil
			case CmdError:
				return Frame{}, &ServerError{Message: f.Header("message"), Body: string(f.Body)}
			default:
				return Frame{}, fmt.Errorf("%w: expected CONNECTED, got %s", ErrMalformedFrame, f.Command)
			}
		}
	}
}

// Version returns the protocol version negotiated with the broker.
func (c *Client) Version() string {
	return c.version
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection closed, or nil while it is open or after a
// clean disconnect.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Client) send(f Frame) error {
	if c.closed() {
		return ErrNotConnected
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, f.Encode()); err != nil {
		return fmt.Errorf("send %s: %w", f.Command, err)
	}
	return nil
}

func (c *Client) newID(prefix string) string {
	c.nextID++
	return prefix + "-" + strconv.Itoa(c.nextID)
}

// Subscription is an active SUBSCRIBE.
type Subscription struct {
	client      *Client
	id          string
	destination string
	once        sync.Once
}

// ID returns the subscription id sent to the broker.
func (s *Subscription) ID() string { return s.id }

// Destination returns the subscribed destination.
func (s *Subscription) Destination() string { return s.destination }

// Unsubscribe stops dispatch to the handler and tells the broker. Calling it
// more than once is a no-op.
func (s *Subscription) Unsubscribe() error {
	var err error
	s.once.Do(func() {
		s.client.mu.Lock()
		delete(s.client.subs, s.id)
		s.client.mu.Unlock()
		err = s.client.send(NewFrame(CmdUnsubscribe, "id", s.id))
		if errors.Is(err, ErrNotConnected) {
			err = nil
		}
	})
	return err
}

// Subscribe registers handler for MESSAGE frames on destination.
func (c *Client) Subscribe(destination string, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, errors.New("stomp: nil handler")
	}
	c.mu.Lock()
	if c.closed() {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	id := c.newID("sub")
	c.subs[id] = handler
	c.mu.Unlock()

	if err := c.send(NewFrame(CmdSubscribe, "id", id, "destination", destination, "ack", "auto")); err != nil {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		return nil, err
	}
	c.logger.Debug("subscribed", "destination", destination, "id", id)
	return &Subscription{client: c, id: id, destination: destination}, nil
}

// Disconnect performs a graceful DISCONNECT, waiting briefly for the broker's
// receipt, then closes the socket. It is safe to call more than once.
func (c *Client) Disconnect() error {
	if c.closed() {
		return nil
	}
	c.mu.Lock()
	receiptID := c.newID("disconnect")
	ack := make(chan struct{})
	c.receipts[receiptID] = ack
	c.mu.Unlock()

	if err := c.send(NewFrame(CmdDisconnect, "receipt", receiptID)); err == nil {
		select {
		case <-ack:
		case <-c.done:
		case <-time.After(c.timeout):
			c.logger.Warn("disconnect receipt timed out", "receipt", receiptID)
		}
	}

	c.writeMu.Lock()
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	c.shutdown(nil)
	return nil
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.subs = make(map[string]Handler)
		c.mu.Unlock()
		close(c.done)
		c.conn.Close()
		if err != nil {
			c.logger.Warn("connection closed", "error", err)
		} else {
			c.logger.Info("disconnected")
		}
	})
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.closed() || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.shutdown(nil)
			} else {
				c.shutdown(err)
			}
			return
		}
		frames, err := Parse(data)
		if err != nil {
			c.logger.Warn("dropping malformed frame", "error", err)
		}
		for _, f := range frames {
			c.dispatch(f)
		}
	}
}

func (c *Client) dispatch(f Frame) {
	switch f.Command {
	case CmdMessage:
		c.mu.Lock()
		handler := c.subs[f.Header("subscription")]
		c.mu.Unlock()
		if handler == nil {
			c.logger.Debug("message for unknown subscription", "subscription", f.Header("subscription"))
			return
		}
		handler(f)
	case CmdReceipt:
		c.mu.Lock()
		ack, ok := c.receipts[f.Header("receipt-id")]
		delete(c.receipts, f.Header("receipt-id"))
		c.mu.Unlock()
		if ok {
			close(ack)
		}
	case CmdError:
		c.shutdown(&ServerError{Message: f.Header("message"), Body: string(f.Body)})
	default:
		c.logger.Debug("ignoring frame", "command", f.Command)
	}
}
