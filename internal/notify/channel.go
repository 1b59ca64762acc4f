package notify

import (
	"context"
	"time"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/stomp"
)

// Directory is the request/response service owning the user's notification
// list and its read state.
type Directory interface {
	GetUserNotifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationAsRead(ctx context.Context, id int) (domain.Notification, error)
	MarkAllNotificationsAsRead(ctx context.Context) error
}

// Dialer opens an authenticated push channel.
type Dialer interface {
	Connect(ctx context.Context, credential string) (Channel, error)
}

// Channel is a connected publish/subscribe transport.
type Channel interface {
	Subscribe(topic string, handler func(payload []byte)) (Subscription, error)
	Disconnect() error
}

// Subscription is an active topic subscription.
type Subscription interface {
	Unsubscribe() error
}

// closeNotifier is implemented by channels that can report a dropped
// connection.
type closeNotifier interface {
	Done() <-chan struct{}
}

// Topic returns the per-user notification destination.
func Topic(userID string) string {
	return "/user/" + userID + "/notifications"
}

// StompDialer connects to the backend's STOMP endpoint over a websocket.
type StompDialer struct {
	URL               string
	ConnectTimeout    time.Duration
	DisconnectTimeout time.Duration
	Logger            logging.Logger
}

var _ Dialer = (*StompDialer)(nil)

// Connect dials the broker, presenting credential as a bearer token in the
// CONNECT frame.
func (d *StompDialer) Connect(ctx context.Context, credential string) (Channel, error) {
	client, err := stomp.Dial(ctx, d.URL, stomp.DialOptions{
		Headers:           map[string]string{"Authorization": "Bearer " + credential},
		ConnectTimeout:    d.ConnectTimeout,
		DisconnectTimeout: d.DisconnectTimeout,
		Logger:            d.Logger,
	})
	if err != nil {
		return nil, err
	}
	return stompChannel{client: client}, nil
}

type stompChannel struct {
	client *stomp.Client
}

func (c stompChannel) Subscribe(topic string, handler func([]byte)) (Subscription, error) {
	sub, err := c.client.Subscribe(topic, func(f stomp.Frame) { handler(f.Body) })
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (c stompChannel) Disconnect() error { return c.client.Disconnect() }

func (c stompChannel) Done() <-chan struct{} { return c.client.Done() }
