package notify

import (
	"context"
	"sync"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) GetUserNotifications(ctx context.Context) ([]domain.Notification, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Notification)
	return list, args.Error(1)
}

func (m *mockDirectory) MarkNotificationAsRead(ctx context.Context, id int) (domain.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(domain.Notification)
	return n, args.Error(1)
}

func (m *mockDirectory) MarkAllNotificationsAsRead(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockDialer struct {
	mock.Mock
}

func (m *mockDialer) Connect(ctx context.Context, credential string) (Channel, error) {
	args := m.Called(ctx, credential)
	ch, _ := args.Get(0).(Channel)
	return ch, args.Error(1)
}

// fakeChannel records the teardown order and lets tests push payloads.
type fakeChannel struct {
	mu         sync.Mutex
	topic      string
	handler    func([]byte)
	calls      []string
	subErr     error
	disconnect error
}

func (c *fakeChannel) Subscribe(topic string, handler func([]byte)) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subErr != nil {
		return nil, c.subErr
	}
	c.topic = topic
	c.handler = handler
	c.calls = append(c.calls, "subscribe")
	return &fakeSubscription{ch: c}, nil
}

func (c *fakeChannel) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "disconnect")
	return c.disconnect
}

func (c *fakeChannel) push(payload string) {
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()
	h([]byte(payload))
}

func (c *fakeChannel) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type fakeSubscription struct {
	ch *fakeChannel
}

func (s *fakeSubscription) Unsubscribe() error {
	s.ch.mu.Lock()
	defer s.ch.mu.Unlock()
	s.ch.calls = append(s.ch.calls, "unsubscribe")
	return nil
}

type fakeSession struct {
	token  string
	userID string
	valid  bool
}

func (s fakeSession) Token() string { return s.token }
func (s fakeSession) UserID() (string, bool) {
	return s.userID, s.userID != ""
}
func (s fakeSession) DisplayName() (string, bool) { return "Ada", true }
func (s fakeSession) Valid() bool                 { return s.valid }

func recorder() *alert.Log {
	return alert.NewLog(0, nil)
}
