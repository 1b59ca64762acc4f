package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/api"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func note(id int, status domain.NotificationStatus, read bool) domain.Notification {
	return domain.Notification{ID: domain.IntPtr(id), Status: status, Message: fmt.Sprintf("n%d", id), Read: read}
}

type fixture struct {
	dir     *mockDirectory
	dialer  *mockDialer
	channel *fakeChannel
	alerts  *alert.Log
	manager *Manager
}

func newFixture(t *testing.T, backlog []domain.Notification, sess fakeSession) *fixture {
	t.Helper()
	f := &fixture{
		dir:     new(mockDirectory),
		dialer:  new(mockDialer),
		channel: &fakeChannel{},
		alerts:  recorder(),
	}
	f.dir.On("GetUserNotifications", mock.Anything).Return(backlog, nil)
	f.dialer.On("Connect", mock.Anything, sess.token).Return(f.channel, nil).Maybe()
	f.manager = NewManager(Options{
		Directory: f.dir,
		Dialer:    f.dialer,
		Session:   sess,
		Presenter: f.alerts,
		Logger:    logging.Discard(),
	})
	return f
}

var validSession = fakeSession{token: "tok", userID: "42", valid: true}

func TestActivateLoadsBacklogAndSubscribes(t *testing.T) {
	f := newFixture(t, []domain.Notification{
		note(3, domain.StatusBorrowed, false),
		note(2, domain.StatusReturned, true),
		note(1, domain.StatusReturnApproved, false),
	}, validSession)

	require.NoError(t, f.manager.Activate(context.Background()))

	assert.Len(t, f.manager.Notifications(), 3)
	assert.Equal(t, 2, f.manager.Unread())
	assert.Equal(t, StateConnected, f.manager.State())
	assert.Equal(t, "/user/42/notifications", f.channel.topic)
	assert.Equal(t, 0, f.alerts.Len())
	f.dialer.AssertCalled(t, "Connect", mock.Anything, "tok")
}

func TestActivateTwiceFails(t *testing.T) {
	f := newFixture(t, nil, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))

	assert.ErrorIs(t, f.manager.Activate(context.Background()), ErrAlreadyActive)
}

func TestInvalidSessionSkipsConnectionSilently(t *testing.T) {
	for name, sess := range map[string]fakeSession{
		"expired":    {token: "tok", userID: "42", valid: false},
		"no user id": {token: "tok", valid: true},
		"no token":   {},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, []domain.Notification{note(1, domain.StatusBorrowed, false)}, sess)

			require.NoError(t, f.manager.Activate(context.Background()))

			f.dialer.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything)
			assert.Equal(t, StateIdle, f.manager.State())
			assert.Equal(t, 0, f.alerts.Len())
			assert.Equal(t, 1, f.manager.Unread(), "backlog is still loaded")
		})
	}
}

func TestConnectionFailureAlertsOnceAndStaysDisconnected(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetUserNotifications", mock.Anything).Return([]domain.Notification{}, nil)
	dialer := new(mockDialer)
	dialer.On("Connect", mock.Anything, "tok").Return(nil, errors.New("refused")).Once()
	alerts := recorder()
	m := NewManager(Options{Directory: dir, Dialer: dialer, Session: validSession, Presenter: alerts, Logger: logging.Discard()})

	require.NoError(t, m.Activate(context.Background()))

	assert.Equal(t, StateDisconnected, m.State())
	require.Equal(t, 1, alerts.Len())
	latest, _ := alerts.Latest()
	assert.Equal(t, alert.Error, latest.Tone)
	dialer.AssertNumberOfCalls(t, "Connect", 1)
}

func TestSubscribeFailureDisconnects(t *testing.T) {
	f := newFixture(t, nil, validSession)
	f.channel.subErr = errors.New("no such topic")

	require.NoError(t, f.manager.Activate(context.Background()))

	assert.Equal(t, StateDisconnected, f.manager.State())
	assert.Equal(t, []string{"disconnect"}, f.channel.Calls())
	assert.Equal(t, 1, f.alerts.Len())
}

func TestBacklogFailureAlertsAndStillConnects(t *testing.T) {
	dir := new(mockDirectory)
	dir.On("GetUserNotifications", mock.Anything).Return(nil, fmt.Errorf("%w: dial tcp", api.ErrUnavailable))
	ch := &fakeChannel{}
	dialer := new(mockDialer)
	dialer.On("Connect", mock.Anything, "tok").Return(ch, nil)
	alerts := recorder()
	m := NewManager(Options{Directory: dir, Dialer: dialer, Session: validSession, Presenter: alerts, Logger: logging.Discard()})

	require.NoError(t, m.Activate(context.Background()))

	assert.Empty(t, m.Notifications())
	assert.Equal(t, StateConnected, m.State())
	latest, ok := alerts.Latest()
	require.True(t, ok)
	assert.Equal(t, api.ErrUnavailable.Error(), latest.Message)
}

func TestInboundMessagesArePrependedNewestFirst(t *testing.T) {
	f := newFixture(t, []domain.Notification{note(1, domain.StatusBorrowed, true)}, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))

	var events []Event
	f.manager.OnEvent(func(ev Event) { events = append(events, ev) })

	f.channel.push(`{"id":2,"status":"BORROWED","message":"Dune was borrowed","read":false}`)
	f.channel.push(`{"id":3,"status":"RETURNED","message":"Dune was returned","read":false}`)
	f.channel.push(`{"id":4,"status":"SOMETHING_ELSE","message":"hello","read":false}`)

	list := f.manager.Notifications()
	require.Len(t, list, 4)
	assert.Equal(t, []int{4, 3, 2, 1}, []int{list[0].IDValue(), list[1].IDValue(), list[2].IDValue(), list[3].IDValue()})
	assert.Equal(t, 3, f.manager.Unread())
	assert.Equal(t, domain.CountUnread(list), f.manager.Unread())

	all := f.alerts.All()
	require.Len(t, all, 3)
	assert.Equal(t, alert.Info, all[0].Tone)
	assert.Equal(t, "Book Borrowed", all[0].Title)
	assert.Equal(t, "Dune was borrowed", all[0].Message)
	assert.Equal(t, alert.Warning, all[1].Tone)
	assert.Equal(t, alert.Neutral, all[2].Tone)
	assert.Equal(t, "New Notification", all[2].Title)

	require.Len(t, events, 3)
	assert.Equal(t, EventReceived, events[2].Kind)
	assert.Equal(t, 3, events[2].Unread)
}

func TestUndecodableMessageIsDropped(t *testing.T) {
	f := newFixture(t, nil, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))

	f.channel.push(`not json`)

	assert.Empty(t, f.manager.Notifications())
	assert.Equal(t, 0, f.manager.Unread())
}

func TestMarkAsRead(t *testing.T) {
	f := newFixture(t, []domain.Notification{
		note(2, domain.StatusBorrowed, false),
		note(1, domain.StatusReturned, false),
	}, validSession)
	f.dir.On("MarkNotificationAsRead", mock.Anything, 2).Return(note(2, domain.StatusBorrowed, true), nil).Once()
	require.NoError(t, f.manager.Activate(context.Background()))

	require.NoError(t, f.manager.MarkAsRead(context.Background(), note(2, domain.StatusBorrowed, false)))

	assert.Equal(t, 1, f.manager.Unread())
	assert.True(t, f.manager.Notifications()[0].Read)
	f.dir.AssertExpectations(t)
}

func TestMarkAsReadNoOps(t *testing.T) {
	f := newFixture(t, []domain.Notification{
		note(2, domain.StatusBorrowed, true),
		note(1, domain.StatusReturned, false),
	}, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))
	ctx := context.Background()

	require.NoError(t, f.manager.MarkAsRead(ctx, domain.Notification{Status: domain.StatusBorrowed}))
	require.NoError(t, f.manager.MarkAsRead(ctx, note(2, domain.StatusBorrowed, false)), "already read locally")
	require.NoError(t, f.manager.MarkAsRead(ctx, note(99, domain.StatusBorrowed, false)), "unknown id")

	f.dir.AssertNotCalled(t, "MarkNotificationAsRead", mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.manager.Unread())
}

func TestMarkAsReadFailureLeavesStateAndAlerts(t *testing.T) {
	f := newFixture(t, []domain.Notification{note(1, domain.StatusBorrowed, false)}, validSession)
	f.dir.On("MarkNotificationAsRead", mock.Anything, 1).
		Return(nil, &api.Error{StatusCode: 404, Message: "Notification not found"}).Once()
	require.NoError(t, f.manager.Activate(context.Background()))

	err := f.manager.MarkAsRead(context.Background(), note(1, domain.StatusBorrowed, false))

	require.Error(t, err)
	assert.Equal(t, 1, f.manager.Unread())
	assert.False(t, f.manager.Notifications()[0].Read)
	latest, _ := f.alerts.Latest()
	assert.Equal(t, "Notification not found", latest.Message)
}

func TestConcurrentMarkAsReadSendsOneRequest(t *testing.T) {
	f := newFixture(t, []domain.Notification{note(1, domain.StatusBorrowed, false)}, validSession)
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	f.dir.On("MarkNotificationAsRead", mock.Anything, 1).
		Run(func(mock.Arguments) {
			entered <- struct{}{}
			<-release
		}).
		Return(note(1, domain.StatusBorrowed, true), nil)
	require.NoError(t, f.manager.Activate(context.Background()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.manager.MarkAsRead(context.Background(), note(1, domain.StatusBorrowed, false))
	}()
	<-entered
	require.NoError(t, f.manager.MarkAsRead(context.Background(), note(1, domain.StatusBorrowed, false)))
	close(release)
	wg.Wait()

	f.dir.AssertNumberOfCalls(t, "MarkNotificationAsRead", 1)
	assert.Equal(t, 0, f.manager.Unread())
}

func TestMarkAllAsRead(t *testing.T) {
	f := newFixture(t, []domain.Notification{
		note(3, domain.StatusBorrowed, false),
		note(2, domain.StatusReturned, false),
		{Status: domain.StatusUnspecified, Message: "no id yet"},
	}, validSession)
	f.dir.On("MarkAllNotificationsAsRead", mock.Anything).Return(nil).Once()
	require.NoError(t, f.manager.Activate(context.Background()))
	f.channel.push(`{"id":4,"status":"BORROWED","message":"new","read":false}`)

	require.NoError(t, f.manager.MarkAllAsRead(context.Background()))

	assert.Equal(t, 0, f.manager.Unread())
	for _, n := range f.manager.Notifications() {
		assert.True(t, n.Read)
	}
}

func TestMarkAllAsReadFailureKeepsCount(t *testing.T) {
	f := newFixture(t, []domain.Notification{note(1, domain.StatusBorrowed, false)}, validSession)
	f.dir.On("MarkAllNotificationsAsRead", mock.Anything).Return(errors.New("boom")).Once()
	require.NoError(t, f.manager.Activate(context.Background()))

	assert.Error(t, f.manager.MarkAllAsRead(context.Background()))
	assert.Equal(t, 1, f.manager.Unread())
}

func TestDeactivateUnsubscribesBeforeDisconnect(t *testing.T) {
	f := newFixture(t, nil, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))

	require.NoError(t, f.manager.Deactivate())
	require.NoError(t, f.manager.Deactivate())

	assert.Equal(t, []string{"subscribe", "unsubscribe", "disconnect"}, f.channel.Calls())
	assert.False(t, f.manager.Active())
}

func TestMessagesAfterDeactivateAreIgnored(t *testing.T) {
	f := newFixture(t, nil, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))
	require.NoError(t, f.manager.Deactivate())

	f.channel.push(`{"id":1,"status":"BORROWED","message":"late","read":false}`)

	assert.Empty(t, f.manager.Notifications())
	assert.Equal(t, 0, f.alerts.Len())
}

func TestUnreadInvariantAcrossMixedSequence(t *testing.T) {
	f := newFixture(t, []domain.Notification{note(1, domain.StatusBorrowed, false)}, validSession)
	f.dir.On("MarkNotificationAsRead", mock.Anything, mock.Anything).Return(domain.Notification{}, nil)
	require.NoError(t, f.manager.Activate(context.Background()))
	ctx := context.Background()

	for i := 2; i <= 6; i++ {
		f.channel.push(fmt.Sprintf(`{"id":%d,"status":"RETURNED","message":"m","read":false}`, i))
		if i%2 == 0 {
			require.NoError(t, f.manager.MarkAsRead(ctx, note(i, domain.StatusReturned, false)))
		}
		list := f.manager.Notifications()
		assert.Equal(t, domain.CountUnread(list), f.manager.Unread())
		assert.Equal(t, i, list[0].IDValue(), "newest first")
	}
}

func TestOnEventCancel(t *testing.T) {
	f := newFixture(t, nil, validSession)
	require.NoError(t, f.manager.Activate(context.Background()))
	count := 0
	cancel := f.manager.OnEvent(func(Event) { count++ })

	f.channel.push(`{"id":1,"status":"BORROWED","message":"a","read":false}`)
	cancel()
	f.channel.push(`{"id":2,"status":"BORROWED","message":"b","read":false}`)

	assert.Equal(t, 1, count)
}

func TestNewManagerPanicsWithoutDirectory(t *testing.T) {
	assert.Panics(t, func() { NewManager(Options{}) })
}

func TestAlertFor(t *testing.T) {
	cases := []struct {
		status domain.NotificationStatus
		tone   alert.Tone
		title  string
	}{
		{domain.StatusBorrowed, alert.Info, "Book Borrowed"},
		{domain.StatusReturned, alert.Warning, "Book Returned"},
		{domain.StatusReturnApproved, alert.Success, "Return Approved"},
		{domain.StatusUnspecified, alert.Neutral, "New Notification"},
		{"WHATEVER", alert.Neutral, "New Notification"},
	}
	for _, tc := range cases {
		tone, title := AlertFor(tc.status)
		assert.Equal(t, tc.tone, tone, tc.status)
		assert.Equal(t, tc.title, title, tc.status)
	}
}
