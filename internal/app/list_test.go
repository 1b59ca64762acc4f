package app

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inbox() []domain.Notification {
	return []domain.Notification{
		note(3, domain.StatusReturned, true, "Ubik came back"),
		note(2, domain.StatusBorrowed, false, "Dune was borrowed"),
		note(1, domain.StatusReturnApproved, false, "Return approved"),
	}
}

func TestListOrdersUnreadFirst(t *testing.T) {
	client := &mockClient{}
	client.On("GetUserNotifications", mock.Anything).Return(inbox(), nil)

	var buf bytes.Buffer
	err := NewListUseCase(client).Execute(context.Background(), ListOptions{Format: "compact"}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "Dune was borrowed\nReturn approved\nUbik came back\n", buf.String())
}

func TestListFilters(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want string
	}{
		{"unread", ListOptions{ReadFilter: "unread"}, "Dune was borrowed\nReturn approved\n"},
		{"status", ListOptions{Status: "returned"}, "Ubik came back\n"},
		{"search", ListOptions{Search: "DUNE"}, "Dune was borrowed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{}
			client.On("GetUserNotifications", mock.Anything).Return(inbox(), nil)
			tt.opts.Format = "compact"

			var buf bytes.Buffer
			require.NoError(t, NewListUseCase(client).Execute(context.Background(), tt.opts, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestListEmpty(t *testing.T) {
	client := &mockClient{}
	client.On("GetUserNotifications", mock.Anything).Return(inbox(), nil)

	var buf bytes.Buffer
	err := NewListUseCase(client).Execute(context.Background(), ListOptions{Search: "solaris"}, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No notifications found")
}

func TestListRejectsBadOptionsBeforeFetching(t *testing.T) {
	client := &mockClient{}
	u := NewListUseCase(client)

	assert.Error(t, u.Execute(context.Background(), ListOptions{Status: "LOST"}, &bytes.Buffer{}))
	assert.Error(t, u.Execute(context.Background(), ListOptions{ReadFilter: "maybe"}, &bytes.Buffer{}))
	assert.Error(t, u.Execute(context.Background(), ListOptions{Format: "xml"}, &bytes.Buffer{}))
	client.AssertNotCalled(t, "GetUserNotifications", mock.Anything)
}

func TestListFetchError(t *testing.T) {
	client := &mockClient{}
	client.On("GetUserNotifications", mock.Anything).Return(nil, errors.New("offline"))

	err := NewListUseCase(client).Execute(context.Background(), ListOptions{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "offline")
}

func TestNewListUseCasePanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewListUseCase(nil) })
}

func TestMarkRead(t *testing.T) {
	out, _ := captureConsole(t)
	client := &mockClient{}
	client.On("MarkNotificationAsRead", mock.Anything, 4).Return(nil)
	client.On("MarkAllNotificationsAsRead", mock.Anything).Return(nil)
	u := NewMarkReadUseCase(client)

	require.NoError(t, u.Execute(context.Background(), 4))
	require.NoError(t, u.ExecuteAll(context.Background()))
	assert.Contains(t, out.String(), "Notification 4 marked as read")
	assert.Contains(t, out.String(), "All notifications marked as read")

	assert.Error(t, u.Execute(context.Background(), 0))
}

func TestMarkReadError(t *testing.T) {
	client := &mockClient{}
	client.On("MarkNotificationAsRead", mock.Anything, 9).Return(errors.New("not found"))

	err := NewMarkReadUseCase(client).Execute(context.Background(), 9)
	assert.ErrorContains(t, err, "mark-read: not found")
}

func TestStatus(t *testing.T) {
	client := &mockClient{}
	client.On("GetUserNotifications", mock.Anything).Return(inbox(), nil)
	u := NewStatusUseCase(client)

	var buf bytes.Buffer
	require.NoError(t, u.Execute(context.Background(), "summary", &buf))
	assert.Equal(t, "2 unread of 3 notifications\n", buf.String())

	buf.Reset()
	require.NoError(t, u.Execute(context.Background(), "json", &buf))
	assert.JSONEq(t, `{"total":3,"unread":2,"byStatus":{"BORROWED":1,"RETURNED":1,"RETURN_APPROVED":1}}`, buf.String())

	assert.Error(t, u.Execute(context.Background(), "levels", &buf))
}

func TestDetermineStatusFormat(t *testing.T) {
	assert.Equal(t, "summary", DetermineStatusFormat("", "", false))
	assert.Equal(t, "json", DetermineStatusFormat("summary", "json", false))
	assert.Equal(t, "summary", DetermineStatusFormat("summary", "json", true))
	assert.NoError(t, ValidateStatusFormat("statuses"))
	assert.Error(t, ValidateStatusFormat("panes"))
}
