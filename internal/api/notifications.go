package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cristianoliveira/booknet/internal/domain"
)

// GetUserNotifications lists every notification of the current user.
func (c *Client) GetUserNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := c.do(ctx, http.MethodGet, "users/me/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Notification{}
	}
	return out, nil
}

// MarkNotificationAsRead marks one notification read and returns the
// server's updated copy.
func (c *Client) MarkNotificationAsRead(ctx context.Context, id int) (domain.Notification, error) {
	var out domain.Notification
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("users/me/notifications/%d/read", id), nil, nil, &out)
	return out, err
}

// MarkAllNotificationsAsRead marks every notification of the user read.
func (c *Client) MarkAllNotificationsAsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "users/me/notifications/read-all", nil, nil, nil)
}
