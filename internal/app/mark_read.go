package app

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/domain"
)

// MarkReadClient defines dependencies required to mark notifications read.
type MarkReadClient interface {
	MarkNotificationAsRead(ctx context.Context, id int) (domain.Notification, error)
	MarkAllNotificationsAsRead(ctx context.Context) error
}

// MarkReadUseCase coordinates mark-read behavior.
type MarkReadUseCase struct {
	client MarkReadClient
}

// NewMarkReadUseCase creates a new mark-read use-case.
func NewMarkReadUseCase(client MarkReadClient) *MarkReadUseCase {
	if client == nil {
		panic("NewMarkReadUseCase: client dependency cannot be nil")
	}
	return &MarkReadUseCase{client: client}
}

// Execute marks the notification with id as read.
func (u *MarkReadUseCase) Execute(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("mark-read: invalid notification id %d", id)
	}
	if _, err := u.client.MarkNotificationAsRead(ctx, id); err != nil {
		return fmt.Errorf("mark-read: %w", err)
	}

	colors.Success(fmt.Sprintf("Notification %d marked as read", id))
	return nil
}

// ExecuteAll marks every notification of the user as read.
func (u *MarkReadUseCase) ExecuteAll(ctx context.Context) error {
	if err := u.client.MarkAllNotificationsAsRead(ctx); err != nil {
		return fmt.Errorf("mark-read: %w", err)
	}

	colors.Success("All notifications marked as read")
	return nil
}
