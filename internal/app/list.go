// Package app holds the use cases behind the CLI commands. Each use case
// takes the narrow client it needs, so commands can be tested with fakes.
package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/format"
)

// ListClient defines dependencies required to list notifications.
type ListClient interface {
	GetUserNotifications(ctx context.Context) ([]domain.Notification, error)
}

// ListOptions holds all filter parameters for listing notifications.
type ListOptions struct {
	Status     string
	ReadFilter string
	Search     string
	Format     string
}

// ListUseCase coordinates list notifications behavior.
type ListUseCase struct {
	client ListClient
}

// NewListUseCase creates a new list use-case.
func NewListUseCase(client ListClient) *ListUseCase {
	if client == nil {
		panic("NewListUseCase: client dependency cannot be nil")
	}
	return &ListUseCase{client: client}
}

// Execute prints notifications according to the provided options.
func (u *ListUseCase) Execute(ctx context.Context, opts ListOptions, w io.Writer) error {
	filter, err := domain.FilterOptions{
		Status:     opts.Status,
		ReadFilter: opts.ReadFilter,
		Query:      opts.Search,
	}.ToFilter()
	if err != nil {
		return err
	}
	formatterType, err := parseFormat(opts.Format)
	if err != nil {
		return err
	}

	list, err := u.client.GetUserNotifications(ctx)
	if err != nil {
		return fmt.Errorf("list: failed to list notifications: %w", err)
	}

	notifications := OrderUnreadFirst(domain.FilterNotifications(list, filter))
	if len(notifications) == 0 && formatterType != format.FormatterTypeJSON {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No notifications found", colors.Reset)
		return nil
	}
	return format.NewFormatter(formatterType).FormatNotifications(notifications, w)
}

func parseFormat(name string) (format.FormatterType, error) {
	if name == "" {
		return format.FormatterTypeSimple, nil
	}
	return format.ParseFormatterType(name)
}

// OrderUnreadFirst places unread notifications before read notifications.
// It keeps the existing relative order within each bucket (stable).
func OrderUnreadFirst(notifs []domain.Notification) []domain.Notification {
	if len(notifs) == 0 {
		return notifs
	}

	ordered := make([]domain.Notification, len(notifs))
	copy(ordered, notifs)

	sort.SliceStable(ordered, func(i, j int) bool {
		return !ordered[i].Read && ordered[j].Read
	})

	return ordered
}
