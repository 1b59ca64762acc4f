package app

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/booknet/internal/domain"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusClient defines dependencies for status command.
type StatusClient interface {
	GetUserNotifications(ctx context.Context) ([]domain.Notification, error)
}

// StatusUseCase coordinates status behavior.
type StatusUseCase struct {
	client StatusClient
}

// NewStatusUseCase creates a status use-case.
func NewStatusUseCase(client StatusClient) *StatusUseCase {
	if client == nil {
		panic("NewStatusUseCase: client dependency cannot be nil")
	}

	return &StatusUseCase{client: client}
}

// DetermineStatusFormat resolves effective format preserving CLI precedence.
func DetermineStatusFormat(formatFlag, envFormat string, flagChanged bool) string {
	result := formatFlag
	if !flagChanged && envFormat != "" {
		result = envFormat
	}
	if result == "" {
		result = "summary"
	}
	return result
}

// ValidateStatusFormat validates status output format.
func ValidateStatusFormat(formatValue string) error {
	validFormats := map[string]bool{
		"summary":  true,
		"statuses": true,
		"json":     true,
	}

	if !validFormats[formatValue] {
		return fmt.Errorf("status: unknown format: %s", formatValue)
	}

	return nil
}

// StatusCounts summarizes the notification inbox.
type StatusCounts struct {
	Total    int            `json:"total"`
	Unread   int            `json:"unread"`
	ByStatus map[string]int `json:"byStatus"`
}

// CountNotifications computes the counts of notifications. Unspecified
// statuses are counted under "OTHER".
func CountNotifications(notifications []domain.Notification) StatusCounts {
	counts := StatusCounts{
		Total:    len(notifications),
		Unread:   domain.CountUnread(notifications),
		ByStatus: make(map[string]int),
	}
	for _, n := range notifications {
		key := string(n.Status)
		if n.Status == domain.StatusUnspecified {
			key = "OTHER"
		}
		counts.ByStatus[key]++
	}
	return counts
}

// Execute runs status behavior for a validated format.
func (u *StatusUseCase) Execute(ctx context.Context, formatValue string, w io.Writer) error {
	list, err := u.client.GetUserNotifications(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	counts := CountNotifications(list)

	switch formatValue {
	case "summary":
		return formatSummary(counts, w)
	case "statuses":
		return formatStatuses(counts, w)
	case "json":
		return formatJSON(counts, w)
	default:
		return fmt.Errorf("status: unknown format: %s", formatValue)
	}
}

func formatSummary(c StatusCounts, w io.Writer) error {
	if c.Total == 0 {
		_, err := fmt.Fprintln(w, "No notifications")
		return err
	}
	_, err := fmt.Fprintf(w, "%d unread of %d notifications\n", c.Unread, c.Total)
	return err
}

func formatStatuses(c StatusCounts, w io.Writer) error {
	for _, s := range []string{
		string(domain.StatusBorrowed),
		string(domain.StatusReturned),
		string(domain.StatusReturnApproved),
		"OTHER",
	} {
		if _, err := fmt.Fprintf(w, "%-16s %d\n", s, c.ByStatus[s]); err != nil {
			return err
		}
	}
	return nil
}

func formatJSON(c StatusCounts, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
