package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cristianoliveira/booknet/internal/alert"
	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/cristianoliveira/booknet/internal/logging"
	"github.com/cristianoliveira/booknet/internal/notify"
)

const followBuffer = 64

var (
	// ErrNoLiveChannel is returned when the push channel could not be opened
	// because there is no valid session or no channel is configured.
	ErrNoLiveChannel = errors.New("live notifications need a valid session and ws_url")
	// ErrChannelLost is returned when the push channel drops. It is not
	// reopened.
	ErrChannelLost = errors.New("notification channel lost")
)

// FollowSource is the notification channel followed by the command.
// *notify.Manager implements it.
type FollowSource interface {
	Activate(ctx context.Context) error
	Deactivate() error
	OnEvent(fn func(notify.Event)) (cancel func())
	State() notify.State
}

// FollowOptions holds all parameters for follow behavior.
type FollowOptions struct {
	Output io.Writer
	Logger logging.Logger
	Now    func() time.Time
}

// FollowUseCase coordinates follow behavior.
type FollowUseCase struct {
	source FollowSource
}

// NewFollowUseCase creates a follow use-case.
func NewFollowUseCase(source FollowSource) *FollowUseCase {
	if source == nil {
		panic("NewFollowUseCase: source dependency cannot be nil")
	}
	return &FollowUseCase{source: source}
}

// Execute activates the channel and prints every live notification until
// interruption or cancellation. The channel is torn down on return.
func (u *FollowUseCase) Execute(ctx context.Context, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	received := make(chan domain.Notification, followBuffer)
	lost := make(chan struct{}, 1)
	cancel := u.source.OnEvent(func(ev notify.Event) {
		if ev.Kind == notify.EventStateChanged && ev.State == notify.StateDisconnected {
			select {
			case lost <- struct{}{}:
			default:
			}
			return
		}
		if ev.Kind != notify.EventReceived {
			return
		}
		select {
		case received <- ev.Notification:
		default:
			opts.Logger.Warn("follow: output is behind, dropping notification", "id", ev.Notification.IDValue())
		}
	})
	defer cancel()

	if err := u.source.Activate(ctx); err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	defer func() {
		if err := u.source.Deactivate(); err != nil {
			opts.Logger.Warn("follow: channel teardown failed", "error", err)
		}
	}()

	switch u.source.State() {
	case notify.StateIdle:
		return fmt.Errorf("follow: %w", ErrNoLiveChannel)
	case notify.StateDisconnected:
		return fmt.Errorf("follow: %w", ErrChannelLost)
	}

	colors.Info("Following notifications (Ctrl+C to stop)...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigChan:
			_, _ = fmt.Fprintf(opts.Output, "\nReceived signal %v, stopping...\n", sig)
			return nil
		case n := <-received:
			printFollowNotification(n, opts.Output, opts.Now())
		case <-lost:
			return fmt.Errorf("follow: %w", ErrChannelLost)
		}
	}
}

func printFollowNotification(n domain.Notification, w io.Writer, now time.Time) {
	tone, title := notify.AlertFor(n.Status)
	msg := fmt.Sprintf("[%s] %s: %s", formatFollowTimestamp(n.CreatedAt, now), title, n.Message)
	if color := followColorForTone(tone); color != "" {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", color, msg, colors.Reset)
	} else {
		_, _ = fmt.Fprintln(w, msg)
	}
	if n.BookTitle != "" {
		_, _ = fmt.Fprintf(w, "  └─ Book: %s\n", n.BookTitle)
	}
}

// formatFollowTimestamp shortens ISO timestamps to "2006-01-02 15:04:05".
// Pushed notifications may carry no timestamp; the receive time is used.
func formatFollowTimestamp(ts string, now time.Time) string {
	if ts == "" {
		return now.Format("2006-01-02 15:04:05")
	}
	if len(ts) >= 19 && ts[10] == 'T' {
		return ts[:10] + " " + ts[11:19]
	}
	return ts
}

func followColorForTone(tone alert.Tone) string {
	switch tone {
	case alert.Error:
		return colors.Red
	case alert.Warning:
		return colors.Yellow
	case alert.Success:
		return colors.Green
	case alert.Info:
		return colors.Blue
	default:
		return ""
	}
}
