package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/booknet/internal/colors"
	"github.com/cristianoliveira/booknet/internal/session"
)

// SessionClient defines dependencies required by session commands.
// *session.Store implements it.
type SessionClient interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
	Path() string
}

// SessionUseCase coordinates session command behavior.
type SessionUseCase struct {
	client SessionClient
	now    func() time.Time
}

// NewSessionUseCase creates a session use-case.
func NewSessionUseCase(client SessionClient) *SessionUseCase {
	if client == nil {
		panic("NewSessionUseCase: client dependency cannot be nil")
	}

	return &SessionUseCase{client: client, now: time.Now}
}

// Set validates token and stores it.
func (u *SessionUseCase) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("session: %w", session.ErrNoToken)
	}
	s := session.New(token).WithClock(u.now)
	if err := s.Err(); err != nil {
		return fmt.Errorf("session: invalid token: %w", err)
	}
	if err := u.client.Save(token); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if !s.Valid() {
		colors.Warning("Token is expired; sign in again to receive notifications")
	}
	colors.Success(fmt.Sprintf("Session saved to %s", u.client.Path()))
	return nil
}

// Show describes the active session. A configured token takes precedence
// over the stored one.
func (u *SessionUseCase) Show(configured string, w io.Writer) error {
	token, source := strings.TrimSpace(configured), "config"
	if token == "" {
		var err error
		token, err = u.client.Load()
		if errors.Is(err, session.ErrNoToken) {
			_, _ = fmt.Fprintln(w, "No session")
			return nil
		}
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
		source = u.client.Path()
	}

	s := session.New(token).WithClock(u.now)
	if err := s.Err(); err != nil {
		return fmt.Errorf("session: stored token is invalid: %w", err)
	}

	userID, _ := s.UserID()
	name, _ := s.FullName()
	expires := "never"
	if exp, ok := s.ExpiresAt(); ok {
		expires = exp.Local().Format(time.RFC3339)
	}
	status := "valid"
	if !s.Valid() {
		status = "expired"
	}

	rows := [][2]string{
		{"User", userID},
		{"Name", name},
		{"Email", s.Subject()},
		{"Roles", strings.Join(s.Authorities(), ", ")},
		{"Expires", expires},
		{"Status", status},
		{"Source", source},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-8s %s\n", r[0]+":", r[1]); err != nil {
			return err
		}
	}
	return nil
}

// ClearSessionInput contains clear options and environment adapters.
type ClearSessionInput struct {
	Force     bool
	GetEnv    func(string) string
	ConfirmFn func() bool
}

// Clear removes the stored token.
func (u *SessionUseCase) Clear(input ClearSessionInput) error {
	getEnv := input.GetEnv
	if getEnv == nil {
		getEnv = func(string) string { return "" }
	}

	if !input.Force && getEnv("CI") == "" {
		if input.ConfirmFn != nil && !input.ConfirmFn() {
			colors.Info("Operation cancelled")
			return nil
		}
	}

	if err := u.client.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	colors.Success("Session cleared")
	return nil
}
