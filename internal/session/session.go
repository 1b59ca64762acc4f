// Package session decodes the bearer credential used against the book
// network API and persists it between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned when no credential is stored or configured.
var ErrNoToken = errors.New("no session token")

// Source exposes the current credential and the identity decoded from it.
type Source interface {
	// Token returns the raw bearer token, or "" when none is present.
	Token() string
	// UserID returns the decoded user identifier.
	UserID() (string, bool)
	// DisplayName returns the first word of the user's full name.
	DisplayName() (string, bool)
	// Valid reports whether a non-expired credential is present.
	Valid() bool
}

// Session is a Source backed by a JWT issued by the backend. The signature is
// not verified: the server remains the authority, the client only reads the
// identity claims it was handed.
type Session struct {
	token  string
	claims jwt.MapClaims
	err    error
	now    func() time.Time
}

var _ Source = (*Session)(nil)

// New decodes token. A malformed token yields a Session that reports itself
// invalid; Err exposes the decode failure.
func New(token string) *Session {
	s := &Session{token: strings.TrimSpace(token), now: time.Now}
	if s.token == "" {
		s.err = ErrNoToken
		return s
	}
	parser := jwt.NewParser(jwt.WithJSONNumber())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		s.err = fmt.Errorf("decode session token: %w", err)
		return s
	}
	s.claims = claims
	return s
}

// Anonymous returns a Session with no credential.
func Anonymous() *Session {
	return New("")
}

// WithClock overrides the clock used for expiry checks.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Err returns why the token could not be decoded, if it could not.
func (s *Session) Err() error {
	return s.err
}

// Token returns the raw bearer token.
func (s *Session) Token() string {
	return s.token
}

// Valid reports whether the token decoded and has not expired.
func (s *Session) Valid() bool {
	if s.err != nil || s.claims == nil {
		return false
	}
	exp, err := s.claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp != nil && !s.now().Before(exp.Time) {
		return false
	}
	return true
}

// ExpiresAt returns the token expiry, if the token carries one.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s.claims == nil {
		return time.Time{}, false
	}
	exp, err := s.claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// UserID returns the userId claim rendered as a string.
func (s *Session) UserID() (string, bool) {
	if s.claims == nil {
		return "", false
	}
	switch v := s.claims["userId"].(type) {
	case json.Number:
		return v.String(), v.String() != ""
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// FullName returns the fullName claim.
func (s *Session) FullName() (string, bool) {
	if s.claims == nil {
		return "", false
	}
	name, ok := s.claims["fullName"].(string)
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}

// DisplayName returns the first word of the full name.
func (s *Session) DisplayName() (string, bool) {
	full, ok := s.FullName()
	if !ok {
		return "", false
	}
	return strings.Fields(full)[0], true
}

// Subject returns the standard sub claim, the account e-mail on this backend.
func (s *Session) Subject() string {
	if s.claims == nil {
		return ""
	}
	sub, _ := s.claims.GetSubject()
	return sub
}

// Authorities returns the role names granted to the user.
func (s *Session) Authorities() []string {
	if s.claims == nil {
		return nil
	}
	raw, ok := s.claims["authorities"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		if name, ok := a.(string); ok {
			out = append(out, name)
		}
	}
	return out
}
