package common

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNoSession is returned when a request carries no token or user id.
var ErrNoSession = errors.New("no active session")

// Session is the per-request identity resolved by the session guard.
// It is passed explicitly into every service call that talks to the backend.
type Session struct {
	UserID          string
	Token           string
	DisplayCurrency string
}

// Valid reports whether both the token and the user id are present.
func (s *Session) Valid() bool {
	return s != nil && strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.UserID) != ""
}

// Key identifies the state held for this session. It is derived from both the
// user id and the token, so a request naming another user's id with a
// different token never reaches that user's state.
func (s *Session) Key() string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.UserID+"\x00"+s.Token)).String()
}

type contextKey int

const sessionKey contextKey = iota

// WithSession stores a Session in the request context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext retrieves the Session from context, or nil if absent.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// ResolveCurrency returns the session display currency when set, otherwise the fallback.
func (s *Session) ResolveCurrency(fallback string) string {
	if s != nil && s.DisplayCurrency != "" {
		return strings.ToUpper(s.DisplayCurrency)
	}
	return fallback
}
