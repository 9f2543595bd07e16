package common

import (
	"context"
	"testing"
)

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()

	if s := SessionFromContext(ctx); s != nil {
		t.Error("Expected nil Session from empty context")
	}

	ctx = WithSession(ctx, &Session{UserID: "42", Token: "tok"})

	got := SessionFromContext(ctx)
	if got == nil {
		t.Fatal("Expected non-nil Session")
	}
	if got.UserID != "42" || got.Token != "tok" {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestSession_Valid(t *testing.T) {
	tests := []struct {
		name string
		s    *Session
		want bool
	}{
		{"nil", nil, false},
		{"missing token", &Session{UserID: "1"}, false},
		{"missing user", &Session{Token: "tok"}, false},
		{"blank user", &Session{UserID: "  ", Token: "tok"}, false},
		{"complete", &Session{UserID: "1", Token: "tok"}, true},
	}
	for _, tt := range tests {
		if got := tt.s.Valid(); got != tt.want {
			t.Errorf("%s: Valid() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSession_ResolveCurrency(t *testing.T) {
	var s *Session
	if got := s.ResolveCurrency("USD"); got != "USD" {
		t.Errorf("nil session currency = %q, want USD", got)
	}
	s = &Session{DisplayCurrency: "eur"}
	if got := s.ResolveCurrency("USD"); got != "EUR" {
		t.Errorf("session currency = %q, want EUR", got)
	}
}

func TestSession_KeyBindsUserAndToken(t *testing.T) {
	a := &Session{UserID: "1", Token: "tok-a"}

	if a.Key() != (&Session{UserID: "1", Token: "tok-a", DisplayCurrency: "EUR"}).Key() {
		t.Error("Key should not depend on the display currency")
	}
	if a.Key() == (&Session{UserID: "1", Token: "tok-b"}).Key() {
		t.Error("Key should differ for another token of the same user")
	}
	if a.Key() == (&Session{UserID: "2", Token: "tok-a"}).Key() {
		t.Error("Key should differ for another user with the same token")
	}
	if (&Session{UserID: "1", Token: "2x"}).Key() == (&Session{UserID: "12", Token: "x"}).Key() {
		t.Error("Key should keep user id and token apart")
	}
}
