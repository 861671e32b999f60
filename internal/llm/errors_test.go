package llm

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestStatusError(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusTooManyRequests, "rate"},
		{http.StatusBadRequest, "invalid"},
		{http.StatusUnauthorized, "invalid"},
		{http.StatusForbidden, "invalid"},
		{http.StatusNotFound, "invalid"},
		{http.StatusInternalServerError, "unavailable"},
		{529, "unavailable"},
		{0, "unavailable"},
	}

	for _, tt := range tests {
		err := statusError(tt.status, nil, cause)
		var (
			rl  *ErrRateLimit
			inv *ErrInvalidRequest
			un  *ErrProviderUnavailable
		)
		var got string
		switch {
		case errors.As(err, &rl):
			got = "rate"
		case errors.As(err, &inv):
			got = "invalid"
		case errors.As(err, &un):
			got = "unavailable"
		}
		if got != tt.want {
			t.Errorf("status %d: got %T, want %s", tt.status, err, tt.want)
		}
		if !errors.Is(err, cause) {
			t.Errorf("status %d: cause not wrapped", tt.status)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	header := func(v string) http.Header {
		h := http.Header{}
		h.Set("Retry-After", v)
		return h
	}

	if got := retryAfter(nil); got != 0 {
		t.Errorf("nil header = %v, want 0", got)
	}
	if got := retryAfter(header("12")); got != 12*time.Second {
		t.Errorf("seconds = %v, want 12s", got)
	}
	if got := retryAfter(header("-3")); got != 0 {
		t.Errorf("negative seconds = %v, want 0", got)
	}
	if got := retryAfter(header("soon")); got != 0 {
		t.Errorf("garbage = %v, want 0", got)
	}
	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	if got := retryAfter(header(past)); got != 0 {
		t.Errorf("past date = %v, want 0", got)
	}
	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	if got := retryAfter(header(future)); got <= 50*time.Minute || got > time.Hour {
		t.Errorf("future date = %v, want about an hour", got)
	}
}

func TestRequestCheck(t *testing.T) {
	msgs := []Message{{Role: RoleUser, Content: "hi"}}
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"ok", Request{Messages: msgs}, false},
		{"ok with schema", Request{Messages: msgs, Schema: questionSchema()}, false},
		{"no messages", Request{}, true},
		{"unnamed schema", Request{Messages: msgs, Schema: &Schema{Definition: map[string]any{"type": "object"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.check()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidRequest
			if !errors.As(err, &inv) {
				t.Errorf("expected *ErrInvalidRequest, got %T: %v", err, err)
			}
		})
	}
}
