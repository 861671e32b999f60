package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func okResponse() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"ok":true}`)}
}

func TestRetry(t *testing.T) {
	down := func() MockResponse { return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}} }
	invalid := func() MockResponse {
		return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
	}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", []MockResponse{okResponse()}, false, 1},
		{"transient then success", []MockResponse{down(), okResponse()}, false, 2},
		{"all attempts fail", []MockResponse{down(), down(), down(), okResponse()}, true, 3},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okResponse()}, true, 1},
		{"bad request not retried", []MockResponse{{Err: &ErrInvalidRequest{Err: errors.New("400")}}, okResponse()}, true, 1},
		{"invalid response retried once", []MockResponse{invalid(), invalid(), okResponse()}, true, 2},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, okResponse()}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig(), quietLogger())

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		okResponse(),
	)
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(okResponse())
	p := WithRetry(mock, RetryConfig{}, quietLogger())

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestRetry_BackoffBounded(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	for attempt := 0; attempt < 10; attempt++ {
		wait := r.backoff(attempt, errors.New("x"))
		assert.LessOrEqual(t, wait, 1200*time.Millisecond, "attempt %d", attempt)
		assert.GreaterOrEqual(t, wait, 80*time.Millisecond, "attempt %d", attempt)
	}
}
