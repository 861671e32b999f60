package ratelimit

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/questiongen"
)

// testCounterStore runs the behaviour every CounterStore must share.
func testCounterStore(t *testing.T, s CounterStore) {
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	start := time.Now()
	n, resetAt, err := s.Incr(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.WithinDuration(t, start.Add(time.Minute), resetAt, 2*time.Second)

	n, resetAt2, err := s.Incr(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.WithinDuration(t, resetAt, resetAt2, 2*time.Second, "window must not slide")

	n, _, err = s.Incr(ctx, key+":other", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "keys are independent")
}

func TestMemoryStore_Contract(t *testing.T) {
	testCounterStore(t, NewMemoryStore())
}

func TestRedisStore_Contract(t *testing.T) {
	addr := os.Getenv("PREPDECK_TEST_REDIS")
	if addr == "" {
		t.Skip("PREPDECK_TEST_REDIS not set")
	}
	s, err := DialRedis(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	testCounterStore(t, s)
}

func TestMemoryStore_WindowResets(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := s.Incr(ctx, "k", time.Minute)
		require.NoError(t, err)
	}

	now = now.Add(time.Minute)
	n, resetAt, err := s.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, now.Add(time.Minute), resetAt)
}

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	l := NewLimiter(store, 2, time.Hour)
	l.now = store.now
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, "u1"))
	require.NoError(t, l.Allow(ctx, "u1"))

	now = now.Add(15 * time.Minute)
	err := l.Allow(ctx, "u1")
	var limited *ErrLimited
	require.ErrorAs(t, err, &limited)
	assert.Equal(t, 45*time.Minute, limited.RetryAfter)
	assert.Equal(t, 2, limited.Limit)

	assert.NoError(t, l.Allow(ctx, "u2"), "other users have their own window")

	now = now.Add(time.Hour)
	assert.NoError(t, l.Allow(ctx, "u1"), "window reset")
}

func TestLimiter_ZeroLimitDisables(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 0, time.Hour)
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Allow(context.Background(), "u"))
	}
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

func TestLimiter_StoreError(t *testing.T) {
	err := NewLimiter(failingStore{}, 1, time.Hour).Allow(context.Background(), "u")
	require.Error(t, err)
	var limited *ErrLimited
	assert.False(t, errors.As(err, &limited))
}

func TestGenerator_LimitsPerUser(t *testing.T) {
	gen := WrapGenerator(questiongen.NewStaticGenerator(), NewLimiter(NewMemoryStore(), 1, time.Hour))
	ctx := context.Background()

	qs, err := gen.Generate(ctx, questiongen.GenerateInput{UserID: "u1", Role: "SWE"})
	require.NoError(t, err)
	assert.Len(t, qs, 1)

	_, err = gen.Generate(ctx, questiongen.GenerateInput{UserID: "u1", Role: "SWE"})
	var limited *ErrLimited
	assert.ErrorAs(t, err, &limited)

	_, err = gen.Generate(ctx, questiongen.GenerateInput{UserID: "u2", Role: "SWE"})
	assert.NoError(t, err)
}
