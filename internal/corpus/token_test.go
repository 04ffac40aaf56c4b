package corpus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (c *TokenCache) set(token string, expiresAt time.Time) {
	c.mu.Lock()
	c.current = &credential{token: token, expiresAt: expiresAt}
	c.mu.Unlock()
}

type countingExchange struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (e *countingExchange) exchange(ctx context.Context) (string, time.Duration, error) {
	n := e.calls.Add(1)
	if e.delay > 0 {
		time.Sleep(e.delay)
	}
	if e.err != nil {
		return "", 0, e.err
	}
	return "token-" + string(rune('0'+n)), 0, nil
}

func newTestCache(ex *countingExchange, now time.Time) *TokenCache {
	cache := NewTokenCache(300*time.Second, time.Hour, ex.exchange)
	cache.now = func() time.Time { return now }
	return cache
}

func TestTokenCache_RefreshesInsideBuffer(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ex := &countingExchange{}
	cache := newTestCache(ex, now)
	cache.set("old", now.Add(200*time.Second))

	token, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, int32(1), ex.calls.Load())

	// The fresh credential lasts the configured hour; no further refresh.
	token, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, int32(1), ex.calls.Load())
}

func TestTokenCache_KeepsTokenOutsideBuffer(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ex := &countingExchange{}
	cache := newTestCache(ex, now)
	cache.set("cached", now.Add(400*time.Second))

	token, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", token)
	assert.Equal(t, int32(0), ex.calls.Load())
}

func TestTokenCache_ExactBufferBoundaryRefreshes(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ex := &countingExchange{}
	cache := newTestCache(ex, now)
	cache.set("cached", now.Add(300*time.Second))

	_, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), ex.calls.Load())
}

func TestTokenCache_ConcurrentCallersShareOneRefresh(t *testing.T) {
	ex := &countingExchange{delay: 50 * time.Millisecond}
	cache := newTestCache(ex, time.Now())

	var wg sync.WaitGroup
	tokens := make([]string, 16)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := cache.Token(context.Background())
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ex.calls.Load())
	for _, token := range tokens {
		assert.Equal(t, "token-1", token)
	}
}

func TestTokenCache_ErrorIsNotCached(t *testing.T) {
	ex := &countingExchange{err: errors.New("boom")}
	cache := newTestCache(ex, time.Now())

	_, err := cache.Token(context.Background())
	require.Error(t, err)

	ex.err = nil
	token, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
}

func TestTokenCache_RefreshAndInvalidate(t *testing.T) {
	ex := &countingExchange{}
	cache := newTestCache(ex, time.Now())
	cache.set("cached", time.Now().Add(time.Hour))

	token, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	cache.Invalidate()
	token, err = cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)
}

func TestTokenCache_ServerLifetimeWins(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTokenCache(300*time.Second, time.Hour, func(context.Context) (string, time.Duration, error) {
		return "short", 10 * time.Minute, nil
	})
	cache.now = func() time.Time { return now }

	_, err := cache.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), cache.current.expiresAt)
}

func TestTokenCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var exchangeErr atomic.Value

	cache := NewTokenCache(300*time.Second, time.Hour, func(ctx context.Context) (string, time.Duration, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			exchangeErr.Store(err)
			return "", 0, err
		}
		return "shared", 0, nil
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		_, err := cache.Token(firstCtx)
		firstDone <- err
	}()
	<-started

	secondDone := make(chan string, 1)
	go func() {
		token, err := cache.Token(context.Background())
		assert.NoError(t, err)
		secondDone <- token
	}()

	cancelFirst()
	require.ErrorIs(t, <-firstDone, context.Canceled)

	close(release)
	assert.Equal(t, "shared", <-secondDone)
	assert.Nil(t, exchangeErr.Load())
}
