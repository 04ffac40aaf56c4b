package corpus

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// credential is the bearer token currently in use. It is never persisted.
type credential struct {
	token     string
	expiresAt time.Time
}

// exchangeFunc obtains a fresh token. A zero lifetime means the cache's
// configured lifetime applies.
type exchangeFunc func(ctx context.Context) (token string, lifetime time.Duration, err error)

// TokenCache holds exactly one current credential and refreshes it on demand.
// Concurrent callers that find the credential stale share a single exchange.
type TokenCache struct {
	mu       sync.RWMutex
	current  *credential
	buffer   time.Duration
	lifetime time.Duration
	exchange exchangeFunc
	now      func() time.Time
	group    singleflight.Group
}

func NewTokenCache(buffer, lifetime time.Duration, exchange exchangeFunc) *TokenCache {
	return &TokenCache{
		buffer:   buffer,
		lifetime: lifetime,
		exchange: exchange,
		now:      time.Now,
	}
}

// Token returns a valid bearer token, refreshing first when none is cached or
// when now >= expiresAt - buffer.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}
	return c.refresh(ctx, false)
}

// Refresh always performs a credential exchange.
func (c *TokenCache) Refresh(ctx context.Context) (string, error) {
	return c.refresh(ctx, true)
}

// Invalidate drops the current credential so the next Token call refreshes.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

func (c *TokenCache) cached() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return "", false
	}
	if !c.now().Before(c.current.expiresAt.Add(-c.buffer)) {
		return "", false
	}
	return c.current.token, true
}

// refresh shares one exchange between concurrent callers. The exchange runs
// detached from any single caller's cancellation and is bounded by the HTTP
// client timeout; each caller still stops waiting when its own ctx is done.
func (c *TokenCache) refresh(ctx context.Context, force bool) (string, error) {
	exchangeCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan("token", func() (interface{}, error) {
		// A caller that waited on the previous flight may find a fresh token.
		if !force {
			if token, ok := c.cached(); ok {
				return token, nil
			}
		}

		token, lifetime, err := c.exchange(exchangeCtx)
		if err != nil {
			return "", err
		}
		if lifetime <= 0 {
			lifetime = c.lifetime
		}

		c.mu.Lock()
		c.current = &credential{token: token, expiresAt: c.now().Add(lifetime)}
		c.mu.Unlock()

		return token, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
