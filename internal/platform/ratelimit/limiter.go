package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const DefaultMinInterval = time.Second

// Limiter spaces dispatched requests of one client by at least a fixed
// interval. Waiters are served in call order, and every Wait consumes a slot
// whether or not the request it guards later succeeds.
type Limiter struct {
	limiter  *rate.Limiter
	interval time.Duration
	observe  func(time.Duration)
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithWaitObserver reports how long each successful Wait blocked.
func WithWaitObserver(fn func(time.Duration)) Option {
	return func(l *Limiter) {
		l.observe = fn
	}
}

func New(minInterval time.Duration, opts ...Option) *Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}

	l := &Limiter{
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		interval: minInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until the caller may dispatch. If ctx ends first the reserved
// slot is handed back and ctx's error is returned.
func (l *Limiter) Wait(ctx context.Context) error {
	started := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	if l.observe != nil {
		l.observe(time.Since(started))
	}
	return nil
}

func (l *Limiter) Interval() time.Duration {
	return l.interval
}
