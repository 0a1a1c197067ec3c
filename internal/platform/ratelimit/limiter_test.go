package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// tolerance absorbs the scheduling gap between a slot being granted and the
// test reading the clock.
const tolerance = 2 * time.Millisecond

func TestLimiter_SpacesConsecutiveCalls(t *testing.T) {
	t.Parallel()

	const interval = 60 * time.Millisecond
	limiter := New(interval)

	stamps := make([]time.Time, 0, 4)
	for i := 0; i < 4; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
		stamps = append(stamps, time.Now())
	}

	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < interval-tolerance {
			t.Fatalf("gap %d = %s, want >= %s", i, gap, interval)
		}
	}
}

func TestLimiter_ConcurrentCallersAreSpaced(t *testing.T) {
	t.Parallel()

	const interval = 40 * time.Millisecond
	limiter := New(interval)

	var (
		mu     sync.Mutex
		stamps []time.Time
		wg     sync.WaitGroup
	)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Wait(context.Background()); err != nil {
				t.Errorf("wait: %v", err)
				return
			}
			mu.Lock()
			stamps = append(stamps, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(stamps) != 3 {
		t.Fatalf("got %d stamps", len(stamps))
	}
	first, last := stamps[0], stamps[0]
	for _, s := range stamps[1:] {
		if s.Before(first) {
			first = s
		}
		if s.After(last) {
			last = s
		}
	}
	if span := last.Sub(first); span < 2*interval-tolerance {
		t.Fatalf("three calls finished within %s, want >= %s", span, 2*interval)
	}
}

func TestLimiter_WaitHonoursCancellation(t *testing.T) {
	t.Parallel()

	limiter := New(time.Hour)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait should be immediate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- limiter.Wait(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("wait did not return after cancellation")
	}
}

func TestLimiter_ObserverSeesWait(t *testing.T) {
	t.Parallel()

	var waits []time.Duration
	limiter := New(30*time.Millisecond, WithWaitObserver(func(d time.Duration) {
		waits = append(waits, d)
	}))

	for i := 0; i < 2; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	if len(waits) != 2 {
		t.Fatalf("observer called %d times", len(waits))
	}
	if waits[1] < 30*time.Millisecond-tolerance {
		t.Fatalf("second wait %s shorter than interval", waits[1])
	}
}
