package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// Key addresses one cached provider response. Provider is always part of the
// rendered key so two providers can never read each other's entries.
type Key struct {
	Provider string
	Resource string
	ID       string
	Sub      string
}

func (k Key) String() string {
	parts := []string{k.Provider, k.Resource, k.ID}
	if k.Sub != "" {
		parts = append(parts, k.Sub)
	}
	return strings.Join(parts, ":")
}

// Prefix renders the key up to and including Resource, for DeletePrefix.
func (k Key) Prefix() string {
	return k.Provider + ":" + k.Resource + ":"
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-memory TTL cache with lazy expiry. Stale entries are dropped
// on the read that finds them; there is no sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clockwork.Clock
	flight  singleflight.Group
}

func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

func (s *Store) Get(_ context.Context, key Key) (any, bool) {
	k := key.String()

	now := s.clock.Now()
	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
		s.mu.Lock()
		if current, still := s.entries[k]; still && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, k)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value for ttl. A non-positive ttl keeps the entry until deleted.
func (s *Store) Set(_ context.Context, key Key, value any, ttl time.Duration) {
	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = s.clock.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key.String()] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key Key) {
	s.mu.Lock()
	delete(s.entries, key.String())
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Len counts entries, stale ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value for key or runs loader once per key,
// however many callers are waiting. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key Key, ttl time.Duration, loader func(context.Context) (any, error)) (any, bool, error) {
	if loader == nil {
		return nil, false, fmt.Errorf("loader is required")
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, true, nil
	}

	value, err := s.load(ctx, key, ttl, loader)
	// A waiter inherits the leader's cancellation; reload once as the leader.
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		value, err = s.load(ctx, key, ttl, loader)
	}
	if err != nil {
		return nil, false, err
	}

	return value, false, nil
}

func (s *Store) load(ctx context.Context, key Key, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	value, err, _ := s.flight.Do(key.String(), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded, ttl)
		return loaded, nil
	})
	return value, err
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, s *Store, key Key, ttl time.Duration, loader func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	value, hit, err := s.GetOrLoad(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, false, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false, fmt.Errorf("cache entry %s has type %T", key, value)
	}
	return typed, hit, nil
}
