package resilience

import (
	"errors"

	"github.com/riskibarqy/fantasy-sync/internal/platform/logging"
	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker guards calls to one upstream. Only errors for which countsAsFailure
// returns true move it toward the open state.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewBreaker(name string, cfg CircuitBreakerConfig, countsAsFailure func(error) bool, logger *logging.Logger) *Breaker {
	if !cfg.Enabled {
		return &Breaker{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	if countsAsFailure == nil {
		countsAsFailure = func(err error) bool { return err != nil }
	}
	cfg = NormalizeCircuitBreakerConfig(cfg)

	threshold := uint32(cfg.FailureThreshold)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAsFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn through the breaker. A rejected call returns ErrCircuitOpen
// without running fn.
func (b *Breaker) Execute(fn func() error) error {
	if b == nil || b.cb == nil {
		return fn()
	}

	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

func (b *Breaker) State() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
