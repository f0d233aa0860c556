// Package retry implements exponential backoff with jitter, used when
// connecting to external systems (Postgres, Kafka) that may come up after
// the API does.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var (
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	ErrContextCanceled    = errors.New("context canceled during retry")
)

// Config controls the backoff schedule
type Config struct {
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int
	// InitialInterval is the wait before the first retry (default 1s)
	InitialInterval time.Duration
	// MaxInterval caps the backoff interval (default 30s)
	MaxInterval time.Duration
	// Multiplier grows the interval after each retry (default 2.0)
	Multiplier float64
	// JitterFactor randomizes each interval by ±factor (default 0.1)
	JitterFactor float64
}

// DefaultConfig retries five times: 1s, 2s, 4s, 8s, 16s, each ±10%
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:      5,
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.InitialInterval <= 0 {
		out.InitialInterval = time.Second
	}
	if out.MaxInterval <= 0 {
		out.MaxInterval = 30 * time.Second
	}
	if out.Multiplier <= 0 {
		out.Multiplier = 2.0
	}
	if out.JitterFactor < 0 || out.JitterFactor > 1 {
		out.JitterFactor = 0.1
	}
	return &out
}

// Operation is the function to be retried
type Operation func(ctx context.Context) error

// PermanentError stops retrying immediately. Wrap errors that more
// attempts cannot fix, like bad credentials or malformed config.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks an error as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// Result reports how a retried operation ended
type Result struct {
	// Err is nil on success
	Err error
	// Attempts counts every attempt including the first
	Attempts int
	// Elapsed is the total time spent including waits
	Elapsed time.Duration
}

// Do runs op until it succeeds, returns a permanent error, exhausts the
// retry budget, or the context ends. A nil config uses DefaultConfig.
func Do(ctx context.Context, cfg *Config, op Operation) *Result {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.withDefaults()

	start := time.Now()
	result := &Result{}

	for attempt := 0; ; attempt++ {
		result.Attempts = attempt + 1

		if ctx.Err() != nil {
			result.Err = ErrContextCanceled
			result.Elapsed = time.Since(start)
			return result
		}

		err := op(ctx)
		if err == nil {
			result.Elapsed = time.Since(start)
			return result
		}

		var permanent *PermanentError
		if errors.As(err, &permanent) {
			result.Err = permanent.Err
			result.Elapsed = time.Since(start)
			return result
		}

		if attempt == cfg.MaxRetries {
			result.Err = ErrMaxRetriesExceeded
			result.Elapsed = time.Since(start)
			return result
		}

		select {
		case <-ctx.Done():
			result.Err = ErrContextCanceled
			result.Elapsed = time.Since(start)
			return result
		case <-time.After(cfg.interval(attempt)):
		}
	}
}

// interval computes the backoff for the given zero-based attempt
func (c *Config) interval(attempt int) time.Duration {
	backoff := float64(c.InitialInterval) * math.Pow(c.Multiplier, float64(attempt))

	if c.JitterFactor > 0 {
		jitter := backoff * c.JitterFactor
		backoff += (rand.Float64()*2 - 1) * jitter
	}

	if backoff > float64(c.MaxInterval) {
		backoff = float64(c.MaxInterval)
	}
	if backoff < 0 {
		backoff = float64(c.InitialInterval)
	}
	return time.Duration(backoff)
}
