package retry

import (
	"context"
	"math/rand"
	"time"
)

type Operation = func() error

// Backoff returns the delay before the next attempt. attempt is 1-based and
// refers to the attempt that just failed.
type Backoff func(attempt int) time.Duration

// Linear waits step*attempt: step, 2*step, 3*step...
func Linear(step time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return step * time.Duration(attempt)
	}
}

// Exponential starts at initial and multiplies by factor, capped at max.
func Exponential(initial time.Duration, factor float64, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := float64(initial)
		for i := 1; i < attempt; i++ {
			d *= factor
			if time.Duration(d) > max {
				return max
			}
		}
		return time.Duration(d)
	}
}

type Config struct {
	// MaxAttempts is the total number of calls, including the first one.
	MaxAttempts int
	Backoff     Backoff
	Jitter      time.Duration
	// ShouldRetry classifies errors. Nil retries every error.
	ShouldRetry func(err error) bool
	// Sleep waits between attempts. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxAttempts: 6,
		Backoff:     Exponential(300*time.Millisecond, 2.15, 20*time.Second),
		Jitter:      50 * time.Millisecond,
	}
}

func NewLinearConfig(attempts int, step time.Duration) *Config {
	return &Config{
		MaxAttempts: attempts,
		Backoff:     Linear(step),
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
	}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Do runs op until it succeeds, returns a non-retryable error, the attempts
// are exhausted or ctx is done. The error of the last attempt is returned.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	attempts := r.config.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := r.config.Backoff
	if backoff == nil {
		backoff = Linear(0)
	}
	sleep := r.config.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var err error
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		if attempt == attempts {
			return err
		}
		if r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return err
		}

		delay := backoff(attempt)
		if r.config.Jitter > 0 {
			delay += time.Duration(rnd.Float64() * float64(r.config.Jitter))
		}

		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
