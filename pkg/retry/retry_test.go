package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recorder replaces the real sleep and keeps every requested delay.
type recorder struct {
	delays []time.Duration
}

func (r *recorder) sleep(ctx context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return ctx.Err()
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	ctx := context.Background()
	retrier := NewDefaultRetrier()

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	cfg := NewLinearConfig(3, 2*time.Second)
	cfg.Sleep = rec.sleep
	retrier := NewRetrier(cfg)

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		if counter < 3 {
			return errors.New("temporary error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}

	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(rec.delays) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), rec.delays)
	}
	for i := range want {
		if rec.delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i, rec.delays[i], want[i])
		}
	}
}

func TestRetry_MaxAttemptsExceeded(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	cfg := NewLinearConfig(3, time.Second)
	cfg.Sleep = rec.sleep
	retrier := NewRetrier(cfg)

	expectedErr := errors.New("permanent error")
	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return expectedErr
	})
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
	// no sleep after the last attempt
	if len(rec.delays) != 2 {
		t.Errorf("expected 2 sleeps, got %d", len(rec.delays))
	}
}

func TestRetry_ShouldRetryStopsEarly(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	fatal := errors.New("bad request")

	cfg := NewLinearConfig(3, time.Second)
	cfg.Sleep = rec.sleep
	cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, fatal) }
	retrier := NewRetrier(cfg)

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Errorf("expected %v, got %v", fatal, err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
	if len(rec.delays) != 0 {
		t.Errorf("expected no sleeps, got %v", rec.delays)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewDefaultRetrier()

	err := retrier.Do(ctx, func() error {
		cancel()
		return errors.New("operation error after cancel")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExponential_Capped(t *testing.T) {
	b := Exponential(100*time.Millisecond, 2.0, 350*time.Millisecond)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 350 * time.Millisecond},
		{6, 350 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := b(tt.attempt); got != tt.want {
			t.Errorf("Exponential(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestRetry_RealSleepWaits(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(NewLinearConfig(2, 20*time.Millisecond))

	start := time.Now()
	_ = retrier.Do(ctx, func() error { return errors.New("error") })

	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected at least 20ms of backoff, got %v", elapsed)
	}
}
