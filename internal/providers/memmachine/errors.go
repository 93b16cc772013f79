package memmachine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrDegraded means every attempt hit a transient failure (503 or timeout).
	ErrDegraded = errors.New("memory service temporarily degraded")
	// ErrRejected means the service answered with a non-retryable status.
	ErrRejected = errors.New("memory service rejected request")
)

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Code)
	}
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusServiceUnavailable
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// classify tags the final error of a call with its category.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isRetryable(err) {
		return fmt.Errorf("%w: %w", ErrDegraded, err)
	}
	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}
