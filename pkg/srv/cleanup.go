package srv

import "context"

// cleanupService only does work on Shutdown.
type cleanupService struct {
	cleanup func() error
}

func (c *cleanupService) Start(context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(context.Context) error {
	if c.cleanup != nil {
		return c.cleanup()
	}
	return nil
}

func NewCleanup(fn func() error) Service {
	return &cleanupService{cleanup: fn}
}

// NewCleanupFunc wraps a cleanup that cannot fail, like a log flush.
func NewCleanupFunc(fn func()) Service {
	return NewCleanup(func() error {
		fn()
		return nil
	})
}
