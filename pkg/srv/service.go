package srv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/memchat/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices starts every service in its own goroutine. Start errors are
// reported on the returned channel, which is closed once all Start calls
// have returned.
func StartServices(ctx context.Context, services []Service) <-chan error {
	errs := make(chan error, len(services))
	done := make(chan struct{}, len(services))

	for _, service := range services {
		go func(service Service) {
			defer func() { done <- struct{}{} }()
			if err := service.Start(ctx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to start", service)
				errs <- fmt.Errorf("%T: %w", service, err)
			}
		}(service)
	}

	go func() {
		for range services {
			<-done
		}
		close(errs)
	}()

	return errs
}

// ShutdownServices waits for ctx to end, then shuts the services down in
// reverse order. Shutdown gets a fresh context bounded by shutdownTimeout.
func ShutdownServices(ctx context.Context, services []Service) error {
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(sctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
