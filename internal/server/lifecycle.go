// Package server runs long-lived services until a termination signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component. Start blocks until ctx is cancelled or
// the service is finished; any return from Start ends the Lifecycle run.
// Stop releases resources once Start has returned or ctx is done.
type Service interface {
	Start(ctx context.Context) error
	Stop() error
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func(ctx context.Context) error
	StopFn  func() error
}

// Start calls StartFn.
func (f *FuncService) Start(ctx context.Context) error { return f.StartFn(ctx) }

// Stop calls StopFn when set.
func (f *FuncService) Stop() error {
	if f.StopFn == nil {
		return nil
	}
	return f.StopFn()
}

// Lifecycle starts services together and stops them in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	signals  []os.Signal
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until a signal, ctx cancellation, or
// the first service's Start returning, with or without an error.
//
// Postcondition: Every service has been stopped. Returns the first service
// failure joined with any stop errors, or nil on a clean shutdown.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	ctx, stopSignals := signal.NotifyContext(ctx, l.signals...)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		wg.Add(1)
		go func(ns namedService) {
			defer wg.Done()
			l.logger.Info("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			defer cancel()
			err := ns.service.Start(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				l.logger.Info("service returned",
					zap.String("service", ns.name),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				return
			}
			l.logger.Error("service failed",
				zap.String("service", ns.name),
				zap.Duration("uptime", time.Since(svcStart)),
				zap.Error(err),
			)
			errCh <- fmt.Errorf("service %s: %w", ns.name, err)
		}(ns)
	}

	l.logger.Info("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	<-ctx.Done()
	wg.Wait()
	close(errCh)

	var runErr error
	if err, ok := <-errCh; ok {
		runErr = err
	} else {
		l.logger.Info("shutting down", zap.NamedError("cause", context.Cause(ctx)))
	}

	stopErr := l.shutdown(services)
	l.logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
	return errors.Join(runErr, stopErr)
}

func (l *Lifecycle) shutdown(services []namedService) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		if err := ns.service.Stop(); err != nil {
			l.logger.Warn("stopping service", zap.String("service", ns.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("stopping %s: %w", ns.name, err))
			continue
		}
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	return errors.Join(errs...)
}
