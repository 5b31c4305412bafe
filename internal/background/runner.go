package background

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Shoyeb45/resume-analyzer/internal/shared/telemetry"
)

const (
	defaultMaxConcurrent = 10
	defaultTaskTimeout   = 2 * time.Minute
)

// ErrShuttingDown is returned by Submit after Shutdown has begun.
var ErrShuttingDown = errors.New("background runner is shutting down")

// Runner executes fire-and-forget tasks detached from the request that
// scheduled them. Concurrency is bounded; each task gets its own
// context so a finished request cannot cancel it.
type Runner struct {
	sem         chan struct{}
	taskTimeout time.Duration
	wg          sync.WaitGroup
	mu          sync.Mutex
	closed      bool
}

// NewRunner builds a Runner with the given concurrency bound. Values
// below 1 fall back to the default.
func NewRunner(maxConcurrent int) *Runner {
	if maxConcurrent < 1 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Runner{
		sem:         make(chan struct{}, maxConcurrent),
		taskTimeout: defaultTaskTimeout,
	}
}

// Submit schedules fn to run in the background. The task runs to
// completion regardless of the fate of the request that submitted it.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrShuttingDown
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		r.sem <- struct{}{}
		defer func() { <-r.sem }()

		defer func() {
			if rec := recover(); rec != nil {
				telemetry.Error("background.panic", map[string]any{
					"task":  name,
					"error": rec,
				})
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), r.taskTimeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			telemetry.Error("background.failed", map[string]any{
				"task":        name,
				"error":       err.Error(),
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			})
			return
		}
		telemetry.Info("background.complete", map[string]any{
			"task":        name,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		})
	}()
	return nil
}

// Shutdown stops accepting tasks and waits for in-flight ones until ctx
// expires.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
