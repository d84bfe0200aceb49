package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"vibecatalog/internal/logger"
)

// DefaultTimeout bounds the whole cleanup sequence.
const DefaultTimeout = 10 * time.Second

type cleanup struct {
	name string
	fn   func(context.Context) error
}

// Handler manages graceful shutdown
type Handler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	cleanups []cleanup
	mu       sync.Mutex
	once     sync.Once
	timeout  time.Duration
	logger   *logger.Logger
}

// New creates a new shutdown handler
func New(log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		ctx:     ctx,
		cancel:  cancel,
		timeout: DefaultTimeout,
		logger:  log,
	}
}

// Context returns the shutdown context
func (h *Handler) Context() context.Context {
	return h.ctx
}

// AddCleanup registers a named cleanup step. Steps run in reverse order of
// registration so that later components close before what they depend on.
func (h *Handler) AddCleanup(name string, fn func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cleanups = append(h.cleanups, cleanup{name: name, fn: fn})
}

// Listen starts listening for shutdown signals
func (h *Handler) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			h.logger.Info("Received %s, shutting down", sig)
			h.Shutdown()
		case <-h.ctx.Done():
		}
		signal.Stop(sigChan)
	}()
}

// Shutdown cancels the context, waits for tracked work and runs the cleanup
// steps. Only the first call has any effect.
func (h *Handler) Shutdown() {
	h.once.Do(func() {
		h.cancel()

		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			h.wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			h.logger.Warn("Timed out waiting for in-flight work")
		}

		h.mu.Lock()
		steps := h.cleanups
		h.mu.Unlock()

		for i := len(steps) - 1; i >= 0; i-- {
			step := steps[i]
			if err := step.fn(ctx); err != nil {
				h.logger.Error("Cleanup %s failed: %v", step.name, err)
				continue
			}
			h.logger.Debug("Cleanup %s done", step.name)
		}
	})
}

// Wait waits for all work to complete
func (h *Handler) Wait() {
	h.wg.Wait()
}

// Add increments the work counter
func (h *Handler) Add(delta int) {
	h.wg.Add(delta)
}

// Done decrements the work counter
func (h *Handler) Done() {
	h.wg.Done()
}
