// Package shutdown coordinates graceful termination of the fnmon server.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/psantana5/fnmon/pkg/logging"
)

// Manager runs registered shutdown functions in LIFO order once a
// termination signal arrives.
type Manager struct {
	mu      sync.Mutex
	funcs   []func(context.Context) error
	timeout time.Duration
	done    chan struct{}
	once    sync.Once
	logger  *logging.Logger
}

// New creates a shutdown manager
func New(timeout time.Duration, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{
		timeout: timeout,
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Register adds a shutdown function. Functions run in reverse order.
func (m *Manager) Register(fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.funcs = append(m.funcs, fn)
}

// Wait blocks until SIGTERM or SIGINT is received
func (m *Manager) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	m.logger.Info("received signal, shutting down", map[string]interface{}{
		"signal": sig.String(),
	})

	m.once.Do(func() {
		close(m.done)
	})
}

// Done is closed when shutdown has been initiated
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Shutdown executes all registered shutdown functions in LIFO order
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	for i := len(m.funcs) - 1; i >= 0; i-- {
		if err := m.funcs[i](ctx); err != nil {
			m.logger.Error("shutdown step failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
