package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"pathoscope/internal/logger"
)

const (
	component = "ShutdownManager"

	DefaultTimeout = 10 * time.Second
)

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

// Manager stops registered components in reverse registration order, giving
// each at most Timeout to return.
type Manager struct {
	Timeout time.Duration

	components []entry
	logger     logger.Logger
	mu         sync.Mutex
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		Timeout: DefaultTimeout,
		logger:  log,
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, entry{name: name, component: c})
}

// Listen runs Shutdown followed by onSignal when SIGINT or SIGTERM arrives.
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			m.logger.Info(component, "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-m.done:
		}
		signal.Stop(sigChan)
	}()
}

// Shutdown is safe to call more than once; only the first call has effect.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	select {
	case <-m.done:
		m.mu.Unlock()
		return
	default:
		close(m.done)
	}
	components := append([]entry(nil), m.components...)
	m.mu.Unlock()

	m.logger.Info(component, "shutdown sequence initiated", map[string]interface{}{
		"components": len(components),
	})

	m.cancel()

	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			c.component.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug(component, "component stopped", map[string]interface{}{
				"component": c.name,
			})
		case <-time.After(m.Timeout):
			m.logger.Warning(component, "component shutdown timeout", map[string]interface{}{
				"component": c.name,
				"timeout":   m.Timeout.String(),
			})
		}
	}

	m.logger.Info(component, "shutdown sequence completed", nil)
}

func (m *Manager) Context() context.Context {
	return m.ctx
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
