// Package logger provides the logging interface shared by the warptimer
// scheduler, dispatch loop and command line front end.
package logger

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// Logger defines the interface for leveled logging across all warptimer components.
type Logger interface {
	// Info logs an informational message (e.g., "task 3 registered").
	Info(format string, args ...interface{})

	// Warning logs a warning message (e.g., "wakeup delayed by 3s").
	Warning(format string, args ...interface{})

	// Error logs an error message (e.g., "task 7 failed: exit status 1").
	Error(format string, args ...interface{})

	// Debug logs a diagnostic message. Backends may drop it unless
	// debugging is enabled.
	Debug(format string, args ...interface{})

	// Close releases resources held by the logger.
	// Safe to call multiple times. Returns nil for loggers without resources.
	Close() error
}

// StandardLogger wraps the stdlib *log.Logger for console/file output.
// Debug messages are discarded until SetDebug(true) is called.
type StandardLogger struct {
	logger *log.Logger
	debug  atomic.Bool
}

// NewStandardLogger creates a logger that wraps the given *log.Logger.
func NewStandardLogger(l *log.Logger) *StandardLogger {
	return &StandardLogger{logger: l}
}

// SetDebug toggles output of Debug messages.
func (s *StandardLogger) SetDebug(enabled bool) {
	s.debug.Store(enabled)
}

// Info logs an informational message with [INFO] prefix.
func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

// Warning logs a warning message with [WARNING] prefix.
func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

// Error logs an error message with [ERROR] prefix.
func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Debug logs a diagnostic message with [DEBUG] prefix when enabled.
func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if !s.debug.Load() {
		return
	}
	s.logger.Printf("[DEBUG] "+format, args...)
}

// Close is a no-op for StandardLogger (no resources to release).
func (s *StandardLogger) Close() error {
	return nil
}

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Debug(format string, args ...interface{})   {}

// Close is a no-op.
func (n *NopLogger) Close() error {
	return nil
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
)

// MockLogger implements Logger for testing purposes.
// It records all log calls for verification in tests. Callbacks fired by the
// dispatch goroutine may log while a test inspects the mock, so access to the
// recorded calls goes through a mutex.
type MockLogger struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
	debugs   []string
	closed   bool
}

// NewMockLogger creates a new MockLogger for testing.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(dst *[]string, format string, args []interface{}) {
	m.mu.Lock()
	*dst = append(*dst, fmt.Sprintf(format, args...))
	m.mu.Unlock()
}

// Info records the formatted message.
func (m *MockLogger) Info(format string, args ...interface{}) {
	m.record(&m.infos, format, args)
}

// Warning records the formatted message.
func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.record(&m.warnings, format, args)
}

// Error records the formatted message.
func (m *MockLogger) Error(format string, args ...interface{}) {
	m.record(&m.errors, format, args)
}

// Debug records the formatted message.
func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.record(&m.debugs, format, args)
}

// Errors returns a copy of the recorded error messages.
func (m *MockLogger) Errors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

// Infos returns a copy of the recorded informational messages.
func (m *MockLogger) Infos() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.infos...)
}

// Warnings returns a copy of the recorded warning messages.
func (m *MockLogger) Warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.warnings...)
}

// Debugs returns a copy of the recorded debug messages.
func (m *MockLogger) Debugs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.debugs...)
}

// Closed reports whether Close was called.
func (m *MockLogger) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Close records that Close was called.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

var _ Logger = (*MockLogger)(nil)
