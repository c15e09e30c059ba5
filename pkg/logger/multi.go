package logger

// MultiLogger broadcasts log messages to multiple Logger backends,
// e.g. the console and a log file opened by the daemon command.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to all provided backends.
// Messages are written to each logger in order.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

func (m *MultiLogger) Info(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Info(format, args...)
	}
}

func (m *MultiLogger) Warning(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Warning(format, args...)
	}
}

func (m *MultiLogger) Error(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Error(format, args...)
	}
}

func (m *MultiLogger) Debug(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Debug(format, args...)
	}
}

// Close closes all logger backends.
// Returns the first error encountered, but attempts to close all loggers.
func (m *MultiLogger) Close() error {
	var firstErr error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Logger = (*MultiLogger)(nil)

// PrefixLogger tags every message with a component name, e.g. "[dispatch] ".
type PrefixLogger struct {
	prefix string
	next   Logger
}

// WithPrefix wraps l so each message starts with "[name] ".
// A nil l yields a NopLogger-backed PrefixLogger.
func WithPrefix(name string, l Logger) *PrefixLogger {
	if l == nil {
		l = NewNopLogger()
	}
	return &PrefixLogger{prefix: "[" + name + "] ", next: l}
}

func (p *PrefixLogger) Info(format string, args ...interface{}) {
	p.next.Info(p.prefix+format, args...)
}

func (p *PrefixLogger) Warning(format string, args ...interface{}) {
	p.next.Warning(p.prefix+format, args...)
}

func (p *PrefixLogger) Error(format string, args ...interface{}) {
	p.next.Error(p.prefix+format, args...)
}

func (p *PrefixLogger) Debug(format string, args ...interface{}) {
	p.next.Debug(p.prefix+format, args...)
}

// Close closes the wrapped logger.
func (p *PrefixLogger) Close() error {
	return p.next.Close()
}

var _ Logger = (*PrefixLogger)(nil)
