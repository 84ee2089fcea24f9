package csvprobe

import "log/slog"

// Reporter receives diagnostics from the profiling pipeline. Fatal
// conditions are not reported here; they are returned to the caller as
// errors so the orchestration layer decides whether to terminate,
// log, or retry with adjusted hints.
type Reporter interface {
	// Debug reports fine-grained progress of a profiling session
	Debug(msg string, args ...any)
	// Info reports session milestones such as the final recommendation
	Info(msg string, args ...any)
	// Warn reports recoverable oddities such as swallowed sample-edge noise
	Warn(msg string, args ...any)
	// Error reports failures alongside the error returned to the caller
	Error(msg string, args ...any)
}

// slogReporter adapts a *slog.Logger to the Reporter interface
type slogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter creates a Reporter backed by the given structured
// logger. A nil logger falls back to slog.Default().
func NewSlogReporter(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogReporter{logger: logger}
}

// Debug implements Reporter
func (r *slogReporter) Debug(msg string, args ...any) {
	r.logger.Debug(msg, args...)
}

// Info implements Reporter
func (r *slogReporter) Info(msg string, args ...any) {
	r.logger.Info(msg, args...)
}

// Warn implements Reporter
func (r *slogReporter) Warn(msg string, args ...any) {
	r.logger.Warn(msg, args...)
}

// Error implements Reporter
func (r *slogReporter) Error(msg string, args ...any) {
	r.logger.Error(msg, args...)
}

// NopReporter discards all diagnostics. It is the zero-noise choice
// for callers that only care about returned errors.
type NopReporter struct{}

// NewNopReporter creates a Reporter that discards everything
func NewNopReporter() Reporter {
	return NopReporter{}
}

// Debug implements Reporter
func (NopReporter) Debug(string, ...any) {}

// Info implements Reporter
func (NopReporter) Info(string, ...any) {}

// Warn implements Reporter
func (NopReporter) Warn(string, ...any) {}

// Error implements Reporter
func (NopReporter) Error(string, ...any) {}
