package objcache

// Fields carries the context of a cache event: storage key, group, mode,
// and "err" for the underlying error.
type Fields map[string]any

// Logger receives objcache's diagnostics: Debug for misses and flushes,
// Warn for degraded reads/writes and corrupt entries, Error for failed
// flushes. Adapters live in log/zap, log/logrus and log/slog; a nil
// Options.Logger discards everything.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger is the default Logger.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
