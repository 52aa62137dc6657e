package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for component-level details such as node construction
	// and per-stage progress.
	LevelDebug LogLevel = iota
	// LevelInfo is for run-level progress.
	LevelInfo
	// LevelWarn is for problems that do not stop the run, such as
	// replacement frames beyond the output length.
	LevelWarn
	// LevelError is for failures that stop the run.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel maps a log_level name to a LogLevel. Unknown names report
// false and fall back to LevelInfo, as does the empty string.
func ParseLogLevel(s string) (LogLevel, bool) {
	if s == "" {
		return LevelInfo, true
	}
	for l, name := range levelNames {
		if name == s {
			return LogLevel(l), true
		}
	}
	return LevelInfo, false
}

// Logger abstracts logging. Messages are lexicon keys translated by the
// implementation.
type Logger interface {
	// Debug logs a debug message. msg is a translatable format key.
	Debug(msg string, args ...interface{})

	// Info logs an informational message.
	Info(msg string, args ...interface{})

	// Warn logs a warning message.
	Warn(msg string, args ...interface{})

	// Error logs an error message.
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}
