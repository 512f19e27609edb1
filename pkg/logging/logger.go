package logging

// ProcessName identifies which binary a log line came from.
type ProcessName string

const (
	MarketplaceProcess ProcessName = "marketplace"
	SweeperProcess     ProcessName = "sweeper"
	ArchiverProcess    ProcessName = "archiver"
	CLIProcess         ProcessName = "marketctl"
)

type LoggerConfig struct {
	ProcessName   ProcessName
	IsDevelopment bool
}

// Logger is the logging interface used across the codebase.
type Logger interface {
	Debug(msg string, tags ...any)
	Info(msg string, tags ...any)
	Warn(msg string, tags ...any)
	Error(msg string, tags ...any)
	Fatal(msg string, tags ...any)

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	With(tags ...any) Logger
}
