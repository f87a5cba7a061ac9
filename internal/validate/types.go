// SPDX-License-Identifier: MIT
package validate

// LogLevel represents valid log levels
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogLevels lists the accepted log level names in ascending verbosity order.
var LogLevels = []string{
	string(LogLevelError),
	string(LogLevelWarn),
	string(LogLevelInfo),
	string(LogLevelDebug),
	string(LogLevelTrace),
}
