package types

type RunMode string

const (
	// ModeLocal runs the back office with local defaults
	ModeLocal RunMode = "local"
	// ModeServer runs the back office as a long-lived server
	ModeServer RunMode = "server"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
