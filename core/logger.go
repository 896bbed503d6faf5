package core

// Logger reports application events to stdout and an external tracker.
// Error/Fatal args may include an error and a staff identifier for context.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
