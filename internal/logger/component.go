package logger

import "go.uber.org/zap"

// Component is a named logger bound to one engine package.
// The global logger is resolved on every call, so a Component declared at
// package level keeps working after Init replaces Log.
type Component string

// Logger returns the zap logger for the component.
func (c Component) Logger() *zap.Logger {
	return Log.Named(string(c))
}

// Debug logs a debug message for the component.
func (c Component) Debug(msg string, fields ...zap.Field) {
	c.Logger().Debug(msg, fields...)
}

// Info logs an info message for the component.
func (c Component) Info(msg string, fields ...zap.Field) {
	c.Logger().Info(msg, fields...)
}

// Warn logs a warning message for the component.
func (c Component) Warn(msg string, fields ...zap.Field) {
	c.Logger().Warn(msg, fields...)
}

// Error logs an error message for the component.
func (c Component) Error(msg string, fields ...zap.Field) {
	c.Logger().Error(msg, fields...)
}
