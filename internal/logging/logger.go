// Package logging wraps zerolog for the services and the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/pankajredekar/gormcrud/internal/config"
	"github.com/rs/zerolog"
)

var globalLogger = NewLogger(false, os.Stderr)

// Init configures the global logger from the logging section of the config.
// Logs always go to stderr; with log_to_file they are also written to a
// rotating file.
func Init(cfg config.LogConfig) {
	var output io.Writer = os.Stderr

	if cfg.LogToFile {
		fileLogger := &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		output = io.MultiWriter(os.Stderr, fileLogger)
	}

	SetLogger(NewLogger(cfg.Debug, output))
	if cfg.LogToFile {
		l := GetLogger()
		l.Info().Str("path", cfg.LogFilePath).Msg("logging to file")
	}
}

// NewLogger creates a new zerolog logger with the specified debug level
func NewLogger(debug bool, output io.Writer) zerolog.Logger {
	if output == nil {
		output = os.Stderr
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetLogger replaces the global logger
func SetLogger(l zerolog.Logger) {
	globalLogger = l
}

// GetLogger returns the global logger instance
func GetLogger() zerolog.Logger {
	return globalLogger
}

// WithComponent returns a logger with the component field set
func WithComponent(component string) zerolog.Logger {
	return GetLogger().With().Str("component", component).Logger()
}

func Warn(msg string) {
	globalLogger.Warn().Msg(msg)
}

// InfoWith logs a message at info level with additional context
func InfoWith(msg string, fields map[string]interface{}) {
	event := globalLogger.Info()
	for k, v := range fields {
		event = addField(event, k, v)
	}
	event.Msg(msg)
}

// ErrorWith logs a message at error level with additional context
func ErrorWith(msg string, fields map[string]interface{}) {
	event := globalLogger.Error()
	for k, v := range fields {
		event = addField(event, k, v)
	}
	event.Msg(msg)
}

// addField adds a field to the log event based on its type
func addField(event *zerolog.Event, key string, value interface{}) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return event.Str(key, v)
	case int:
		return event.Int(key, v)
	case int64:
		return event.Int64(key, v)
	case float64:
		return event.Float64(key, v)
	case bool:
		return event.Bool(key, v)
	case time.Duration:
		return event.Dur(key, v)
	case error:
		return event.AnErr(key, v)
	default:
		return event.Interface(key, v)
	}
}
