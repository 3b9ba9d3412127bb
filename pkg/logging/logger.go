package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const (
	// RequestIDKey is the key used to store request IDs in context.
	RequestIDKey contextKey = "request_id"
)

// Config defines logging configuration for the order cache process.
type Config struct {
	// Level is the logging level (debug, info, warn, error).
	Level string
	// Pretty determines if logs should be formatted for human readability.
	Pretty bool
	// Output is where logs are written (defaults to os.Stdout). Ignored
	// if FilePath is set.
	Output io.Writer
	// FilePath, if non-empty, routes logs through a rotating file writer
	// instead of Output.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Pretty: false,
		Output: os.Stdout,
	}
}

// Setup configures global logging based on the provided config.
func Setup(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.FilePath != "" {
		output = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		}
	} else if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// FromContext extracts a logger carrying the request id stashed in ctx,
// if any.
func FromContext(ctx context.Context) zerolog.Logger {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return log.With().Str("request_id", requestID).Logger()
	}
	return log.Logger
}

// WithRequestID returns a child context carrying requestID, retrievable
// later via FromContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
