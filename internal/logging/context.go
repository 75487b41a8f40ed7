package logging

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithTabID creates a child logger with a tab_id field
func WithTabID(ctx context.Context, tabID int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("tab_id", strconv.Itoa(tabID)).Logger()
	return WithContext(ctx, childLogger)
}

// WithWindowID creates a child logger with a window_id field
func WithWindowID(ctx context.Context, windowID int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("window_id", strconv.Itoa(windowID)).Logger()
	return WithContext(ctx, childLogger)
}

// WithMessageType creates a child logger with a message_type field
func WithMessageType(ctx context.Context, messageType string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("message_type", messageType).Logger()
	return WithContext(ctx, childLogger)
}
