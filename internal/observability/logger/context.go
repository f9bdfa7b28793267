package logger

import (
	"context"

	"go.uber.org/zap"
)

type commandKey struct{}

type commandInfo struct {
	ID     string
	UserID int64
	Name   string
}

// WithCommand annotates ctx with the command being handled.
func WithCommand(ctx context.Context, id string, userID int64, name string) context.Context {
	return context.WithValue(ctx, commandKey{}, commandInfo{ID: id, UserID: userID, Name: name})
}

// FromContext returns the global logger enriched with command fields.
func FromContext(ctx context.Context) *zap.Logger {
	return WithContext(ctx, zap.L())
}

// WithContext enriches base with the command fields stored in ctx.
func WithContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	if ctx == nil || base == nil {
		return base
	}
	info, ok := ctx.Value(commandKey{}).(commandInfo)
	if !ok {
		return base
	}
	return base.With(
		zap.String("command_id", info.ID),
		zap.Int64("user_id", info.UserID),
		zap.String("command", info.Name),
	)
}
