package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	sourceKey  contextKey = "source"
)

// WithCommand records the CLI command handling the request.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithSource records where notification input is read from, such as a file
// path or "stdin".
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetCommand returns the command name, or "" if unset.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

func GetSource(ctx context.Context) string {
	if v, ok := ctx.Value(sourceKey).(string); ok {
		return v
	}
	return ""
}
