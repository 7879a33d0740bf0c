package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies command and source from an event's context onto the
// event. Events logged without Ctx are left untouched.
type ContextHook struct{}

func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}
	if src := GetSource(ctx); src != "" {
		e.Str("source", src)
	}
}
