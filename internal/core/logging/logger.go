// Package logging carries per-request log fields on the context and derives
// component loggers from the global zerolog logger.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// WithContextFields returns l with ContextHook attached, so events logged
// with .Ctx(ctx) carry session_id and user_id.
func WithContextFields(l zerolog.Logger) zerolog.Logger {
	return l.Hook(ContextHook{})
}
