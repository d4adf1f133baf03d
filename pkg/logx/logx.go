/*
Package logx adapts structured loggers to the userfields Logger interface.

Setup events are logged at Info (Warn when the field was rejected or activity
emission failed); evaluations at Debug, or Warn when they failed.
*/
package logx

import (
	"context"
	"log/slog"

	userfields "github.com/goliatone/go-user-fields"
	"github.com/rs/zerolog"
)

// Zerolog forwards events to a zerolog.Logger.
type Zerolog struct {
	logger zerolog.Logger
}

// NewZerolog wraps logger.
func NewZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger}
}

// LogEvaluation implements userfields.EvaluatorLogger.
func (z *Zerolog) LogEvaluation(event userfields.EvaluatorLogEvent) {
	entry := z.logger.Debug()
	if event.Err != nil {
		entry = z.logger.Warn().Err(event.Err)
	}
	entry.
		Str("engine", event.Engine).
		Str("expr", event.Expr).
		Str("lookup", event.Lookup).
		Dur("duration", event.Duration).
		Msg("user field expression evaluated")
}

// LogSetup implements userfields.SetupLogger.
func (z *Zerolog) LogSetup(event userfields.SetupEvent) {
	entry := z.logger.Info()
	if event.Err != nil {
		entry = z.logger.Warn().Err(event.Err)
	}
	entry.
		Str("field", event.Field).
		Str("variant", event.Variant.String()).
		Str("profile", event.Profile.String()).
		Str("strategy", event.Strategy.String()).
		Msg("user field configured")
}

// Slog forwards events to a *slog.Logger.
type Slog struct {
	logger *slog.Logger
}

// NewSlog wraps logger, defaulting to slog.Default.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger}
}

// LogEvaluation implements userfields.EvaluatorLogger.
func (s *Slog) LogEvaluation(event userfields.EvaluatorLogEvent) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("engine", event.Engine),
		slog.String("expr", event.Expr),
		slog.String("lookup", event.Lookup),
		slog.Duration("duration", event.Duration),
	}
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	s.logger.LogAttrs(context.Background(), level, "user field expression evaluated", attrs...)
}

// LogSetup implements userfields.SetupLogger.
func (s *Slog) LogSetup(event userfields.SetupEvent) {
	level := slog.LevelInfo
	attrs := []slog.Attr{
		slog.String("field", event.Field),
		slog.String("variant", event.Variant.String()),
		slog.String("profile", event.Profile.String()),
		slog.String("strategy", event.Strategy.String()),
	}
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	s.logger.LogAttrs(context.Background(), level, "user field configured", attrs...)
}

var (
	_ userfields.Logger = (*Zerolog)(nil)
	_ userfields.Logger = (*Slog)(nil)
)
