package userfields

import "time"

// EvaluatorLogEvent describes one expression evaluation made by an
// ExpressionHost.
type EvaluatorLogEvent struct {
	Engine   string
	Expr     string
	Lookup   string
	Duration time.Duration
	Err      error
}

// SetupEvent describes the strategy a field committed to.
type SetupEvent struct {
	Field    string
	Variant  Variant
	Profile  CapabilityProfile
	Strategy Strategy
	Err      error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// SetupLogger records field setup events.
type SetupLogger interface {
	LogSetup(SetupEvent)
}

// Logger receives both evaluator and setup events. Fields only report setup
// through it; rendering a field never logs. Evaluation events come from an
// ExpressionHost, and only when one was given WithHostLogger.
type Logger interface {
	EvaluatorLogger
	SetupLogger
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

// SetupLoggerFunc adapts a function to SetupLogger.
type SetupLoggerFunc func(SetupEvent)

// LogSetup implements SetupLogger.
func (f SetupLoggerFunc) LogSetup(event SetupEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogEvaluation(EvaluatorLogEvent) {}

func (noopLogger) LogSetup(SetupEvent) {}
