package userfields

import (
	"errors"
	"fmt"
	"strings"
)

// Non-fatal resolution outcomes. Renders never return these; they are only
// reported by ResolveWithIssues and Composition.Issues for diagnostics.
var (
	ErrUnresolvableState = errors.New("userfields: unresolvable state")
	ErrUnknownIdentifier = errors.New("userfields: unknown identifier")
	ErrMissingAvatar     = errors.New("userfields: missing avatar")
)

// ErrIncompatibleHost reports a configuration target that exposes none of the
// hooks a field knows how to drive. It is fatal and surfaces at construction.
var ErrIncompatibleHost = errors.New("userfields: host exposes no supported image configuration hook")

// CapabilityError describes a failed capability probe for one field.
type CapabilityError struct {
	Field   string
	Variant Variant
	Profile CapabilityProfile
	Err     error
}

func (e *CapabilityError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("userfields: %s field %q profile=%s: %v", e.Variant, e.Field, e.Profile, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EvaluationError captures expression metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Lookup string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("userfields: %s evaluator %s lookup=%s: %v", e.Engine, describeExpression(e.Expr), e.Lookup, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "userfields:") {
		return err
	}
	return fmt.Errorf("userfields: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr, lookup string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.Lookup == "" {
			evalErr.Lookup = lookup
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Lookup: lookup,
		Err:    err,
	}
}
