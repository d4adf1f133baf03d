package userfields

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// HostOption configures an ExpressionHost.
type HostOption func(*hostConfig)

type hostConfig struct {
	nameExpr   string
	avatarExpr string
	evaluator  Evaluator
	logger     EvaluatorLogger
	cache      ProgramCache
	registry   *FunctionRegistry
	args       map[string]any
	fallback   Host
	errs       []error
}

// WithNameExpression sets the expression producing a user's display name.
func WithNameExpression(expression string) HostOption {
	return func(cfg *hostConfig) {
		cfg.nameExpr = strings.TrimSpace(expression)
	}
}

// WithAvatarExpression sets the expression producing a user's avatar URL.
func WithAvatarExpression(expression string) HostOption {
	return func(cfg *hostConfig) {
		cfg.avatarExpr = strings.TrimSpace(expression)
	}
}

// WithHostEvaluator replaces the default expr evaluator. The evaluator keeps
// its own cache and functions; WithHostProgramCache and WithHostFunction only
// apply to the default one.
func WithHostEvaluator(evaluator Evaluator) HostOption {
	return func(cfg *hostConfig) {
		cfg.evaluator = evaluator
		if evaluator == nil {
			cfg.errs = append(cfg.errs, errors.New("userfields: host evaluator is nil"))
		}
	}
}

// WithHostLogger receives one event per evaluation, including those made while
// a field renders. Without it the host does not log.
func WithHostLogger(logger EvaluatorLogger) HostOption {
	return func(cfg *hostConfig) {
		cfg.logger = logger
	}
}

// WithHostProgramCache shares compiled programs between hosts.
func WithHostProgramCache(cache ProgramCache) HostOption {
	return func(cfg *hostConfig) {
		cfg.cache = cache
	}
}

// WithHostFunction exposes fn to expressions next to the default functions.
func WithHostFunction(name string, fn Function) HostOption {
	return func(cfg *hostConfig) {
		if err := cfg.registry.Register(name, fn); err != nil {
			cfg.errs = append(cfg.errs, err)
		}
	}
}

// WithHostArgs exposes extra values to expressions as args.
func WithHostArgs(args map[string]any) HostOption {
	return func(cfg *hostConfig) {
		cfg.args = copyAttributes(args)
	}
}

// WithHostFallback answers lookups that have no expression. Defaults to
// SourceHost.
func WithHostFallback(host Host) HostOption {
	return func(cfg *hostConfig) {
		if host != nil {
			cfg.fallback = host
		}
	}
}

// ExpressionHost is a Host whose lookups are expressions compiled once at
// construction. Failing evaluations degrade to an absent avatar or the
// resolved name and are only reported to the WithHostLogger logger.
type ExpressionHost struct {
	engine   string
	name     hostRule
	avatar   hostRule
	args     map[string]any
	logger   EvaluatorLogger
	fallback Host
}

type hostRule struct {
	expression string
	rule       CompiledRule
}

func (r hostRule) ok() bool {
	return r.rule != nil
}

// NewExpressionHost compiles the configured expressions.
func NewExpressionHost(opts ...HostOption) (*ExpressionHost, error) {
	cfg := hostConfig{registry: DefaultFunctions()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := errors.Join(cfg.errs...); err != nil {
		return nil, err
	}
	if cfg.evaluator == nil {
		cfg.evaluator = NewExprEvaluator(
			ExprWithProgramCache(cfg.cache),
			ExprWithFunctionRegistry(cfg.registry),
		)
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	if cfg.fallback == nil {
		cfg.fallback = SourceHost{}
	}

	host := &ExpressionHost{
		engine:   evaluatorEngineName(cfg.evaluator),
		args:     cfg.args,
		logger:   cfg.logger,
		fallback: cfg.fallback,
	}
	var err error
	if host.name, err = compileHostRule(cfg.evaluator, cfg.nameExpr); err != nil {
		return nil, fmt.Errorf("userfields: name expression: %w", err)
	}
	if host.avatar, err = compileHostRule(cfg.evaluator, cfg.avatarExpr); err != nil {
		return nil, fmt.Errorf("userfields: avatar expression: %w", err)
	}
	return host, nil
}

func compileHostRule(evaluator Evaluator, expression string) (hostRule, error) {
	if expression == "" {
		return hostRule{}, nil
	}
	rule, err := evaluator.Compile(expression)
	if err != nil {
		return hostRule{}, err
	}
	return hostRule{expression: expression, rule: rule}, nil
}

// Engine names the evaluator backing the host.
func (h *ExpressionHost) Engine() string {
	return h.engine
}

// AvatarURL implements Host.
func (h *ExpressionHost) AvatarURL(d Descriptor) (string, bool) {
	if !h.avatar.ok() {
		return h.fallback.AvatarURL(d)
	}
	value, err := h.evaluate(h.avatar, d, "avatar")
	if err != nil {
		return "", false
	}
	url, _ := value.(string)
	return nonEmpty(url)
}

// UserName implements Host.
func (h *ExpressionHost) UserName(d Descriptor) string {
	if !h.name.ok() {
		return h.fallback.UserName(d)
	}
	value, err := h.evaluate(h.name, d, "name")
	if err != nil {
		return d.Name
	}
	if name, ok := nonEmpty(displayString(value)); ok {
		return name
	}
	return d.Name
}

func (h *ExpressionHost) evaluate(rule hostRule, d Descriptor, lookup string) (any, error) {
	start := time.Now()
	value, err := rule.rule.Evaluate(LookupContext{Descriptor: d, Lookup: lookup, Args: h.args})
	h.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:   h.engine,
		Expr:     rule.expression,
		Lookup:   lookup,
		Duration: time.Since(start),
		Err:      err,
	})
	return value, err
}
