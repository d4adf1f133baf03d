//go:build js_eval

package userfields

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsEvaluator struct {
	config   jsEvaluatorConfig
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewJSEvaluator constructs an Evaluator backed by goja. initials and urlquery
// are available as globals unless JSWithFunctionRegistry replaces them.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	cfg := applyJSEvaluatorOptions(opts)
	return &jsEvaluator{
		config:   cfg,
		cache:    cfg.cache,
		registry: cfg.registry,
	}
}

func (e *jsEvaluator) Engine() string {
	return "js"
}

func (e *jsEvaluator) Evaluate(ctx LookupContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, expression, program)
}

func (e *jsEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledRule{
		evaluator:  e,
		expression: expression,
		program:    program,
	}, nil
}

func (e *jsEvaluator) loadOrCompile(expression string) (*goja.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(e.config.cacheKey(expression)); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", wrapJSExpression(expression), false)
	if err != nil {
		return nil, wrapEvaluationError("js", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set(e.config.cacheKey(expression), program)
	}
	return program, nil
}

// run uses a fresh runtime per lookup; goja runtimes are not safe to share.
func (e *jsEvaluator) run(ctx LookupContext, expression string, program *goja.Program) (any, error) {
	vm := goja.New()
	for key, value := range ctx.environment() {
		if err := vm.Set(key, value); err != nil {
			return nil, wrapEvaluationError("js", expression, ctx.Lookup, err)
		}
	}
	if e.registry != nil {
		for _, name := range e.registry.Names() {
			fn := name
			if err := vm.Set(fn, func(arguments ...any) (any, error) {
				return e.registry.Call(fn, arguments...)
			}); err != nil {
				return nil, wrapEvaluationError("js", expression, ctx.Lookup, err)
			}
		}
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, wrapEvaluationError("js", expression, ctx.Lookup, err)
	}
	return value.Export(), nil
}

func wrapJSExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledRule struct {
	evaluator  *jsEvaluator
	expression string
	program    *goja.Program
}

func (r *jsCompiledRule) Evaluate(ctx LookupContext) (any, error) {
	return r.evaluator.run(ctx, r.expression, r.program)
}

func jsEvaluatorAvailable() bool {
	return true
}
