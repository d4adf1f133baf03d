package userfields

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL evaluator.
// Each function is exposed as a one argument CEL function, and call(name,
// [args]) reaches any of them with arbitrary arity.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Engine() string {
	return "cel"
}

func (e *celEvaluator) Evaluate(ctx LookupContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return runCEL(program, expression, ctx)
}

func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &celCompiledRule{program: program, expression: expression}, nil
}

func (e *celEvaluator) loadOrCompile(expression string) (celgo.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get("cel:" + expression); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv()
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", expression, "", issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	if e.cache != nil {
		e.cache.Set("cel:"+expression, program)
	}
	return program, nil
}

func (e *celEvaluator) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("id", celgo.StringType),
		celgo.Variable("name", celgo.StringType),
		celgo.Variable("avatar", celgo.StringType),
		celgo.Variable("record", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("args", celgo.MapType(celgo.StringType, celgo.DynType)),
	}
	if e.registry == nil {
		return celgo.NewEnv(opts...)
	}
	for _, name := range e.registry.Names() {
		opts = append(opts, celgo.Function(name,
			celgo.Overload(name+"_dyn", []*celgo.Type{celgo.DynType}, celgo.DynType,
				celgo.UnaryBinding(e.unaryBinding(name)),
			),
		))
	}
	opts = append(opts, celgo.Function("call",
		celgo.Overload("call_string_list", []*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)}, celgo.DynType,
			celgo.BinaryBinding(e.callBinding),
		),
	))
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) unaryBinding(name string) func(ref.Val) ref.Val {
	return func(value ref.Val) ref.Val {
		return e.invoke(name, value.Value())
	}
}

func (e *celEvaluator) callBinding(nameVal, argsVal ref.Val) ref.Val {
	name, ok := nameVal.Value().(string)
	if !ok {
		return types.NewErr("userfields: call name must be string")
	}
	list, ok := argsVal.(traits.Lister)
	if !ok {
		return types.NewErr("userfields: call arguments must be a list")
	}
	size, ok := list.Size().(types.Int)
	if !ok {
		return types.NewErr("userfields: call arguments must be a list")
	}
	args := make([]any, 0, int(size))
	for i := types.Int(0); i < size; i++ {
		args = append(args, list.Get(i).Value())
	}
	return e.invoke(name, args...)
}

func (e *celEvaluator) invoke(name string, args ...any) ref.Val {
	result, err := e.registry.Call(name, args...)
	if err != nil {
		return types.NewErr("%s", err.Error())
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}

type celCompiledRule struct {
	program    celgo.Program
	expression string
}

func (r *celCompiledRule) Evaluate(ctx LookupContext) (any, error) {
	return runCEL(r.program, r.expression, ctx)
}

func runCEL(program celgo.Program, expression string, ctx LookupContext) (any, error) {
	out, _, err := program.Eval(ctx.environment())
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, ctx.Lookup, err)
	}
	return out.Value(), nil
}
