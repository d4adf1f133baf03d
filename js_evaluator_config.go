package userfields

// jsCachePrefix namespaces goja programs in a ProgramCache shared with the
// expr and CEL evaluators.
const jsCachePrefix = "js:"

type jsEvaluatorConfig struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// JSEvaluatorOption configures the JS evaluator.
type JSEvaluatorOption func(*jsEvaluatorConfig)

// JSWithProgramCache shares compiled programs with other evaluators or hosts.
func JSWithProgramCache(cache ProgramCache) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry replaces the default functions (initials, urlquery)
// exposed as JS globals. A nil registry keeps the defaults.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSEvaluatorOption {
	return func(cfg *jsEvaluatorConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSEvaluatorOptions(opts []JSEvaluatorOption) jsEvaluatorConfig {
	cfg := jsEvaluatorConfig{registry: DefaultFunctions()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg jsEvaluatorConfig) cacheKey(expression string) string {
	return jsCachePrefix + expression
}
