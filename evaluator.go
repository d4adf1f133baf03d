package userfields

// LookupContext carries the descriptor an expression is evaluated for.
type LookupContext struct {
	Descriptor Descriptor
	// Lookup names what is being resolved, "name" or "avatar".
	Lookup string
	Args   map[string]any
}

// environment is the variable set every engine exposes:
//
//	id      string
//	name    string
//	avatar  string, the AvatarSource when it is a plain string
//	record  map, the attributes when AvatarSource is an attribute bag
//	args    map, host supplied extras
func (ctx LookupContext) environment() map[string]any {
	d := ctx.Descriptor
	avatar, _ := d.AvatarSource.(string)
	record := map[string]any{}
	switch source := d.AvatarSource.(type) {
	case MapRecord:
		record = copyAttributes(source)
	case map[string]any:
		record = copyAttributes(source)
	}
	args := ctx.Args
	if args == nil {
		args = map[string]any{}
	}
	return map[string]any{
		"id":     string(d.ID),
		"name":   d.Name,
		"avatar": avatar,
		"record": record,
		"args":   args,
	}
}

func copyAttributes(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

// Evaluator executes expressions against a lookup context.
type Evaluator interface {
	Evaluate(ctx LookupContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule is a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx LookupContext) (any, error)
}

// ProgramCache stores compiled programs keyed by expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

func evaluatorEngineName(e Evaluator) string {
	if named, ok := e.(interface{ Engine() string }); ok {
		return named.Engine()
	}
	if e == nil {
		return "unknown"
	}
	return "custom"
}
