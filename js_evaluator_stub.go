//go:build !js_eval

package userfields

// NewJSEvaluator is unavailable without the js_eval build tag and returns nil;
// NewExpressionHost rejects a nil evaluator.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

func jsEvaluatorAvailable() bool {
	return false
}
