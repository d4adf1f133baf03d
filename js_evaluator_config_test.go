package userfields

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSEvaluatorConfigDefaultsToHostFunctions(t *testing.T) {
	cfg := applyJSEvaluatorOptions(nil)
	if diff := cmp.Diff([]string{"initials", "urlquery"}, cfg.registry.Names()); diff != "" {
		t.Fatalf("default functions mismatch (-want +got):\n%s", diff)
	}

	kept := applyJSEvaluatorOptions([]JSEvaluatorOption{JSWithFunctionRegistry(nil)})
	if diff := cmp.Diff([]string{"initials", "urlquery"}, kept.registry.Names()); diff != "" {
		t.Fatalf("nil registry must keep defaults (-want +got):\n%s", diff)
	}
}

func TestJSEvaluatorConfigReplacesFunctions(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("shout", stringFunction("shout", func(s string) string { return s + "!" })); err != nil {
		t.Fatalf("register: %v", err)
	}
	cfg := applyJSEvaluatorOptions([]JSEvaluatorOption{JSWithFunctionRegistry(registry)})
	if diff := cmp.Diff([]string{"shout"}, cfg.registry.Names()); diff != "" {
		t.Fatalf("functions mismatch (-want +got):\n%s", diff)
	}

	_ = registry.Register("late", stringFunction("late", func(s string) string { return s }))
	if len(cfg.registry.Names()) != 1 {
		t.Fatalf("config must hold a copy of the registry")
	}
	if got := cfg.cacheKey("name"); got != "js:name" {
		t.Fatalf("unexpected cache key %q", got)
	}
}
