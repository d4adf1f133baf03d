package userfields

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Function represents a callable exposed to expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores expression functions keyed by lower-cased name.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// DefaultFunctions returns a registry holding urlquery and initials.
func DefaultFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("urlquery", stringFunction("urlquery", url.QueryEscape))
	_ = registry.Register("initials", stringFunction("initials", initials))
	return registry
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("userfields: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("userfields: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("userfields: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("userfields: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("userfields: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringFunction(name string, fn func(string) string) Function {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("userfields: %s expects 1 argument, got %d", name, len(args))
		}
		return fn(displayString(args[0])), nil
	}
}

func initials(name string) string {
	letters := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		first := []rune(word)[0]
		letters = append(letters, unicode.ToUpper(first))
		if len(letters) == 2 {
			break
		}
	}
	return string(letters)
}
