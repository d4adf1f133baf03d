package hydrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Source names the origin of a payload for error messages.
type Source struct {
	Field string
	Kind  string
}

func (s Source) String() string {
	switch {
	case s.Field != "" && s.Kind != "":
		return s.Field + "/" + s.Kind
	case s.Field != "":
		return s.Field
	case s.Kind != "":
		return s.Kind
	default:
		return "unknown"
	}
}

// PreHook lets callers normalise an attribute bag before decoding.
type PreHook func(Source, map[string]any) (map[string]any, error)

// DecoderOption configures a Decoder.
type DecoderOption[T any] func(*Decoder[T])

// Decoder turns loosely shaped attribute bags into typed records.
type Decoder[T any] struct {
	preHooks  []PreHook
	aliases   map[string]string
	fields    map[string]struct{}
	useNumber bool
}

// WithPreHook runs hook before decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// WithAlias copies attribute from into to when to is absent.
func WithAlias[T any](from, to string) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if from == "" || to == "" {
			return
		}
		if d.aliases == nil {
			d.aliases = map[string]string{}
		}
		d.aliases[from] = to
	}
}

// WithFields limits decoding to keys. Other attributes are still visible to
// pre-hooks but never serialized, so values JSON cannot represent (funcs,
// channels, NaN) outside keys do not fail the decode.
func WithFields[T any](keys ...string) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if d.fields == nil {
			d.fields = map[string]struct{}{}
		}
		for _, key := range keys {
			if key != "" {
				d.fields[key] = struct{}{}
			}
		}
	}
}

// WithUseNumber keeps numbers as json.Number instead of float64.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.useNumber = true
	}
}

func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts attrs into T. The input map is never mutated.
func (d *Decoder[T]) Decode(src Source, attrs map[string]any) (T, error) {
	var zero T
	if attrs == nil {
		return zero, fmt.Errorf("hydrate: %s: attributes are nil", src)
	}

	current := make(map[string]any, len(attrs))
	for key, value := range attrs {
		current[key] = value
	}
	for from, to := range d.aliases {
		if _, ok := current[to]; ok {
			continue
		}
		if value, ok := current[from]; ok {
			current[to] = value
		}
	}
	for _, hook := range d.preHooks {
		next, err := hook(src, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: %s: pre-hook: %w", src, err)
		}
		if next != nil {
			current = next
		}
	}

	buffer, err := json.Marshal(d.selected(current))
	if err != nil {
		return zero, fmt.Errorf("hydrate: %s: marshal attributes: %w", src, err)
	}
	return d.decode(src, buffer)
}

// DecodeJSON decodes a serialized payload. The payload must be a JSON object.
func (d *Decoder[T]) DecodeJSON(src Source, payload []byte) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return zero, fmt.Errorf("hydrate: %s: payload is not an object", src)
	}

	var attrs map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if d.useNumber {
		dec.UseNumber()
	}
	if err := dec.Decode(&attrs); err != nil {
		return zero, fmt.Errorf("hydrate: %s: decode payload: %w", src, err)
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return zero, fmt.Errorf("hydrate: %s: payload has trailing data", src)
	}
	return d.Decode(src, attrs)
}

func (d *Decoder[T]) selected(attrs map[string]any) map[string]any {
	if len(d.fields) == 0 {
		return attrs
	}
	kept := make(map[string]any, len(d.fields))
	for key := range d.fields {
		if value, ok := attrs[key]; ok {
			kept[key] = value
		}
	}
	return kept
}

func (d *Decoder[T]) decode(src Source, buffer []byte) (T, error) {
	var result T
	dec := json.NewDecoder(bytes.NewReader(buffer))
	if d.useNumber {
		dec.UseNumber()
	}
	if err := dec.Decode(&result); err != nil {
		var zero T
		return zero, fmt.Errorf("hydrate: %s: decode: %w", src, err)
	}
	return result, nil
}
