package userfields

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-user-fields/internal/hydrate"
)

// Namer resolves the display name for a descriptor when the host centralizes
// naming logic.
type Namer interface {
	UserName(Descriptor) string
}

// NamerFunc adapts a function to Namer.
type NamerFunc func(Descriptor) string

// UserName implements Namer.
func (fn NamerFunc) UserName(d Descriptor) string {
	if fn == nil {
		return d.Name
	}
	return fn(d)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithNamer routes descriptor names through namer.
func WithNamer(namer Namer) ResolverOption {
	return func(r *Resolver) {
		r.namer = namer
	}
}

// Resolver normalizes raw state into descriptors. The zero value is ready to
// use and keeps record names as they are.
type Resolver struct {
	namer Namer
}

// NewResolver constructs a Resolver.
func NewResolver(opts ...ResolverOption) Resolver {
	r := Resolver{}
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}
	return r
}

// Resolve normalizes raw using the default resolver.
func Resolve(raw RawState, known []Descriptor) []Descriptor {
	return Resolver{}.Resolve(raw, known)
}

// Resolve normalizes raw into zero or more descriptors. known is only consulted
// for Encoded state. Malformed or stale input resolves to nothing.
func (r Resolver) Resolve(raw RawState, known []Descriptor) []Descriptor {
	descriptors, _ := r.ResolveWithIssues(raw, known)
	return descriptors
}

// ResolveWithIssues is Resolve plus the non-fatal issues met on the way.
func (r Resolver) ResolveWithIssues(raw RawState, known []Descriptor) ([]Descriptor, []error) {
	switch raw.kind {
	case StateNone:
		return []Descriptor{}, nil
	case StateSingle:
		d, ok := recordDescriptor(raw.single)
		if !ok {
			return []Descriptor{}, []error{fmt.Errorf("%w: single record is unset", ErrUnresolvableState)}
		}
		return []Descriptor{r.named(d)}, nil
	case StateCollection:
		out := make([]Descriptor, 0, len(raw.records))
		var issues []error
		for i, record := range raw.records {
			d, ok := recordDescriptor(record)
			if !ok {
				issues = append(issues, fmt.Errorf("%w: collection item %d is unset", ErrUnresolvableState, i))
				continue
			}
			out = append(out, r.named(d))
		}
		return out, issues
	case StateEncoded:
		d, err := decodeIdentifier(raw.encoded, known)
		if err != nil {
			return []Descriptor{}, []error{err}
		}
		return []Descriptor{r.named(d)}, nil
	default:
		return []Descriptor{}, []error{fmt.Errorf("%w: unknown state kind %s", ErrUnresolvableState, raw.kind)}
	}
}

func (r Resolver) named(d Descriptor) Descriptor {
	if r.namer == nil {
		return d
	}
	return d.withName(r.namer.UserName(d))
}

func recordDescriptor(record Record) (Descriptor, bool) {
	if record == nil {
		return Descriptor{}, false
	}
	return record.Descriptor()
}

type encodedIdentifier struct {
	ID any `json:"id"`
}

var identifierDecoder = hydrate.NewDecoder(
	hydrate.WithUseNumber[encodedIdentifier](),
	hydrate.WithAlias[encodedIdentifier]("user_id", "id"),
	hydrate.WithFields[encodedIdentifier]("id"),
)

func decodeIdentifier(payload string, known []Descriptor) (Descriptor, error) {
	if payload == "" {
		return Descriptor{}, fmt.Errorf("%w: empty identifier payload", ErrUnresolvableState)
	}
	ref, err := identifierDecoder.DecodeJSON(hydrate.Source{Kind: "encoded"}, []byte(payload))
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrUnresolvableState, err)
	}
	id := NewID(ref.ID)
	if id == "" {
		return Descriptor{}, fmt.Errorf("%w: identifier payload has no id", ErrUnresolvableState)
	}
	d, ok := lookup(known, id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownIdentifier, id)
	}
	return d, nil
}

// EncodeIdentifier serializes id into the payload form accepted by Encoded.
func EncodeIdentifier(id ID) (string, error) {
	if id == "" {
		return "", fmt.Errorf("userfields: encode identifier: id is empty")
	}
	payload, err := json.Marshal(encodedIdentifier{ID: string(id)})
	if err != nil {
		return "", fmt.Errorf("userfields: encode identifier %q: %w", id, err)
	}
	return string(payload), nil
}
