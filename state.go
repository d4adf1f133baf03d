package userfields

import "fmt"

// StateKind tags the shape of a RawState.
type StateKind int

const (
	// StateNone carries no user.
	StateNone StateKind = iota
	// StateSingle carries one user-like record.
	StateSingle
	// StateCollection carries an ordered set of user-like records.
	StateCollection
	// StateEncoded carries a serialized identifier that needs a lookup.
	StateEncoded
)

func (k StateKind) String() string {
	switch k {
	case StateNone:
		return "none"
	case StateSingle:
		return "single"
	case StateCollection:
		return "collection"
	case StateEncoded:
		return "encoded"
	default:
		return fmt.Sprintf("StateKind(%d)", int(k))
	}
}

// RawState is the host supplied value describing which user(s) a field shows,
// before normalization. The zero value is None.
type RawState struct {
	kind    StateKind
	single  Record
	records []Record
	encoded string
}

// None returns the empty state.
func None() RawState {
	return RawState{kind: StateNone}
}

// Single wraps one record. A nil record is kept as Single so the resolver can
// tell an explicitly unset value apart from a missing state.
func Single(record Record) RawState {
	return RawState{kind: StateSingle, single: record}
}

// Collection wraps records in display order.
func Collection(records ...Record) RawState {
	return RawState{kind: StateCollection, records: append([]Record(nil), records...)}
}

// Descriptors is a convenience for Collection over already resolved
// descriptors.
func Descriptors(descriptors ...Descriptor) RawState {
	records := make([]Record, len(descriptors))
	for i, d := range descriptors {
		records[i] = d
	}
	return RawState{kind: StateCollection, records: records}
}

// Encoded wraps a serialized identifier payload such as `{"id":1}`.
func Encoded(payload string) RawState {
	return RawState{kind: StateEncoded, encoded: payload}
}

// Kind reports the state's tag.
func (s RawState) Kind() StateKind {
	return s.kind
}

// Payload returns the serialized identifier of an Encoded state.
func (s RawState) Payload() string {
	return s.encoded
}

// Records returns the records carried by the state in display order.
func (s RawState) Records() []Record {
	switch s.kind {
	case StateSingle:
		return []Record{s.single}
	case StateCollection:
		return append([]Record(nil), s.records...)
	default:
		return nil
	}
}

// Wrap normalizes a Single state into a one element Collection. Every other
// kind is returned unchanged.
func (s RawState) Wrap() RawState {
	if s.kind != StateSingle {
		return s
	}
	return RawState{kind: StateCollection, records: []Record{s.single}}
}
