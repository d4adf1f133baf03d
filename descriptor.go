package userfields

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID identifies a user for display purposes. IDs compare by value, so numeric
// and string identifiers for the same user normalize to the same ID.
type ID string

// NewID normalizes value into an ID. Unsupported values yield the empty ID.
func NewID(value any) ID {
	switch v := value.(type) {
	case nil:
		return ""
	case ID:
		return ID(strings.TrimSpace(string(v)))
	case string:
		return ID(strings.TrimSpace(v))
	case int:
		return ID(strconv.FormatInt(int64(v), 10))
	case int8:
		return ID(strconv.FormatInt(int64(v), 10))
	case int16:
		return ID(strconv.FormatInt(int64(v), 10))
	case int32:
		return ID(strconv.FormatInt(int64(v), 10))
	case int64:
		return ID(strconv.FormatInt(v, 10))
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return ID(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return ID(strconv.FormatUint(v, 10))
	case float32:
		return idFromFloat(float64(v))
	case float64:
		return idFromFloat(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return ID(strconv.FormatInt(i, 10))
		}
		if f, err := v.Float64(); err == nil {
			return idFromFloat(f)
		}
		return ID(strings.TrimSpace(v.String()))
	case uuid.UUID:
		if v == uuid.Nil {
			return ""
		}
		return ID(v.String())
	case fmt.Stringer:
		return ID(strings.TrimSpace(v.String()))
	default:
		return ""
	}
}

func idFromFloat(f float64) ID {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(strconv.FormatFloat(f, 'f', -1, 64))
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// UUID parses the ID as a UUID, returning uuid.Nil when it is not one.
func (id ID) UUID() uuid.UUID {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// Descriptor is the canonical display unit for one user. Descriptors are
// values; nothing in this package mutates one after it is built.
type Descriptor struct {
	ID   ID
	Name string
	// AvatarSource is whatever the host needs to resolve an avatar (a stored
	// path, the original record, an email address). It is opaque here.
	AvatarSource any
}

// IsZero reports whether d carries no user at all.
func (d Descriptor) IsZero() bool {
	return d.ID == "" && d.Name == "" && d.AvatarSource == nil
}

// Descriptor implements Record so descriptors can be used as raw state.
func (d Descriptor) Descriptor() (Descriptor, bool) {
	if d.IsZero() {
		return Descriptor{}, false
	}
	return d, true
}

func (d Descriptor) withName(name string) Descriptor {
	d.Name = name
	return d
}

// Record is a user-like value handed over by the host.
type Record interface {
	Descriptor() (Descriptor, bool)
}

// RecordFunc adapts a function to Record.
type RecordFunc func() (Descriptor, bool)

// Descriptor implements Record.
func (fn RecordFunc) Descriptor() (Descriptor, bool) {
	if fn == nil {
		return Descriptor{}, false
	}
	return fn()
}

func lookup(known []Descriptor, id ID) (Descriptor, bool) {
	if id == "" {
		return Descriptor{}, false
	}
	for _, candidate := range known {
		if candidate.ID == id {
			return candidate, true
		}
	}
	return Descriptor{}, false
}
