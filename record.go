package userfields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-user-fields/internal/hydrate"
)

// MapRecord is a user attribute bag, typically a model serialized by the host.
// Recognised keys: id (or user_id), name (or full_name, or first_name plus
// last_name). The whole map becomes the descriptor's AvatarSource.
type MapRecord map[string]any

type recordAttributes struct {
	ID   any `json:"id"`
	Name any `json:"name"`
}

var recordDecoder = hydrate.NewDecoder(
	hydrate.WithUseNumber[recordAttributes](),
	hydrate.WithAlias[recordAttributes]("user_id", "id"),
	hydrate.WithAlias[recordAttributes]("full_name", "name"),
	hydrate.WithPreHook[recordAttributes](joinNameParts),
	hydrate.WithFields[recordAttributes]("id", "name"),
)

// Descriptor implements Record.
func (m MapRecord) Descriptor() (Descriptor, bool) {
	if len(m) == 0 {
		return Descriptor{}, false
	}
	attrs, err := recordDecoder.Decode(hydrate.Source{Kind: "record"}, m)
	if err != nil {
		return Descriptor{}, false
	}
	d := Descriptor{
		ID:           NewID(attrs.ID),
		Name:         displayString(attrs.Name),
		AvatarSource: map[string]any(m),
	}
	if d.ID == "" && d.Name == "" {
		return Descriptor{}, false
	}
	return d, true
}

func joinNameParts(_ hydrate.Source, attrs map[string]any) (map[string]any, error) {
	if _, ok := attrs["name"]; ok {
		return attrs, nil
	}
	first := displayString(attrs["first_name"])
	last := displayString(attrs["last_name"])
	if joined := strings.TrimSpace(first + " " + last); joined != "" {
		attrs["name"] = joined
	}
	return attrs, nil
}

func displayString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
