package activity

import (
	"strings"
	"time"
)

const (
	// VerbFieldConfigured marks a field that committed to a render strategy.
	VerbFieldConfigured = "field.configured"
	// VerbFieldRejected marks a field whose host exposed no usable hook.
	VerbFieldRejected = "field.rejected"
	// ObjectTypeUserField is the object type of every field event.
	ObjectTypeUserField = "user_field"
)

// FieldEventInput describes a field setup outcome.
type FieldEventInput struct {
	Actor      Actor
	Field      string
	Variant    string
	Strategy   string
	Profile    map[string]any
	Metadata   map[string]any
	Channel    string
	OccurredAt time.Time
}

// BuildFieldConfiguredEvent constructs the event for a successful setup.
func BuildFieldConfiguredEvent(input FieldEventInput) Event {
	return buildFieldEvent(VerbFieldConfigured, input)
}

// BuildFieldRejectedEvent constructs the event for a failed capability probe.
func BuildFieldRejectedEvent(input FieldEventInput) Event {
	return buildFieldEvent(VerbFieldRejected, input)
}

func buildFieldEvent(verb string, input FieldEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Variant != "" {
		metadata = ensureMetadata(metadata)
		metadata["variant"] = input.Variant
	}
	if input.Strategy != "" {
		metadata = ensureMetadata(metadata)
		metadata["strategy"] = input.Strategy
	}
	if len(input.Profile) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["profile"] = cloneMap(input.Profile)
	}

	objectID := strings.TrimSpace(input.Field)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Variant)
	}
	if objectID == "" {
		objectID = ObjectTypeUserField
	}

	return Event{
		Verb:       verb,
		Actor:      input.Actor.normalize(),
		ObjectType: ObjectTypeUserField,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
