package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-user-fields/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts field activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
}

var _ activity.ActivityHook = Hook{}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
// Actor identifiers that are not UUIDs are recorded as uuid.Nil and kept
// verbatim in the record data.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	if normalized.Verb == "" || normalized.ObjectType == "" || normalized.ObjectID == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	data := cloneMap(normalized.Metadata)
	actorID := parseUUID(normalized.Actor.ActorID, "actor_ref", &data)
	userID := parseUUID(normalized.Actor.UserID, "user_ref", &data)
	tenantID := parseUUID(normalized.Actor.TenantID, "tenant_ref", &data)

	return h.Sink.Log(ctx, usertypes.ActivityRecord{
		ActorID:    actorID,
		UserID:     userID,
		TenantID:   tenantID,
		Verb:       normalized.Verb,
		ObjectType: normalized.ObjectType,
		ObjectID:   normalized.ObjectID,
		Channel:    normalized.Channel,
		Data:       data,
		OccurredAt: normalized.OccurredAt,
	})
}

func parseUUID(input, key string, data *map[string]any) uuid.UUID {
	value := strings.TrimSpace(input)
	if value == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		if *data == nil {
			*data = map[string]any{}
		}
		(*data)[key] = value
		return uuid.Nil
	}
	return id
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
