package userfields

import (
	"context"

	"github.com/goliatone/go-user-fields/pkg/activity"
)

func emitSetup(options fieldOptions, event SetupEvent) error {
	if !options.hooks.Enabled() {
		return nil
	}
	input := activity.FieldEventInput{
		Actor:   options.actor,
		Field:   event.Field,
		Variant: event.Variant.String(),
		Profile: event.Profile.metadata(),
	}
	if event.Err != nil {
		input.Metadata = map[string]any{"error": event.Err.Error()}
		return options.emitter().Emit(context.Background(), activity.BuildFieldRejectedEvent(input))
	}
	input.Strategy = event.Strategy.String()
	return options.emitter().Emit(context.Background(), activity.BuildFieldConfiguredEvent(input))
}

func (o fieldOptions) emitter() *activity.Emitter {
	return activity.NewEmitter(o.hooks, activity.Config{Enabled: true})
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make(activity.Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
