package userfields

import (
	"html/template"
	"strings"

	"github.com/goliatone/go-user-fields/pkg/activity"
)

// Option configures a field at construction.
type Option func(*fieldOptions)

type fieldOptions struct {
	layers    []Config
	overrides Config
	host      Host
	renderer  Renderer
	logger    Logger
	hooks     activity.Hooks
	actor     activity.Actor
}

func applyFieldOptions(opts []Option) fieldOptions {
	cfg := fieldOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.host == nil {
		cfg.host = SourceHost{}
	}
	if cfg.renderer == nil {
		cfg.renderer = NewTemplateRenderer()
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger{}
	}
	return cfg
}

// config merges individual overrides over WithConfig layers (later layers are
// stronger) over DefaultConfig.
func (o fieldOptions) config() Config {
	layers := make([]Config, 0, len(o.layers)+2)
	layers = append(layers, o.overrides)
	for i := len(o.layers) - 1; i >= 0; i-- {
		layers = append(layers, o.layers[i])
	}
	layers = append(layers, DefaultConfig())
	return MergeConfig(layers...)
}

// WithConfig adds a configuration layer, e.g. panel wide defaults loaded with
// LoadConfig.
func WithConfig(cfg Config) Option {
	return func(o *fieldOptions) {
		o.layers = append(o.layers, cfg)
	}
}

// WithImageHeight sets the avatar size in pixels.
func WithImageHeight(px int) Option {
	return func(o *fieldOptions) {
		o.overrides.ImageHeight = ptr(px)
	}
}

// WithRing sets the ring width around stacked avatars. Zero disables it.
func WithRing(width int) Option {
	return func(o *fieldOptions) {
		o.overrides.Ring = ptr(width)
	}
}

// WithCircular toggles round avatars.
func WithCircular(circular bool) Option {
	return func(o *fieldOptions) {
		o.overrides.Circular = ptr(circular)
	}
}

// WithWrapped stacks list items vertically in Column and Entry.
func WithWrapped(wrapped bool) Option {
	return func(o *fieldOptions) {
		o.overrides.Wrapped = ptr(wrapped)
	}
}

// WithPlaceholderClass sets the classes of empty avatar slots.
func WithPlaceholderClass(class string) Option {
	return func(o *fieldOptions) {
		o.overrides.PlaceholderClass = ptr(class)
	}
}

// WithHost sets the avatar and name collaborator. Defaults to SourceHost.
func WithHost(host Host) Option {
	return func(o *fieldOptions) {
		o.host = host
	}
}

// WithRenderer replaces the bundled html/template renderer.
func WithRenderer(renderer Renderer) Option {
	return func(o *fieldOptions) {
		o.renderer = renderer
	}
}

// WithLogger receives the setup event of the field.
func WithLogger(logger Logger) Option {
	return func(o *fieldOptions) {
		o.logger = logger
	}
}

// WithActivityHooks notifies hooks once the field committed to a strategy.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(o *fieldOptions) {
		o.hooks = normalized
	}
}

// WithActor attributes setup activity to an actor.
func WithActor(actor activity.Actor) Option {
	return func(o *fieldOptions) {
		o.actor = actor
	}
}

// field is the state shared by every variant. Everything is fixed at
// construction; renders only read it.
type field struct {
	name         string
	variant      Variant
	profile      CapabilityProfile
	presentation Presentation
	wrapped      bool
	resolver     Resolver
	host         Host
	renderer     Renderer
}

func newField(name string, variant Variant, target any, opts []Option, configure func(*field, any)) (*field, error) {
	options := applyFieldOptions(opts)
	name = strings.TrimSpace(name)
	profile := Probe(target)

	cfg := options.config()
	if err := cfg.Validate(); err != nil {
		options.logger.LogSetup(SetupEvent{Field: name, Variant: variant, Profile: profile, Err: err})
		return nil, err
	}

	strategy, err := SelectStrategy(variant, profile)
	if err != nil {
		capErr := &CapabilityError{Field: name, Variant: variant, Profile: profile, Err: err}
		event := SetupEvent{Field: name, Variant: variant, Profile: profile, Err: capErr}
		_ = emitSetup(options, event)
		options.logger.LogSetup(event)
		return nil, capErr
	}

	f := &field{
		name:         name,
		variant:      variant,
		profile:      profile,
		presentation: newPresentation(strategy, cfg),
		wrapped:      deref(cfg.Wrapped),
		resolver:     NewResolver(WithNamer(options.host)),
		host:         options.host,
		renderer:     options.renderer,
	}
	if configure != nil {
		configure(f, target)
	}

	event := SetupEvent{Field: name, Variant: variant, Profile: profile, Strategy: strategy}
	if err := emitSetup(options, event); err != nil {
		event.Err = err
	}
	options.logger.LogSetup(event)
	return f, nil
}

// Name returns the field name.
func (f *field) Name() string {
	return f.name
}

// Variant returns the field front-end.
func (f *field) Variant() Variant {
	return f.variant
}

// Profile returns the capabilities detected at construction.
func (f *field) Profile() CapabilityProfile {
	return f.profile
}

// Strategy returns the configuration path committed to at construction.
func (f *field) Strategy() Strategy {
	return f.presentation.Strategy
}

// Presentation returns the resolved avatar sizing and styling.
func (f *field) Presentation() Presentation {
	return f.presentation
}

// ImageAttributes is the per-image attribute contribution for the host.
func (f *field) ImageAttributes() map[string]string {
	return f.presentation.ImageAttributes()
}

func (f *field) resolve(raw RawState, known []Descriptor) []Descriptor {
	return f.resolver.Resolve(raw, known)
}

func (f *field) compose(descriptors []Descriptor) Composition {
	return Compose(descriptors, f.host.AvatarURL)
}

func (f *field) renderUser(d *Descriptor) template.HTML {
	html, err := f.renderer.RenderUser(userView(f.presentation, d, f.host))
	if err != nil {
		return ""
	}
	return html
}

func (f *field) renderStack(descriptors []Descriptor) template.HTML {
	composition := f.compose(descriptors)
	html, err := f.renderer.RenderStack(stackView(f.presentation, composition, descriptors))
	if err != nil {
		return ""
	}
	return html
}

func (f *field) tooltip(raw RawState, row []Descriptor) string {
	return f.presentation.tooltip(f.resolver, raw, row)
}

func allowHTML(target any) {
	if hook, ok := target.(HTMLConfigurer); ok {
		hook.AllowHTML()
	}
}
