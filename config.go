package userfields

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultImageHeight matches the host's small avatar size.
	DefaultImageHeight = 24
	// DefaultRing is the stroke width around stacked avatars.
	DefaultRing = 1
	// DefaultPlaceholderClass styles an empty avatar slot.
	DefaultPlaceholderClass = "inline-block bg-gray-200 dark:bg-gray-700"
)

// Config carries the presentation settings of a field. Nil fields are unset
// and fall back to weaker layers, see MergeConfig.
type Config struct {
	ImageHeight      *int    `yaml:"image_height"`
	Ring             *int    `yaml:"ring"`
	Circular         *bool   `yaml:"circular"`
	Wrapped          *bool   `yaml:"wrapped"`
	PlaceholderClass *string `yaml:"placeholder_class"`
}

// DefaultConfig returns the settings every field starts from.
func DefaultConfig() Config {
	return Config{
		ImageHeight:      ptr(DefaultImageHeight),
		Ring:             ptr(DefaultRing),
		Circular:         ptr(true),
		Wrapped:          ptr(false),
		PlaceholderClass: ptr(DefaultPlaceholderClass),
	}
}

// Validate reports settings no host could render.
func (c Config) Validate() error {
	var errs []error
	if c.ImageHeight != nil && *c.ImageHeight <= 0 {
		errs = append(errs, fmt.Errorf("image_height must be positive, got %d", *c.ImageHeight))
	}
	if c.Ring != nil && *c.Ring < 0 {
		errs = append(errs, fmt.Errorf("ring must not be negative, got %d", *c.Ring))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("userfields: invalid config: %w", errors.Join(errs...))
}

// MergeConfig composes layers ordered from strongest to weakest. A set field in
// a stronger layer wins; unset fields fall through.
func MergeConfig(layers ...Config) Config {
	var merged Config
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		merged.ImageHeight = override(merged.ImageHeight, layer.ImageHeight)
		merged.Ring = override(merged.Ring, layer.Ring)
		merged.Circular = override(merged.Circular, layer.Circular)
		merged.Wrapped = override(merged.Wrapped, layer.Wrapped)
		merged.PlaceholderClass = override(merged.PlaceholderClass, layer.PlaceholderClass)
	}
	return merged
}

// LoadConfig decodes a YAML document and validates it. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("userfields: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func override[T any](weak, strong *T) *T {
	if strong == nil {
		return weak
	}
	value := *strong
	return &value
}

func ptr[T any](value T) *T {
	return &value
}

func deref[T any](value *T) T {
	if value == nil {
		var zero T
		return zero
	}
	return *value
}
