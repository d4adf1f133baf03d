package userfields

import (
	"fmt"
	"strings"
)

// Strategy is the configuration path a field committed to at setup.
type Strategy int

const (
	// StrategyModern drives the dedicated image height and ring hooks.
	StrategyModern Strategy = iota + 1
	// StrategyLegacy expresses the same sizing through injected attributes.
	StrategyLegacy
)

func (s Strategy) String() string {
	switch s {
	case StrategyModern:
		return "modern"
	case StrategyLegacy:
		return "legacy"
	case 0:
		return "none"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Variant names a field front-end.
type Variant int

const (
	VariantSelect Variant = iota + 1
	VariantSelectFilter
	VariantStackedColumn
	VariantStackedEntry
	VariantColumn
	VariantEntry
)

func (v Variant) String() string {
	switch v {
	case VariantSelect:
		return "select"
	case VariantSelectFilter:
		return "select_filter"
	case VariantStackedColumn:
		return "stacked_column"
	case VariantStackedEntry:
		return "stacked_entry"
	case VariantColumn:
		return "column"
	case VariantEntry:
		return "entry"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func (v Variant) stacked() bool {
	return v == VariantStackedColumn || v == VariantStackedEntry
}

// SelectStrategy picks the configuration path for variant given profile.
//
// Stacked variants configure host images and need either the fixed height hook
// (modern) or attribute injection (legacy). The remaining variants render rich
// content and need the HTML hook (a filter may reach it through its form
// field); their image hooks only pick how the avatar partial is sized.
func SelectStrategy(variant Variant, profile CapabilityProfile) (Strategy, error) {
	if variant.stacked() {
		switch {
		case profile.FixedImageHeight:
			return StrategyModern, nil
		case profile.ExtraImgAttributes:
			return StrategyLegacy, nil
		default:
			return 0, ErrIncompatibleHost
		}
	}
	richContent := profile.HTML
	if variant == VariantSelectFilter {
		richContent = richContent || profile.FormField
	}
	if !richContent {
		return 0, fmt.Errorf("%w: rich content hook is required", ErrIncompatibleHost)
	}
	if profile.FixedImageHeight {
		return StrategyModern, nil
	}
	return StrategyLegacy, nil
}

// Presentation is the resolved sizing and styling for avatar images.
type Presentation struct {
	Strategy         Strategy
	Size             int
	Ring             int
	Circular         bool
	PlaceholderClass string
}

func newPresentation(strategy Strategy, cfg Config) Presentation {
	return Presentation{
		Strategy:         strategy,
		Size:             deref(cfg.ImageHeight),
		Ring:             deref(cfg.Ring),
		Circular:         deref(cfg.Circular),
		PlaceholderClass: deref(cfg.PlaceholderClass),
	}
}

// Style is the inline sizing used by the legacy path.
func (p Presentation) Style() string {
	return fmt.Sprintf("height: %dpx; width: %dpx;", p.Size, p.Size)
}

// Classes returns the shape and ring classes shared by both paths.
func (p Presentation) Classes() string {
	var classes []string
	if p.Circular {
		classes = append(classes, "rounded-full")
	}
	if p.Ring > 0 {
		classes = append(classes, fmt.Sprintf("ring-%d", p.Ring), "ring-white", "dark:ring-gray-900")
	}
	return strings.Join(classes, " ")
}

// configure drives the host hooks for the committed strategy. It runs once per
// field during construction.
func (p Presentation) configure(target any, tooltip TooltipFunc) {
	switch p.Strategy {
	case StrategyModern:
		if hook, ok := target.(ImageHeightConfigurer); ok {
			hook.ImageHeight(p.Size)
		}
		if hook, ok := target.(RingConfigurer); ok && p.Ring > 0 {
			hook.Ring(p.Ring)
		}
	case StrategyLegacy:
		if hook, ok := target.(ExtraImgAttributesConfigurer); ok {
			attrs := map[string]string{"style": p.Style()}
			if classes := p.Classes(); classes != "" {
				attrs["class"] = classes
			}
			hook.ExtraImgAttributes(attrs)
		}
	}
	if hook, ok := target.(TooltipConfigurer); ok && tooltip != nil {
		hook.Tooltip(tooltip)
	}
}

// tooltip computes the label shown on hover. The legacy host may hand over a
// bare single value, so that path wraps the state into a collection before
// joining names.
func (p Presentation) tooltip(resolver Resolver, raw RawState, row []Descriptor) string {
	if p.Strategy != StrategyLegacy {
		return Label(resolver.Resolve(raw, row))
	}
	descriptors := resolver.Resolve(raw.Wrap(), row)
	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.Name
	}
	return strings.Join(names, LabelSeparator)
}

// ImageAttributes is the per-image attribute contribution of the committed
// path: explicit dimensions for modern hosts, inline style for legacy ones.
func (p Presentation) ImageAttributes() map[string]string {
	attrs := map[string]string{}
	if classes := p.Classes(); classes != "" {
		attrs["class"] = classes
	}
	if p.Strategy == StrategyModern {
		size := fmt.Sprint(p.Size)
		attrs["height"] = size
		attrs["width"] = size
		return attrs
	}
	attrs["style"] = p.Style()
	return attrs
}
