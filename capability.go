package userfields

import (
	"html/template"
	"strings"
)

// Configuration hooks a host column, entry or select may expose. Fields only
// ever discover them through Probe; their presence is the sole signal of
// which host generation they are talking to.
type (
	// ImageHeightConfigurer sizes images with a dedicated pixel height hook.
	ImageHeightConfigurer interface {
		ImageHeight(px int)
	}

	// RingConfigurer draws a ring around each stacked image.
	RingConfigurer interface {
		Ring(width int)
	}

	// ExtraImgAttributesConfigurer injects raw attributes on each image.
	ExtraImgAttributesConfigurer interface {
		ExtraImgAttributes(attrs map[string]string)
	}

	// TooltipConfigurer installs a per-state tooltip callback.
	TooltipConfigurer interface {
		Tooltip(fn TooltipFunc)
	}

	// HTMLConfigurer switches the host into rich content rendering.
	HTMLConfigurer interface {
		AllowHTML()
	}

	// OptionLabelConfigurer installs a per-record option label callback.
	OptionLabelConfigurer interface {
		OptionLabel(fn func(Record) template.HTML)
	}

	// FormFieldModifier lets a filter adjust the select it renders.
	FormFieldModifier interface {
		ModifyFormField(fn func(formField any))
	}
)

// TooltipFunc computes a tooltip for a state. row is the materialized state of
// the current cell and may be nil.
type TooltipFunc func(state RawState, row []Descriptor) string

// CapabilityProfile records which hooks a configuration target exposed at
// setup time.
type CapabilityProfile struct {
	FixedImageHeight   bool
	Ring               bool
	ExtraImgAttributes bool
	Tooltip            bool
	HTML               bool
	OptionLabel        bool
	FormField          bool
}

// Probe inspects target once. It never calls any hook.
func Probe(target any) CapabilityProfile {
	if target == nil {
		return CapabilityProfile{}
	}
	_, fixedHeight := target.(ImageHeightConfigurer)
	_, ring := target.(RingConfigurer)
	_, extra := target.(ExtraImgAttributesConfigurer)
	_, tooltip := target.(TooltipConfigurer)
	_, html := target.(HTMLConfigurer)
	_, optionLabel := target.(OptionLabelConfigurer)
	_, formField := target.(FormFieldModifier)
	return CapabilityProfile{
		FixedImageHeight:   fixedHeight,
		Ring:               ring,
		ExtraImgAttributes: extra,
		Tooltip:            tooltip,
		HTML:               html,
		OptionLabel:        optionLabel,
		FormField:          formField,
	}
}

// String lists the detected hooks, e.g. "fixed_height+ring+tooltip".
func (p CapabilityProfile) String() string {
	var parts []string
	if p.FixedImageHeight {
		parts = append(parts, "fixed_height")
	}
	if p.Ring {
		parts = append(parts, "ring")
	}
	if p.ExtraImgAttributes {
		parts = append(parts, "extra_img_attributes")
	}
	if p.Tooltip {
		parts = append(parts, "tooltip")
	}
	if p.HTML {
		parts = append(parts, "html")
	}
	if p.OptionLabel {
		parts = append(parts, "option_label")
	}
	if p.FormField {
		parts = append(parts, "form_field")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

func (p CapabilityProfile) metadata() map[string]any {
	return map[string]any{
		"fixed_height":         p.FixedImageHeight,
		"ring":                 p.Ring,
		"extra_img_attributes": p.ExtraImgAttributes,
		"tooltip":              p.Tooltip,
		"html":                 p.HTML,
		"option_label":         p.OptionLabel,
		"form_field":           p.FormField,
	}
}
