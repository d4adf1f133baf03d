package userfields

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProbe(t *testing.T) {
	cases := []struct {
		name   string
		target any
		want   CapabilityProfile
	}{
		{"nil", nil, CapabilityProfile{}},
		{"bare", bareTarget{}, CapabilityProfile{}},
		{"modern", &modernTarget{}, CapabilityProfile{FixedImageHeight: true, Ring: true, Tooltip: true}},
		{"legacy", &legacyTarget{}, CapabilityProfile{ExtraImgAttributes: true, Tooltip: true}},
		{"select", &selectTarget{}, CapabilityProfile{HTML: true, OptionLabel: true}},
		{"filter", &filterTarget{}, CapabilityProfile{FormField: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Probe(tc.target)); diff != "" {
				t.Fatalf("probe mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProbeDoesNotCallHooks(t *testing.T) {
	target := &modernTarget{}
	Probe(target)
	if len(target.heights) != 0 || len(target.rings) != 0 || target.tooltip != nil {
		t.Fatalf("probe must not call hooks: %+v", target)
	}
}

func TestCapabilityProfileString(t *testing.T) {
	if got := (CapabilityProfile{}).String(); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	if got := Probe(&modernTarget{}).String(); got != "fixed_height+ring+tooltip" {
		t.Fatalf("unexpected profile string %q", got)
	}
}

func TestSelectStrategy(t *testing.T) {
	cases := []struct {
		name    string
		variant Variant
		profile CapabilityProfile
		want    Strategy
		err     error
	}{
		{"stacked modern", VariantStackedColumn, CapabilityProfile{FixedImageHeight: true, ExtraImgAttributes: true}, StrategyModern, nil},
		{"stacked legacy", VariantStackedEntry, CapabilityProfile{ExtraImgAttributes: true}, StrategyLegacy, nil},
		{"stacked incompatible", VariantStackedColumn, CapabilityProfile{Tooltip: true, HTML: true}, 0, ErrIncompatibleHost},
		{"select modern", VariantSelect, CapabilityProfile{HTML: true, FixedImageHeight: true}, StrategyModern, nil},
		{"select legacy", VariantSelect, CapabilityProfile{HTML: true}, StrategyLegacy, nil},
		{"select without html", VariantSelect, CapabilityProfile{FormField: true}, 0, ErrIncompatibleHost},
		{"filter through form field", VariantSelectFilter, CapabilityProfile{FormField: true}, StrategyLegacy, nil},
		{"column without html", VariantColumn, CapabilityProfile{FixedImageHeight: true}, 0, ErrIncompatibleHost},
		{"entry", VariantEntry, CapabilityProfile{HTML: true}, StrategyLegacy, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				got, err := SelectStrategy(tc.variant, tc.profile)
				if tc.err != nil {
					if !errors.Is(err, tc.err) {
						t.Fatalf("expected %v, got %v", tc.err, err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Fatalf("expected %s, got %s", tc.want, got)
				}
			}
		})
	}
}

func TestPresentationAttributes(t *testing.T) {
	modern := newPresentation(StrategyModern, DefaultConfig())
	want := map[string]string{
		"class":  "rounded-full ring-1 ring-white dark:ring-gray-900",
		"height": "24",
		"width":  "24",
	}
	if diff := cmp.Diff(want, modern.ImageAttributes()); diff != "" {
		t.Fatalf("modern attributes mismatch (-want +got):\n%s", diff)
	}

	legacy := newPresentation(StrategyLegacy, MergeConfig(Config{Ring: ptr(0), Circular: ptr(false), ImageHeight: ptr(32)}, DefaultConfig()))
	want = map[string]string{"style": "height: 32px; width: 32px;"}
	if diff := cmp.Diff(want, legacy.ImageAttributes()); diff != "" {
		t.Fatalf("legacy attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestPresentationTooltip(t *testing.T) {
	resolver := NewResolver()
	legacy := Presentation{Strategy: StrategyLegacy}
	modern := Presentation{Strategy: StrategyModern}

	cases := []struct {
		raw  RawState
		row  []Descriptor
		want string
	}{
		{Single(cy), nil, "Cy"},
		{Descriptors(ann, bo), nil, "Ann, Bo"},
		{None(), nil, ""},
		{Encoded(`{"id":2}`), []Descriptor{ann, bo}, "Bo"},
	}
	for _, tc := range cases {
		for _, p := range []Presentation{legacy, modern} {
			if got := p.tooltip(resolver, tc.raw, tc.row); got != tc.want {
				t.Fatalf("%s tooltip for %s = %q, want %q", p.Strategy, tc.raw.Kind(), got, tc.want)
			}
		}
	}
}

func TestStringers(t *testing.T) {
	if StrategyModern.String() != "modern" || StrategyLegacy.String() != "legacy" || Strategy(0).String() != "none" {
		t.Fatalf("unexpected strategy names")
	}
	if VariantStackedColumn.String() != "stacked_column" || Variant(42).String() != "Variant(42)" {
		t.Fatalf("unexpected variant names")
	}
	if StateEncoded.String() != "encoded" {
		t.Fatalf("unexpected state kind name")
	}
}
