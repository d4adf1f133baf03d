package userfields

import (
	"errors"
	"html/template"
	"testing"
)

var errRender = errors.New("render failed")

func mustEncode(t *testing.T, id ID) string {
	t.Helper()
	payload, err := EncodeIdentifier(id)
	if err != nil {
		t.Fatalf("encode %q: %v", id, err)
	}
	return payload
}

// modernTarget exposes the fixed height generation of hooks.
type modernTarget struct {
	heights []int
	rings   []int
	tooltip TooltipFunc
}

func (t *modernTarget) ImageHeight(px int)     { t.heights = append(t.heights, px) }
func (t *modernTarget) Ring(width int)         { t.rings = append(t.rings, width) }
func (t *modernTarget) Tooltip(fn TooltipFunc) { t.tooltip = fn }

// legacyTarget only accepts raw image attributes.
type legacyTarget struct {
	attrs   []map[string]string
	tooltip TooltipFunc
}

func (t *legacyTarget) ExtraImgAttributes(attrs map[string]string) { t.attrs = append(t.attrs, attrs) }
func (t *legacyTarget) Tooltip(fn TooltipFunc)                     { t.tooltip = fn }

// selectTarget is a rich content select, optionally with fixed image height.
type selectTarget struct {
	html        int
	optionLabel func(Record) template.HTML
}

func (t *selectTarget) AllowHTML()                                { t.html++ }
func (t *selectTarget) OptionLabel(fn func(Record) template.HTML) { t.optionLabel = fn }

type modernSelectTarget struct {
	selectTarget
	heights []int
}

func (t *modernSelectTarget) ImageHeight(px int) { t.heights = append(t.heights, px) }

// filterTarget only reaches its select through the form field hook.
type filterTarget struct {
	formField *selectTarget
	modified  int
}

func (t *filterTarget) ModifyFormField(fn func(formField any)) {
	t.modified++
	if t.formField == nil {
		t.formField = &selectTarget{}
	}
	fn(t.formField)
}

// bareTarget exposes nothing.
type bareTarget struct{}

var (
	ann = Descriptor{ID: "1", Name: "Ann", AvatarSource: "a.png"}
	bo  = Descriptor{ID: "2", Name: "Bo"}
	cy  = Descriptor{ID: "3", Name: "Cy", AvatarSource: "c.png"}
)

type recordingLogger struct {
	setups      []SetupEvent
	evaluations []EvaluatorLogEvent
}

func (l *recordingLogger) LogSetup(event SetupEvent) { l.setups = append(l.setups, event) }
func (l *recordingLogger) LogEvaluation(event EvaluatorLogEvent) {
	l.evaluations = append(l.evaluations, event)
}

type failingRenderer struct{}

func (failingRenderer) RenderUser(UserView) (template.HTML, error) {
	return "", errRender
}

func (failingRenderer) RenderStack(StackView) (template.HTML, error) {
	return "", errRender
}

func (failingRenderer) RenderList(ListView) (template.HTML, error) {
	return "", errRender
}
