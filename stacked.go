package userfields

import (
	"html/template"
)

// StackedColumn shows the users of a table cell as overlapping avatars with a
// tooltip listing their names.
type StackedColumn struct {
	*field
}

// NewStackedColumn probes target once and commits to a strategy. It fails with
// a *CapabilityError when target exposes neither image hook.
func NewStackedColumn(name string, target any, opts ...Option) (*StackedColumn, error) {
	c := &StackedColumn{}
	f, err := newField(name, VariantStackedColumn, target, opts, func(f *field, target any) {
		f.presentation.configure(target, TooltipFunc(f.tooltip))
	})
	if err != nil {
		return nil, err
	}
	c.field = f
	return c, nil
}

// Resolve normalizes state for a cell. Encoded state is looked up in row, the
// descriptors currently backing the cell.
func (c *StackedColumn) Resolve(raw RawState, row []Descriptor) []Descriptor {
	return c.resolve(raw, row)
}

// ImageURL resolves the avatar for one serialized item of the cell state.
func (c *StackedColumn) ImageURL(encoded string, row []Descriptor) (string, bool) {
	if encoded == "" {
		return "", false
	}
	descriptors := c.resolve(Encoded(encoded), row)
	if len(descriptors) == 0 {
		return "", false
	}
	return c.host.AvatarURL(descriptors[0])
}

// Tooltip returns the names shown on hover.
func (c *StackedColumn) Tooltip(raw RawState, row []Descriptor) string {
	return c.tooltip(raw, row)
}

// Compose resolves and composes state without rendering.
func (c *StackedColumn) Compose(raw RawState, row []Descriptor) Composition {
	return c.compose(c.resolve(raw, row))
}

// Render produces the avatar stack markup. It never fails; unresolvable items
// render nothing and missing avatars render a placeholder slot.
func (c *StackedColumn) Render(raw RawState, row []Descriptor) template.HTML {
	return c.renderStack(c.resolve(raw, row))
}

// StackedEntry is the read-only detail counterpart of StackedColumn. It always
// receives resolved state, so it never performs identifier lookups.
type StackedEntry struct {
	*field
}

// NewStackedEntry probes target once and commits to a strategy.
func NewStackedEntry(name string, target any, opts ...Option) (*StackedEntry, error) {
	e := &StackedEntry{}
	f, err := newField(name, VariantStackedEntry, target, opts, func(f *field, target any) {
		f.presentation.configure(target, func(state RawState, _ []Descriptor) string {
			return f.tooltip(state, nil)
		})
	})
	if err != nil {
		return nil, err
	}
	e.field = f
	return e, nil
}

// Tooltip returns the names shown on hover.
func (e *StackedEntry) Tooltip(raw RawState) string {
	return e.tooltip(raw, nil)
}

// Compose resolves and composes state without rendering.
func (e *StackedEntry) Compose(raw RawState) Composition {
	return e.compose(e.resolve(raw, nil))
}

// Render produces the avatar stack markup.
func (e *StackedEntry) Render(raw RawState) template.HTML {
	return e.renderStack(e.resolve(raw, nil))
}
