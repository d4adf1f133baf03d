package userfields

import "html/template"

const (
	columnListClass = "flex flex-wrap gap-y-1 gap-x-2"
	entryListClass  = "flex flex-wrap gap-2"
	wrappedClass    = " flex-col"
)

// Column lists the users of a table cell as avatar plus name units, one per
// line.
type Column struct {
	*field
}

// NewColumn probes target once. target must expose the HTML hook.
func NewColumn(name string, target any, opts ...Option) (*Column, error) {
	c := &Column{}
	f, err := newField(name, VariantColumn, target, opts, func(_ *field, target any) {
		allowHTML(target)
	})
	if err != nil {
		return nil, err
	}
	c.field = f
	return c, nil
}

// Wrapped reports whether items stack vertically.
func (c *Column) Wrapped() bool {
	return c.wrapped
}

// ExtraAttributes is the container attribute contribution for the host.
func (c *Column) ExtraAttributes() map[string]string {
	return listAttributes(columnListClass, c.wrapped)
}

// Items renders one unit per resolved user, in order.
func (c *Column) Items(raw RawState, row []Descriptor) []template.HTML {
	return listItems(c.field, c.resolve(raw, row))
}

// Render produces the list markup.
func (c *Column) Render(raw RawState, row []Descriptor) template.HTML {
	return renderList(c.field, columnListClass, c.Items(raw, row))
}

// Entry is the read-only detail counterpart of Column.
type Entry struct {
	*field
}

// NewEntry probes target once. target must expose the HTML hook.
func NewEntry(name string, target any, opts ...Option) (*Entry, error) {
	e := &Entry{}
	f, err := newField(name, VariantEntry, target, opts, func(_ *field, target any) {
		allowHTML(target)
	})
	if err != nil {
		return nil, err
	}
	e.field = f
	return e, nil
}

// Wrapped reports whether items stack vertically.
func (e *Entry) Wrapped() bool {
	return e.wrapped
}

// ExtraAttributes is the container attribute contribution for the host.
func (e *Entry) ExtraAttributes() map[string]string {
	return listAttributes(entryListClass, e.wrapped)
}

// Items renders one unit per resolved user, in order.
func (e *Entry) Items(raw RawState) []template.HTML {
	return listItems(e.field, e.resolve(raw, nil))
}

// Render produces the list markup.
func (e *Entry) Render(raw RawState) template.HTML {
	return renderList(e.field, entryListClass, e.Items(raw))
}

func listClass(base string, wrapped bool) string {
	if wrapped {
		return base + wrappedClass
	}
	return base
}

func listAttributes(base string, wrapped bool) map[string]string {
	return map[string]string{"class": listClass(base, wrapped)}
}

func listItems(f *field, descriptors []Descriptor) []template.HTML {
	items := make([]template.HTML, len(descriptors))
	for i := range descriptors {
		items[i] = f.renderUser(&descriptors[i])
	}
	return items
}

func renderList(f *field, base string, items []template.HTML) template.HTML {
	html, err := f.renderer.RenderList(ListView{Class: listClass(base, f.wrapped), Items: items})
	if err != nil {
		return ""
	}
	return html
}
