package userfields

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed views/*.html
var viewFiles embed.FS

var defaultTemplates = template.Must(template.ParseFS(viewFiles, "views/*.html"))

// SlotView is one avatar slot as handed to a Renderer.
type SlotView struct {
	URL              string
	Alt              string
	Class            string
	Modern           bool
	Size             int
	Style            template.CSS
	PlaceholderClass string
}

// PlaceholderClasses is the class list of an image-less slot: the placeholder
// class followed by the presentation classes, either of which may be empty.
func (s SlotView) PlaceholderClasses() string {
	return strings.TrimSpace(s.PlaceholderClass + " " + s.Class)
}

// UserView is the avatar plus name unit shared by option labels and lists.
type UserView struct {
	Present bool
	Name    string
	Avatar  SlotView
}

// StackView is an overlapping avatar stack with its tooltip label.
type StackView struct {
	Label string
	Slots []SlotView
}

// ListView is a container of pre-rendered user units.
type ListView struct {
	Class string
	Items []template.HTML
}

// Renderer turns views into markup. Implementations must be deterministic.
type Renderer interface {
	RenderUser(UserView) (template.HTML, error)
	RenderStack(StackView) (template.HTML, error)
	RenderList(ListView) (template.HTML, error)
}

// TemplateRenderer renders views with html/template.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer returns a renderer over the bundled views.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{templates: defaultTemplates}
}

// NewTemplateRendererFrom uses caller supplied templates. They must define
// "user_option", "stacked" and "list".
func NewTemplateRendererFrom(templates *template.Template) (*TemplateRenderer, error) {
	if templates == nil {
		return nil, fmt.Errorf("userfields: templates are nil")
	}
	for _, name := range []string{"user_option", "stacked", "list"} {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("userfields: template %q is not defined", name)
		}
	}
	return &TemplateRenderer{templates: templates}, nil
}

// RenderUser implements Renderer.
func (r *TemplateRenderer) RenderUser(view UserView) (template.HTML, error) {
	return r.execute("user_option", view)
}

// RenderStack implements Renderer.
func (r *TemplateRenderer) RenderStack(view StackView) (template.HTML, error) {
	return r.execute("stacked", view)
}

// RenderList implements Renderer.
func (r *TemplateRenderer) RenderList(view ListView) (template.HTML, error) {
	return r.execute("list", view)
}

func (r *TemplateRenderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("userfields: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (p Presentation) slot(image Image, alt string) SlotView {
	return SlotView{
		URL:              image.URL,
		Alt:              alt,
		Class:            p.Classes(),
		Modern:           p.Strategy == StrategyModern,
		Size:             p.Size,
		Style:            template.CSS(p.Style()),
		PlaceholderClass: p.PlaceholderClass,
	}
}

// userView builds the shared avatar plus name unit. A nil descriptor renders
// an empty container.
func userView(p Presentation, d *Descriptor, host Host) UserView {
	if d == nil {
		return UserView{}
	}
	composition := Compose([]Descriptor{*d}, host.AvatarURL)
	return UserView{
		Present: true,
		Name:    composition.Label,
		Avatar:  p.slot(composition.Images[0], composition.Label),
	}
}

func stackView(p Presentation, composition Composition, descriptors []Descriptor) StackView {
	slots := make([]SlotView, len(composition.Images))
	for i, image := range composition.Images {
		slots[i] = p.slot(image, descriptors[i].Name)
	}
	return StackView{Label: composition.Label, Slots: slots}
}

// RenderUser renders the shared avatar plus name unit with the bundled
// templates and a modern, default sized presentation.
func RenderUser(d *Descriptor, host Host) template.HTML {
	if host == nil {
		host = SourceHost{}
	}
	p := newPresentation(StrategyModern, DefaultConfig())
	html, err := NewTemplateRenderer().RenderUser(userView(p, d, host))
	if err != nil {
		return ""
	}
	return html
}
