package userfields

import (
	"fmt"
	"strings"
)

// LabelSeparator joins names in a multi-user label.
const LabelSeparator = ", "

// AvatarURLFunc resolves an avatar reference for a descriptor. It reports false
// when no image is available.
type AvatarURLFunc func(Descriptor) (string, bool)

// Image is one avatar slot. An empty URL marks a placeholder slot.
type Image struct {
	URL string
}

// Missing reports whether the slot renders a placeholder.
func (i Image) Missing() bool {
	return i.URL == ""
}

// Composition is the display form of a descriptor sequence.
type Composition struct {
	Label  string
	Images []Image
}

// Missing counts placeholder slots.
func (c Composition) Missing() int {
	count := 0
	for _, image := range c.Images {
		if image.Missing() {
			count++
		}
	}
	return count
}

// Issues reports one ErrMissingAvatar per placeholder slot.
func (c Composition) Issues() []error {
	var issues []error
	for i, image := range c.Images {
		if image.Missing() {
			issues = append(issues, fmt.Errorf("%w: slot %d", ErrMissingAvatar, i))
		}
	}
	return issues
}

// Compose builds the label and avatar slots for descriptors. Order is kept and
// names are not de-duplicated. A nil avatarURLOf leaves every slot empty.
func Compose(descriptors []Descriptor, avatarURLOf AvatarURLFunc) Composition {
	return Composition{
		Label:  Label(descriptors),
		Images: images(descriptors, avatarURLOf),
	}
}

// Label joins descriptor names with LabelSeparator.
func Label(descriptors []Descriptor) string {
	switch len(descriptors) {
	case 0:
		return ""
	case 1:
		return descriptors[0].Name
	}
	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.Name
	}
	return strings.Join(names, LabelSeparator)
}

func images(descriptors []Descriptor, avatarURLOf AvatarURLFunc) []Image {
	out := make([]Image, len(descriptors))
	if avatarURLOf == nil {
		return out
	}
	for i, d := range descriptors {
		if url, ok := avatarURLOf(d); ok {
			out[i] = Image{URL: strings.TrimSpace(url)}
		}
	}
	return out
}
