package userfields

import "strings"

// Host is the part of the admin environment fields consult at render time.
// Both lookups must be fast, synchronous and side-effect free.
type Host interface {
	AvatarURL(Descriptor) (string, bool)
	UserName(Descriptor) string
}

// HostFuncs adapts plain functions to Host. Nil functions fall back to
// SourceHost behaviour.
type HostFuncs struct {
	Avatar AvatarURLFunc
	Name   func(Descriptor) string
}

// AvatarURL implements Host.
func (h HostFuncs) AvatarURL(d Descriptor) (string, bool) {
	if h.Avatar == nil {
		return SourceHost{}.AvatarURL(d)
	}
	return h.Avatar(d)
}

// UserName implements Host.
func (h HostFuncs) UserName(d Descriptor) string {
	if h.Name == nil {
		return d.Name
	}
	return h.Name(d)
}

// SourceHost reads avatars straight from the descriptor's AvatarSource: a
// string is used as the URL, a MapRecord or map contributes its avatar_url
// attribute. Names are kept as resolved.
type SourceHost struct{}

// AvatarKeys are the attribute names SourceHost checks, in order.
var AvatarKeys = []string{"avatar_url", "avatar"}

// AvatarURL implements Host.
func (SourceHost) AvatarURL(d Descriptor) (string, bool) {
	switch source := d.AvatarSource.(type) {
	case string:
		return nonEmpty(source)
	case MapRecord:
		return avatarFromAttributes(source)
	case map[string]any:
		return avatarFromAttributes(source)
	default:
		return "", false
	}
}

// UserName implements Host.
func (SourceHost) UserName(d Descriptor) string {
	return d.Name
}

func avatarFromAttributes(attrs map[string]any) (string, bool) {
	for _, key := range AvatarKeys {
		if value, ok := attrs[key].(string); ok {
			if url, ok := nonEmpty(value); ok {
				return url, true
			}
		}
	}
	return "", false
}

func nonEmpty(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, value != ""
}
