package userfields

import "html/template"

// SelectOption is one entry of a user dropdown.
type SelectOption struct {
	Value ID
	Label template.HTML
}

// Select renders each candidate user as an avatar plus name option. Options
// are rich content, so the host is switched into HTML mode at construction.
type Select struct {
	*field
}

// NewSelect probes target once. target must expose the HTML hook.
func NewSelect(name string, target any, opts ...Option) (*Select, error) {
	s := &Select{}
	f, err := newField(name, VariantSelect, target, opts, func(f *field, target any) {
		allowHTML(target)
		if hook, ok := target.(OptionLabelConfigurer); ok {
			hook.OptionLabel(func(record Record) template.HTML {
				return optionLabel(f, record)
			})
		}
	})
	if err != nil {
		return nil, err
	}
	s.field = f
	return s, nil
}

// AllowsHTML reports that option labels are markup.
func (s *Select) AllowsHTML() bool {
	return true
}

// OptionLabel renders the option for one candidate record. Unset records
// render an empty option row.
func (s *Select) OptionLabel(record Record) template.HTML {
	return optionLabel(s.field, record)
}

// Options renders every resolvable candidate in order.
func (s *Select) Options(records []Record) []SelectOption {
	return selectOptions(s.field, records)
}

// SelectFilter is the table filter flavour of Select. Hosts that build the
// filter's dropdown lazily expose it through FormFieldModifier, which is
// where HTML mode gets switched on.
type SelectFilter struct {
	*field
}

// NewSelectFilter probes target once. target must expose the HTML hook
// directly or through FormFieldModifier.
func NewSelectFilter(name string, target any, opts ...Option) (*SelectFilter, error) {
	s := &SelectFilter{}
	f, err := newField(name, VariantSelectFilter, target, opts, func(f *field, target any) {
		if hook, ok := target.(FormFieldModifier); ok {
			hook.ModifyFormField(allowHTML)
		} else {
			allowHTML(target)
		}
		if hook, ok := target.(OptionLabelConfigurer); ok {
			hook.OptionLabel(func(record Record) template.HTML {
				return optionLabel(f, record)
			})
		}
	})
	if err != nil {
		return nil, err
	}
	s.field = f
	return s, nil
}

// OptionLabel renders the option for one candidate record.
func (s *SelectFilter) OptionLabel(record Record) template.HTML {
	return optionLabel(s.field, record)
}

// Options renders every resolvable candidate in order.
func (s *SelectFilter) Options(records []Record) []SelectOption {
	return selectOptions(s.field, records)
}

func optionLabel(f *field, record Record) template.HTML {
	descriptors := f.resolve(Single(record), nil)
	if len(descriptors) == 0 {
		return f.renderUser(nil)
	}
	return f.renderUser(&descriptors[0])
}

func selectOptions(f *field, records []Record) []SelectOption {
	options := make([]SelectOption, 0, len(records))
	for _, record := range records {
		descriptors := f.resolve(Single(record), nil)
		if len(descriptors) == 0 {
			continue
		}
		options = append(options, SelectOption{
			Value: descriptors[0].ID,
			Label: f.renderUser(&descriptors[0]),
		})
	}
	return options
}
