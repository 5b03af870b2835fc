package domain

import "fmt"

// EntitySchema describes one managed entity: the fields its dialog edits,
// the columns its table shows and how new ids are allocated.
type EntitySchema struct {
	Name              string
	DisplayName       string
	DisplayNamePlural string
	Fields            []Field
	Columns           []Column
	Defaults          Values
	IDStrategy        IDStrategy
}

func (s EntitySchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Base().Name == name {
			return f, true
		}
	}
	return nil, false
}

func (s EntitySchema) Validate() error {
	if err := ValidateFields(s.Fields); err != nil {
		return fmt.Errorf("entity %s fields: %w", s.Name, err)
	}
	if err := ValidateColumns(s.Columns); err != nil {
		return fmt.Errorf("entity %s columns: %w", s.Name, err)
	}
	return nil
}

func (s EntitySchema) IDs() IDStrategy {
	if s.IDStrategy == nil {
		return UUIDStrategy{}
	}
	return s.IDStrategy
}

// InitialValues returns one entry per field, taken from the defaults when
// present and from the field's empty form value otherwise.
func InitialValues(fields []Field, defaults Values) Values {
	values := make(Values, len(fields))
	for _, f := range fields {
		name := f.Base().Name
		if v, ok := defaults[name]; ok {
			values[name] = v
			continue
		}
		values[name] = EmptyValue(f)
	}
	return values
}

func EmptyValue(f Field) any {
	switch f.(type) {
	case NumberField:
		return nil
	case TextField, DateField, TextareaField, SelectField:
		return ""
	default:
		panic(fmt.Sprintf("unhandled field variant %T", f))
	}
}
