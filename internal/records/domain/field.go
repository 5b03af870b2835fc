package domain

import "fmt"

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// DateLayout is the wire format of date field values.
const DateLayout = "2006-01-02"

type Option struct {
	Value string
	Label string
}

type FieldBase struct {
	Name        string
	Label       string
	Required    bool
	Placeholder string
	Section     string
}

// Field is a form field descriptor. The set of implementations is closed:
// TextField, NumberField, DateField, TextareaField and SelectField.
type Field interface {
	Base() FieldBase
	Type() FieldType
	sealed()
}

type TextField struct{ FieldBase }

type NumberField struct{ FieldBase }

type DateField struct{ FieldBase }

type TextareaField struct {
	FieldBase
	Rows int
}

type SelectField struct {
	FieldBase
	Options []Option
}

func (f TextField) Base() FieldBase     { return f.FieldBase }
func (f NumberField) Base() FieldBase   { return f.FieldBase }
func (f DateField) Base() FieldBase     { return f.FieldBase }
func (f TextareaField) Base() FieldBase { return f.FieldBase }
func (f SelectField) Base() FieldBase   { return f.FieldBase }

func (TextField) Type() FieldType     { return FieldTypeText }
func (NumberField) Type() FieldType   { return FieldTypeNumber }
func (DateField) Type() FieldType     { return FieldTypeDate }
func (TextareaField) Type() FieldType { return FieldTypeTextarea }
func (SelectField) Type() FieldType   { return FieldTypeSelect }

func (TextField) sealed()     {}
func (NumberField) sealed()   {}
func (DateField) sealed()     {}
func (TextareaField) sealed() {}
func (SelectField) sealed()   {}

func (f SelectField) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (f SelectField) LabelFor(value string) string {
	for _, o := range f.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// NewField decodes a wire field type into its descriptor variant.
func NewField(fieldType FieldType, base FieldBase, options []Option) (Field, error) {
	var field Field
	switch fieldType {
	case FieldTypeText:
		field = TextField{base}
	case FieldTypeNumber:
		field = NumberField{base}
	case FieldTypeDate:
		field = DateField{base}
	case FieldTypeTextarea:
		field = TextareaField{FieldBase: base}
	case FieldTypeSelect:
		field = SelectField{FieldBase: base, Options: options}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, fieldType)
	}

	if err := ValidateFields([]Field{field}); err != nil {
		return nil, err
	}
	return field, nil
}

// OptionsOf returns the options of a select field and nil for every other variant.
func OptionsOf(f Field) []Option {
	switch v := f.(type) {
	case SelectField:
		return v.Options
	case TextField, NumberField, DateField, TextareaField:
		return nil
	default:
		panic(fmt.Sprintf("unhandled field variant %T", f))
	}
}

func ValidateFields(fields []Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		name := f.Base().Name
		if name == "" {
			return ErrFieldNameRequired
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateFieldName, name)
		}
		seen[name] = struct{}{}

		if s, ok := f.(SelectField); ok && len(s.Options) == 0 {
			return fmt.Errorf("%w: %s", ErrSelectWithoutOptions, name)
		}
	}
	return nil
}

func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Base().Name
	}
	return names
}
