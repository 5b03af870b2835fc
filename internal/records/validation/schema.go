package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"upkeep-server/internal/records/domain"
)

// Schema checks a candidate set of record values and reports the problems
// per field. An empty result means the values are acceptable.
type Schema interface {
	Validate(values domain.Values) domain.FieldErrors
}

type descriptorSchema struct {
	fields []domain.Field
}

// FromFields derives a schema from the field descriptors alone: required
// fields must be filled, numbers and dates must parse and select values
// must be one of the declared options.
func FromFields(fields []domain.Field) Schema {
	return &descriptorSchema{fields: fields}
}

func (s *descriptorSchema) Validate(values domain.Values) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, f := range s.fields {
		base := f.Base()
		raw, ok := values[base.Name]
		if !ok || IsEmpty(raw) {
			if base.Required {
				errs.Add(base.Name, fmt.Sprintf("%s is required", labelOf(base)))
			}
			continue
		}

		if msg := checkValue(f, raw); msg != "" {
			errs.Add(base.Name, msg)
		}
	}
	return errs
}

func checkValue(f domain.Field, raw any) string {
	switch field := f.(type) {
	case domain.TextField, domain.TextareaField:
		return ""
	case domain.NumberField:
		if _, ok := toFloat(raw); !ok {
			return fmt.Sprintf("%s must be a number", labelOf(field.FieldBase))
		}
	case domain.DateField:
		if _, ok := toDate(raw); !ok {
			return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", labelOf(field.FieldBase))
		}
	case domain.SelectField:
		if !field.HasOption(fmt.Sprint(raw)) {
			allowed := make([]string, len(field.Options))
			for i, o := range field.Options {
				allowed[i] = o.Value
			}
			return fmt.Sprintf("%s must be one of: %s", labelOf(field.FieldBase), strings.Join(allowed, ", "))
		}
	default:
		panic(fmt.Sprintf("unhandled field variant %T", f))
	}
	return ""
}

// Normalize converts accepted form input into canonical values: numbers
// become float64, dates become YYYY-MM-DD strings and empty input becomes
// the field's empty value. Keys without a descriptor are kept unchanged.
func Normalize(fields []domain.Field, values domain.Values) domain.Values {
	out := values.Clone()
	for _, f := range fields {
		name := f.Base().Name
		raw, ok := values[name]
		if !ok {
			continue
		}
		if v, ok := normalizeValue(f, raw); ok {
			out[name] = v
		}
	}
	return out
}

func normalizeValue(f domain.Field, raw any) (any, bool) {
	if IsEmpty(raw) {
		return domain.EmptyValue(f), true
	}

	switch f.(type) {
	case domain.NumberField:
		n, ok := toFloat(raw)
		return n, ok
	case domain.DateField:
		d, ok := toDate(raw)
		if !ok {
			return nil, false
		}
		return d.Format(domain.DateLayout), true
	case domain.TextField, domain.TextareaField, domain.SelectField:
		return strings.TrimSpace(fmt.Sprint(raw)), true
	default:
		panic(fmt.Sprintf("unhandled field variant %T", f))
	}
}

func IsEmpty(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, !d.IsZero()
	case string:
		t, err := time.Parse(domain.DateLayout, strings.TrimSpace(d))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

func labelOf(base domain.FieldBase) string {
	if base.Label != "" {
		return base.Label
	}
	return base.Name
}

type composite []Schema

// Compose runs every schema and merges their messages.
func Compose(schemas ...Schema) Schema {
	return composite(schemas)
}

func (c composite) Validate(values domain.Values) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for _, s := range c {
		if s == nil {
			continue
		}
		errs.Merge(s.Validate(values))
	}
	return errs
}
