package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"upkeep-server/internal/records/domain"
)

// Badge wraps the value in brackets, e.g. [Active].
func Badge(value any, present bool) string {
	if !present {
		return ""
	}
	return "[" + Stringify(value) + "]"
}

// Currency renders numbers with two decimals and thousands separators.
// Values that are not numbers fall back to their plain text.
func Currency(symbol string) domain.CellFormatter {
	return func(value any, present bool) string {
		if !present {
			return ""
		}
		n, ok := number(value)
		if !ok {
			return Stringify(value)
		}
		sign := ""
		if n < 0 {
			sign = "-"
			n = -n
		}
		whole := int64(n)
		cents := int64(math.Round((n - float64(whole)) * 100))
		if cents == 100 {
			whole++
			cents = 0
		}
		return fmt.Sprintf("%s%s%s.%02d", sign, symbol, groupThousands(whole), cents)
	}
}

func Percent(value any, present bool) string {
	if !present {
		return ""
	}
	n, ok := number(value)
	if !ok {
		return Stringify(value)
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + "%"
}

// Date reformats YYYY-MM-DD values with the given layout.
func Date(layout string) domain.CellFormatter {
	return func(value any, present bool) string {
		if !present {
			return ""
		}
		switch v := value.(type) {
		case time.Time:
			return v.Format(layout)
		case string:
			t, err := time.Parse(domain.DateLayout, v)
			if err != nil {
				return v
			}
			return t.Format(layout)
		default:
			return Stringify(value)
		}
	}
}

// OptionLabel shows the label of a select option instead of its value.
func OptionLabel(options []domain.Option) domain.CellFormatter {
	labels := make(map[string]string, len(options))
	for _, o := range options {
		labels[o.Value] = o.Label
	}
	return func(value any, present bool) string {
		if !present {
			return ""
		}
		raw := Stringify(value)
		if label, ok := labels[raw]; ok {
			return label
		}
		return raw
	}
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
