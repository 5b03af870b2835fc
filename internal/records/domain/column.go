package domain

import "fmt"

// CellFormatter renders a raw record value. present is false when the
// record has no value under the column's accessor key.
type CellFormatter func(value any, present bool) string

type Column struct {
	ID          string
	Header      string
	AccessorKey string
	Cell        CellFormatter
}

func ValidateColumns(columns []Column) error {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
