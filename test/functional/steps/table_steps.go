package steps

import (
	"fmt"
)

func (fc *FeatureContext) theTableHasRows(entity string, rows int) error {
	data, err := fc.loadTable(entity)
	if err != nil {
		return err
	}
	fc.require.Len(data.Rows, rows)
	fc.before = data
	fc.table = data
	return nil
}

func (fc *FeatureContext) iLoadTheTable(entity string) error {
	data, err := fc.loadTable(entity)
	if err != nil {
		return err
	}
	fc.table = data
	return nil
}

func (fc *FeatureContext) theTableShouldHaveRows(rows int) error {
	fc.require.Len(fc.table.Rows, rows)
	return nil
}

func (fc *FeatureContext) rowShouldShowInTheColumn(row int, text, column string) error {
	fc.require.GreaterOrEqual(row, 1)
	fc.require.LessOrEqual(row, len(fc.table.Rows))

	cell, err := fc.cell(fc.table, row-1, column)
	if err != nil {
		return err
	}
	fc.require.Equal(text, cell)
	return nil
}

// theOtherRowsShouldBeUnchanged compares every row except the last edited
// one with the snapshot taken before the change.
func (fc *FeatureContext) theOtherRowsShouldBeUnchanged() error {
	fc.require.Len(fc.table.Rows, len(fc.before.Rows))
	for i, row := range fc.table.Rows {
		if row.RecordID == fc.dialog.RecordID {
			continue
		}
		fc.require.Equal(fc.before.Rows[i], row, "row %d changed", i+1)
	}
	return nil
}

func (fc *FeatureContext) cell(data tableData, row int, column string) (string, error) {
	for i, h := range data.Headers {
		if h.Title == column || h.ID == column {
			return data.Rows[row].Cells[i].Text, nil
		}
	}
	return "", fmt.Errorf("column %q not found", column)
}

func (fc *FeatureContext) rowWhere(data tableData, column, text string) (string, error) {
	for i, row := range data.Rows {
		value, err := fc.cell(data, i, column)
		if err != nil {
			return "", err
		}
		if value == text {
			return row.RecordID, nil
		}
	}
	return "", fmt.Errorf("no row with %s %q", column, text)
}
