package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

// WriteCSV writes the header titles followed by the rendered cell texts.
func WriteCSV(w io.Writer, view View) error {
	out := csv.NewWriter(w)
	if err := out.Write(view.titles()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range view.Rows {
		if err := out.Write(row.texts()); err != nil {
			return fmt.Errorf("writing csv row %s: %w", row.RecordID, err)
		}
	}
	out.Flush()
	return out.Error()
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderText draws the view as a bordered terminal table.
func RenderText(view View) string {
	rows := make([][]string, len(view.Rows))
	for i, r := range view.Rows {
		rows[i] = r.texts()
	}

	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(view.titles()...).
		Rows(rows...).
		String()
}

func (v View) titles() []string {
	titles := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		titles[i] = h.Title
	}
	return titles
}

func (r Row) texts() []string {
	texts := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		texts[i] = c.Text
	}
	return texts
}
