package table

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"upkeep-server/internal/records/domain"
)

var ErrRowOutOfRange = errors.New("row index out of range")

// Options carries the interaction callbacks of a table. A nil callback
// hides the matching affordance.
type Options struct {
	OnRowClick func(domain.Record)
	OnEdit     func(domain.Record)
	OnDelete   func(domain.Record)
	OnExport   func()
}

type Header struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Cell struct {
	ColumnID string `json:"column_id"`
	Text     string `json:"text"`
	Empty    bool   `json:"empty,omitempty"`
}

type Row struct {
	RecordID domain.ID `json:"record_id"`
	Cells    []Cell    `json:"cells"`
}

type Actions struct {
	RowClick bool `json:"row_click"`
	Edit     bool `json:"edit"`
	Delete   bool `json:"delete"`
	Export   bool `json:"export"`
}

type View struct {
	Headers []Header `json:"headers"`
	Rows    []Row    `json:"rows"`
	Actions Actions  `json:"actions"`

	records []domain.Record
	opts    Options
}

// Render lays out one row per record, in input order, and one cell per
// column. It neither sorts nor filters. A record without a value for a
// column's accessor key gets an empty cell.
func Render(data []domain.Record, columns []domain.Column, opts Options) View {
	view := View{
		Headers: make([]Header, len(columns)),
		Rows:    make([]Row, len(data)),
		Actions: Actions{
			RowClick: opts.OnRowClick != nil,
			Edit:     opts.OnEdit != nil,
			Delete:   opts.OnDelete != nil,
			Export:   opts.OnExport != nil,
		},
		records: data,
		opts:    opts,
	}

	for i, c := range columns {
		view.Headers[i] = Header{ID: c.ID, Title: c.Header}
	}

	for i, record := range data {
		row := Row{RecordID: record.ID, Cells: make([]Cell, len(columns))}
		for j, c := range columns {
			row.Cells[j] = renderCell(record, c)
		}
		view.Rows[i] = row
	}

	return view
}

func renderCell(record domain.Record, c domain.Column) Cell {
	value, present := record.Value(c.AccessorKey)
	cell := Cell{ColumnID: c.ID}
	if c.Cell != nil {
		cell.Text = c.Cell(value, present)
	} else if present {
		cell.Text = Stringify(value)
	}
	cell.Empty = cell.Text == ""
	return cell
}

func (v View) record(i int) (domain.Record, error) {
	if i < 0 || i >= len(v.records) {
		return domain.Record{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, i)
	}
	return v.records[i], nil
}

func (v View) Click(i int) error {
	return v.fire(i, v.opts.OnRowClick)
}

func (v View) Edit(i int) error {
	return v.fire(i, v.opts.OnEdit)
}

func (v View) Delete(i int) error {
	return v.fire(i, v.opts.OnDelete)
}

func (v View) Export() {
	if v.opts.OnExport != nil {
		v.opts.OnExport()
	}
}

func (v View) fire(i int, fn func(domain.Record)) error {
	r, err := v.record(i)
	if err != nil {
		return err
	}
	if fn != nil {
		fn(r)
	}
	return nil
}

// Stringify renders a raw value the way an unformatted cell shows it.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(domain.DateLayout)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
