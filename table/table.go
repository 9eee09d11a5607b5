package table

import (
	"fmt"
	"strings"
)

// Table is a worksheet loaded into memory: the first worksheet row supplies the column names
// and every following row is a record, padded to the number of columns.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// MakeTable converts the cell values returned for a worksheet into a Table. Column names are
// neither required to be unique nor non-empty. Rows longer than the header row extend the
// column list with unnamed columns.
func MakeTable(name string, values [][]any) *Table {
	table := Table{
		Name:    name,
		Columns: []string{},
		Rows:    [][]string{},
	}

	if len(values) == 0 {
		return &table
	}

	// ... header
	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}

	header := values[0]
	for i := 0; i < width; i++ {
		if i < len(header) {
			table.Columns = append(table.Columns, clean(format(header[i])))
		} else {
			table.Columns = append(table.Columns, "")
		}
	}

	// ... records
	for _, row := range values[1:] {
		record := make([]string, width)
		for i, v := range row {
			record[i] = format(v)
		}

		table.Rows = append(table.Rows, record)
	}

	return &table
}

// Dimensions returns the number of records and columns.
func (t *Table) Dimensions() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// Head returns the first n records, or all records if n is 0 or exceeds the record count.
func (t *Table) Head(n int) [][]string {
	if n <= 0 || n >= len(t.Rows) {
		return t.Rows
	}

	return t.Rows[:n]
}

func format(v any) string {
	switch s := v.(type) {
	case nil:
		return ""

	case string:
		return s

	default:
		return fmt.Sprintf("%v", v)
	}
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
