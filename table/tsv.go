package table

import (
	"encoding/csv"
	"io"
)

// WriteTSV writes the column names followed by rows to f as tab separated values.
func WriteTSV(f io.Writer, columns []string, rows [][]string) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(columns)
	for _, row := range rows {
		w.Write(row)
	}

	w.Flush()

	return w.Error()
}
