package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/gsheets-loader/gsheets-loader/loader"
	"github.com/gsheets-loader/gsheets-loader/table"
)

const separator = "--------------------------------------------------"

// Summary prints the record count, column names and a preview of the first 'preview' records
// of each loaded worksheet. A preview of 0 prints every record.
func Summary(w io.Writer, p *message.Printer, result *loader.Result, preview int) error {
	if result == nil {
		return nil
	}

	if !result.Modified.IsZero() {
		p.Fprintf(w, msgModified, result.Title, result.Modified.Local().Format(time.DateTime))
		fmt.Fprintln(w)
		fmt.Fprintln(w)
	}

	for i, t := range result.Tables {
		if i > 0 {
			fmt.Fprintln(w, separator)
		}

		if err := summarise(w, p, t, preview); err != nil {
			return err
		}
	}

	return nil
}

// Success prints the localized success line.
func Success(w io.Writer, p *message.Printer, msg string) {
	fmt.Fprintln(w)
	p.Fprintf(w, msg)
	fmt.Fprintln(w)
}

// Error prints a single localized error line.
func Error(w io.Writer, p *message.Printer, err error) {
	p.Fprintf(w, msgError, err)
	fmt.Fprintln(w)
}

func summarise(w io.Writer, p *message.Printer, t *table.Table, preview int) error {
	records, _ := t.Dimensions()

	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = fmt.Sprintf("'%v'", c)
	}

	p.Fprintf(w, msgLoaded, t.Name, records)
	fmt.Fprintln(w)
	p.Fprintf(w, msgColumns, t.Name, strings.Join(columns, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	p.Fprintf(w, msgPreview)
	fmt.Fprintln(w)

	return table.WriteTSV(w, t.Columns, t.Head(preview))
}
