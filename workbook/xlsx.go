package workbook

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type xlsx struct {
	path string
	file *excelize.File
}

// OpenXLSX opens a local Excel workbook.
func OpenXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook %v (%w)", path, err)
	}

	return &xlsx{
		path: path,
		file: f,
	}, nil
}

func (x *xlsx) ID() string {
	return x.path
}

func (x *xlsx) Title() string {
	if props, err := x.file.GetDocProps(); err == nil && props != nil && props.Title != "" {
		return props.Title
	}

	return strings.TrimSuffix(filepath.Base(x.path), filepath.Ext(x.path))
}

func (x *xlsx) Worksheets() []string {
	return x.file.GetSheetList()
}

func (x *xlsx) Values(ctx context.Context, worksheet string) ([][]any, error) {
	if !hasWorksheet(x.Worksheets(), worksheet) {
		return nil, fmt.Errorf("unable to identify worksheet '%v'", worksheet)
	}

	rows, err := x.file.GetRows(worksheet)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet '%v' (%w)", worksheet, err)
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, v := range row {
			values[i][j] = v
		}
	}

	return values, nil
}

// Modified returns the modification time recorded in the workbook document properties.
func (x *xlsx) Modified(ctx context.Context) (time.Time, error) {
	props, err := x.file.GetDocProps()
	if err != nil {
		return time.Time{}, err
	}

	if props == nil || props.Modified == "" {
		return time.Time{}, fmt.Errorf("workbook %v has no modification time", x.path)
	}

	return time.Parse(time.RFC3339, props.Modified)
}

func (x *xlsx) Close() error {
	return x.file.Close()
}
