package loader

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gsheets-loader/gsheets-loader"
	"github.com/gsheets-loader/gsheets-loader/config"
	"github.com/gsheets-loader/gsheets-loader/credentials"
	"github.com/gsheets-loader/gsheets-loader/table"
	"github.com/gsheets-loader/gsheets-loader/workbook"
)

// Options for Load. A nil Connector defaults to workbook.Google{} and a nil Log discards
// diagnostics. TempDir is the directory for the transient credentials file (the default
// temporary directory if empty).
type Options struct {
	Worksheets []string
	Connector  workbook.Connector
	TempDir    string
	Modified   bool
	Log        *zap.SugaredLogger
}

// Result holds the worksheets loaded from a workbook, in the order requested.
type Result struct {
	ID       string
	Title    string
	Modified time.Time
	Tables   []*table.Table
}

type loader struct {
	state State
	log   *zap.SugaredLogger
}

// Load authenticates with the configured service account, opens the configured workbook and
// loads the requested worksheets. The first failure aborts the load and no partial result is
// returned.
func Load(ctx context.Context, cfg *config.Config, options Options) (*Result, error) {
	l := loader{
		state: Uninitialized,
		log:   options.Log,
	}

	if l.log == nil {
		l.log = zap.NewNop().Sugar()
	}

	result, err := l.load(ctx, cfg, options)
	if err != nil {
		l.log.Debugw("load failed", "state", l.state.String(), "kind", gsheets.KindOf(err).String())
		l.transition(Failed)
		return nil, err
	}

	return result, nil
}

func (l *loader) load(ctx context.Context, cfg *config.Config, options Options) (*Result, error) {
	if cfg == nil {
		return nil, gsheets.Errorf(gsheets.ConfigParseError, "missing configuration")
	}

	l.transition(ConfigLoaded)

	worksheets := []string{}
	for _, w := range options.Worksheets {
		if s := strings.TrimSpace(w); s != "" {
			worksheets = append(worksheets, s)
		}
	}

	if len(worksheets) == 0 {
		return nil, gsheets.Errorf(gsheets.WorksheetLoadError, "no worksheets specified")
	}

	connector := options.Connector
	if connector == nil {
		connector = workbook.Google{}
	}

	// ... authenticate
	var opener workbook.Opener

	err := credentials.With(options.TempDir, cfg.Credentials, func(path string) (err error) {
		opener, err = connector.Connect(ctx, path)
		return
	})
	if err != nil {
		return nil, gsheets.Wrap(gsheets.AuthenticationError, err, "Google Sheets API initialisation failed")
	}

	l.transition(Authenticated)

	// ... open workbook
	url := cfg.GoogleSheets.DataSheetURL
	if url == "" {
		return nil, gsheets.Errorf(gsheets.AuthenticationError, "Google Sheets API initialisation failed (missing data_sheet_url)")
	}

	wb, err := opener.Open(ctx, url)
	if err != nil {
		return nil, gsheets.Wrap(gsheets.AuthenticationError, err, "Google Sheets API initialisation failed")
	}

	defer func() {
		if err := wb.Close(); err != nil {
			l.log.Warnw("error closing workbook", "workbook", wb.ID(), "error", err)
		}
	}()

	l.transition(WorkbookOpen)
	l.log.Infow("opened workbook", "workbook", wb.Title(), "id", wb.ID(), "worksheets", len(wb.Worksheets()))

	result := Result{
		ID:     wb.ID(),
		Title:  wb.Title(),
		Tables: []*table.Table{},
	}

	if options.Modified {
		result.Modified = l.modified(ctx, wb)
	}

	// ... load worksheets
	for _, worksheet := range worksheets {
		values, err := wb.Values(ctx, worksheet)
		if err != nil {
			return nil, gsheets.Wrap(gsheets.WorksheetLoadError, err, "error loading worksheet '%v'", worksheet)
		}

		t := table.MakeTable(worksheet, values)
		rows, columns := t.Dimensions()

		l.log.Infow("retrieved worksheet", "worksheet", worksheet, "rows", rows, "columns", columns)

		result.Tables = append(result.Tables, t)
	}

	l.transition(DataLoaded)

	return &result, nil
}

func (l *loader) modified(ctx context.Context, wb workbook.Workbook) time.Time {
	if m, ok := wb.(workbook.Modifiable); ok {
		if modified, err := m.Modified(ctx); err != nil {
			l.log.Warnw("unable to retrieve workbook modification time", "workbook", wb.ID(), "error", err)
		} else {
			return modified
		}
	}

	return time.Time{}
}

func (l *loader) transition(state State) {
	l.log.Debugw("state", "from", l.state.String(), "to", state.String())
	l.state = state
}
