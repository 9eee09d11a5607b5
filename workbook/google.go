package workbook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	SHEETS = sheets.SpreadsheetsReadonlyScope
	DRIVE  = drive.DriveMetadataReadonlyScope
)

// Google connects to the Google Sheets and Google Drive APIs with a service account. Options
// are appended to the client options of both services.
type Google struct {
	Scopes  []string
	Options []option.ClientOption
}

type session struct {
	sheets *sheets.Service
	drive  *drive.Service
}

type spreadsheet struct {
	session
	id         string
	title      string
	worksheets []string
}

// Connect reads the service account credentials file and returns an Opener for workbooks
// shared with the service account. The credentials file is not needed once Connect returns.
func (g Google) Connect(ctx context.Context, credentials string) (Opener, error) {
	client, err := authorize(ctx, credentials, g.scopes()...)
	if err != nil {
		return nil, err
	}

	options := append([]option.ClientOption{option.WithHTTPClient(client)}, g.Options...)

	s, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	d, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	return &session{
		sheets: s,
		drive:  d,
	}, nil
}

func (g Google) scopes() []string {
	if len(g.Scopes) > 0 {
		return g.Scopes
	}

	return []string{SHEETS, DRIVE}
}

func authorize(ctx context.Context, credentials string, scopes ...string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	config, err := google.JWTConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, err
	}

	return config.Client(ctx), nil
}

// Open fetches the workbook metadata for a Google Sheets URL. file:// URLs and .xlsx paths
// are opened as local Excel workbooks.
func (s *session) Open(ctx context.Context, url string) (Workbook, error) {
	if path, ok := localPath(url); ok {
		return OpenXLSX(path)
	}

	id, err := SpreadsheetID(url)
	if err != nil {
		return nil, err
	}

	response, err := s.sheets.Spreadsheets.Get(id).
		Fields("spreadsheetId", "properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet %v (%w)", id, describe(err))
	}

	worksheets := []string{}
	for _, sheet := range response.Sheets {
		if sheet.Properties != nil {
			worksheets = append(worksheets, sheet.Properties.Title)
		}
	}

	title := ""
	if response.Properties != nil {
		title = response.Properties.Title
	}

	return &spreadsheet{
		session:    *s,
		id:         response.SpreadsheetId,
		title:      title,
		worksheets: worksheets,
	}, nil
}

func (s *spreadsheet) ID() string {
	return s.id
}

func (s *spreadsheet) Title() string {
	return s.title
}

func (s *spreadsheet) Worksheets() []string {
	return s.worksheets
}

// Values retrieves the formatted cell values of the worksheet with exactly the given title.
func (s *spreadsheet) Values(ctx context.Context, worksheet string) ([][]any, error) {
	if !hasWorksheet(s.worksheets, worksheet) {
		return nil, fmt.Errorf("unable to identify worksheet '%v'", worksheet)
	}

	response, err := s.sheets.Spreadsheets.Values.Get(s.id, quote(worksheet)).
		MajorDimension("ROWS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet '%v' (%w)", worksheet, describe(err))
	}

	return response.Values, nil
}

func (s *spreadsheet) Close() error {
	return nil
}

// quote returns the A1 notation for an entire worksheet.
func quote(worksheet string) string {
	return "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
}

func describe(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusForbidden:
			return fmt.Errorf("workbook is not shared with the service account: %w", err)

		case http.StatusNotFound:
			return fmt.Errorf("workbook not found: %w", err)

		case http.StatusUnauthorized:
			return fmt.Errorf("service account credentials rejected: %w", err)
		}
	}

	return err
}
