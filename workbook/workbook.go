package workbook

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"
)

// Connector authenticates with a service account credentials file.
type Connector interface {
	Connect(ctx context.Context, credentials string) (Opener, error)
}

// Opener opens a workbook by URL.
type Opener interface {
	Open(ctx context.Context, url string) (Workbook, error)
}

// Workbook is a read-only handle to an opened workbook.
type Workbook interface {
	ID() string
	Title() string
	Worksheets() []string
	Values(ctx context.Context, worksheet string) ([][]any, error)
	Close() error
}

// Modifiable is implemented by workbooks that can report when they were last modified.
type Modifiable interface {
	Modified(ctx context.Context) (time.Time, error)
}

var driveLetter = regexp.MustCompile(`^/[a-zA-Z]:`)

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/([a-zA-Z0-9_-]+)(?:[/?#].*)?$`)

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL.
func SpreadsheetID(u string) (string, error) {
	match := spreadsheetURL.FindStringSubmatch(strings.TrimSpace(u))
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL '%v' - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'", u)
	}

	return match[1], nil
}

// localPath returns the file path for file:// URLs and bare .xlsx paths.
func localPath(u string) (string, bool) {
	u = strings.TrimSpace(u)

	if strings.HasPrefix(u, "file://") {
		if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
			return filepath.FromSlash(urlPath(runtime.GOOS, parsed.Path)), true
		}

		return "", false
	}

	if !strings.Contains(u, "://") && strings.EqualFold(filepath.Ext(u), ".xlsx") {
		return u, true
	}

	return "", false
}

// urlPath drops the leading slash of a file:///C:/... path on Windows.
func urlPath(goos, p string) string {
	if goos == "windows" && driveLetter.MatchString(p) {
		return p[1:]
	}

	return p
}

// hasWorksheet returns true if the workbook has a worksheet with exactly the given title.
func hasWorksheet(titles []string, title string) bool {
	for _, t := range titles {
		if t == title {
			return true
		}
	}

	return false
}
