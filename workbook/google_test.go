package workbook

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const spreadsheetID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

type fakeGoogle struct {
	*httptest.Server
	tokens   atomic.Int32
	metadata atomic.Int32
	values   atomic.Int32
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()

	g := fakeGoogle{}
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, rq *http.Request) {
		g.tokens.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"ya29.qwerty","token_type":"Bearer","expires_in":3600}`)
	})

	mux.HandleFunc("/v4/spreadsheets/", func(w http.ResponseWriter, rq *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if rq.Header.Get("Authorization") != "Bearer ya29.qwerty" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"code":401,"message":"Request is missing required authentication credential","status":"UNAUTHENTICATED"}}`)
			return
		}

		path := strings.TrimPrefix(rq.URL.Path, "/v4/spreadsheets/")
		id, rest, _ := strings.Cut(path, "/")

		if id != spreadsheetID {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`)
			return
		}

		if rest == "" {
			g.metadata.Add(1)
			fmt.Fprintf(w, `{"spreadsheetId":%q,"properties":{"title":"TSMC PnL"},"sheets":[{"properties":{"title":"Raw_TruePnL"}},{"properties":{"title":"Ref_Department"}}]}`, spreadsheetID)
			return
		}

		g.values.Add(1)

		switch rest {
		case "values/'Raw_TruePnL'":
			fmt.Fprint(w, `{"range":"'Raw_TruePnL'!A1:C3","majorDimension":"ROWS","values":[["Account","Department","Amount"],["6001","Finance","1,000"],["6002","Operations"]]}`)

		case "values/'Ref_Department'":
			fmt.Fprint(w, `{"range":"'Ref_Department'!A1:A1","majorDimension":"ROWS"}`)

		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error":{"code":400,"message":"Unable to parse range: %v","status":"INVALID_ARGUMENT"}}`, rest)
		}
	})

	g.Server = httptest.NewServer(mux)
	t.Cleanup(g.Close)

	return &g
}

func (g *fakeGoogle) connector() Google {
	return Google{
		Options: []option.ClientOption{option.WithEndpoint(g.URL + "/")},
	}
}

func (g *fakeGoogle) credentials(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Error generating private key (%v)", err)
	}

	privateKey := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	b, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "tsmc-pnl",
		"private_key_id": "0123456789abcdef",
		"private_key":    string(privateKey),
		"client_email":   "reader@tsmc-pnl.iam.gserviceaccount.com",
		"client_id":      "123456789",
		"token_uri":      g.URL + "/token",
	})
	if err != nil {
		t.Fatalf("Error encoding credentials (%v)", err)
	}

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, b, 0600); err != nil {
		t.Fatalf("Error writing credentials (%v)", err)
	}

	return path
}

func (g *fakeGoogle) open(t *testing.T, url string) (Workbook, error) {
	t.Helper()

	ctx := context.Background()
	opener, err := g.connector().Connect(ctx, g.credentials(t))
	if err != nil {
		t.Fatalf("Unexpected error connecting to Google Sheets (%v)", err)
	}

	return opener.Open(ctx, url)
}

func TestGoogleOpen(t *testing.T) {
	g := newFakeGoogle(t)

	wb, err := g.open(t, "https://docs.google.com/spreadsheets/d/"+spreadsheetID+"/edit#gid=0")
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	if wb.ID() != spreadsheetID {
		t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", spreadsheetID, wb.ID())
	}

	if wb.Title() != "TSMC PnL" {
		t.Errorf("Incorrect spreadsheet title - expected:%v, got:%v", "TSMC PnL", wb.Title())
	}

	expected := []string{"Raw_TruePnL", "Ref_Department"}
	if !reflect.DeepEqual(wb.Worksheets(), expected) {
		t.Errorf("Incorrect worksheets\n   expected: %v\n   got:      %v", expected, wb.Worksheets())
	}

	if g.tokens.Load() != 1 {
		t.Errorf("Expected 1 token request, got %v", g.tokens.Load())
	}
}

func TestGoogleValues(t *testing.T) {
	expected := [][]any{
		{"Account", "Department", "Amount"},
		{"6001", "Finance", "1,000"},
		{"6002", "Operations"},
	}

	g := newFakeGoogle(t)

	wb, err := g.open(t, "https://docs.google.com/spreadsheets/d/"+spreadsheetID)
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	values, err := wb.Values(context.Background(), "Raw_TruePnL")
	if err != nil {
		t.Fatalf("Unexpected error retrieving worksheet (%v)", err)
	}

	if !reflect.DeepEqual(values, expected) {
		t.Errorf("Incorrect values\n   expected: %v\n   got:      %v", expected, values)
	}
}

func TestGoogleValuesWithEmptyWorksheet(t *testing.T) {
	g := newFakeGoogle(t)

	wb, err := g.open(t, "https://docs.google.com/spreadsheets/d/"+spreadsheetID)
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	values, err := wb.Values(context.Background(), "Ref_Department")
	if err != nil {
		t.Fatalf("Unexpected error retrieving worksheet (%v)", err)
	}

	if len(values) != 0 {
		t.Errorf("Expected no values for empty worksheet, got %v", values)
	}
}

func TestGoogleValuesWithMissingWorksheet(t *testing.T) {
	g := newFakeGoogle(t)

	wb, err := g.open(t, "https://docs.google.com/spreadsheets/d/"+spreadsheetID)
	if err != nil {
		t.Fatalf("Unexpected error opening spreadsheet (%v)", err)
	}

	if _, err := wb.Values(context.Background(), "raw_truepnl"); err == nil {
		t.Errorf("Expected error retrieving worksheet with inexact title")
	}

	if g.values.Load() != 0 {
		t.Errorf("Expected no values requests, got %v", g.values.Load())
	}
}

func TestGoogleOpenWithoutAccess(t *testing.T) {
	g := newFakeGoogle(t)

	_, err := g.open(t, "https://docs.google.com/spreadsheets/d/1ForbiddenSpreadsheet/edit")
	if err == nil {
		t.Fatalf("Expected error opening spreadsheet not shared with the service account")
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != http.StatusForbidden {
		t.Errorf("Expected HTTP 403 error, got %v", err)
	}

	if g.metadata.Load() != 0 || g.values.Load() != 0 {
		t.Errorf("Unexpected spreadsheet requests - metadata:%v, values:%v", g.metadata.Load(), g.values.Load())
	}
}

func TestGoogleOpenWithInvalidURL(t *testing.T) {
	g := newFakeGoogle(t)

	if _, err := g.open(t, "https://example.com/sheet"); err == nil {
		t.Fatalf("Expected error opening invalid spreadsheet URL")
	}

	if g.tokens.Load() != 0 {
		t.Errorf("Expected no token requests, got %v", g.tokens.Load())
	}
}

func TestGoogleConnectWithInvalidCredentials(t *testing.T) {
	tests := map[string]string{
		"authorized user": `{"type":"authorized_user","client_id":"123","client_secret":"qwerty","refresh_token":"uiop"}`,
		"invalid JSON":    `{"type":"service_account",`,
	}

	for name, credentials := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "credentials.json")
			if err := os.WriteFile(path, []byte(credentials), 0600); err != nil {
				t.Fatalf("Error writing credentials (%v)", err)
			}

			if _, err := (Google{}).Connect(context.Background(), path); err == nil {
				t.Errorf("Expected error connecting with invalid credentials")
			}
		})
	}
}

func TestGoogleConnectWithMissingCredentials(t *testing.T) {
	if _, err := (Google{}).Connect(context.Background(), filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("Expected error connecting with missing credentials file")
	}
}
