package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-ini/ini"
	"github.com/knadh/koanf"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/gsheets-loader/gsheets-loader"
)

// ENV_PREFIX is the prefix for environment variables that override configuration settings,
// e.g. GSHEETS_GOOGLE_SHEETS__DATA_SHEET_URL overrides google_sheets.data_sheet_url.
const ENV_PREFIX = "GSHEETS_"

// Config is the immutable result of loading a configuration file.
type Config struct {
	GoogleSheets GoogleSheets `koanf:"google_sheets"`

	// Credentials is the service account JSON object, passed through verbatim.
	Credentials json.RawMessage `koanf:"-"`
	Path        string          `koanf:"-"`
}

// GoogleSheets holds the settings from the GOOGLE_SHEETS section.
type GoogleSheets struct {
	DataSheetURL string   `koanf:"data_sheet_url"`
	Worksheets   []string `koanf:"worksheets"`
}

const (
	credentialsKey = "service_account"
	jsonContentKey = "json_content"
)

// The credential block must be triple quoted. go-ini also accepts bare and backtick quoted
// values.
var jsonContentMarker = regexp.MustCompile(`(?mi)^\s*json_content\s*=\s*"""`)

// Load reads the configuration file at path. Files with a .yaml, .yml or .json extension are
// parsed as a single structured document with a nested 'service_account' object. Anything
// else is parsed as an INI file with the service account JSON embedded in a
// json_content = """ ... """ block.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, gsheets.Errorf(gsheets.ConfigNotFound, "configuration file %v not found", path)
	} else if err != nil {
		return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "unable to access configuration file %v", path)
	}

	k := koanf.New(".")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "error parsing configuration file %v", path)
		}

	case ".json":
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "error parsing configuration file %v", path)
		}

	default:
		settings, err := loadINI(path)
		if err != nil {
			return nil, err
		}

		if err := k.Load(confmap.Provider(settings, "."), nil); err != nil {
			return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "error parsing configuration file %v", path)
		}
	}

	if err := k.Load(env.Provider(ENV_PREFIX, ".", envKey), nil); err != nil {
		return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "error applying environment overrides")
	}

	config := Config{
		Path: path,
	}

	if err := k.Unmarshal("", &config); err != nil {
		return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "invalid configuration file %v", path)
	}

	credentials, err := getCredentials(k)
	if err != nil {
		return nil, err
	}

	config.Credentials = credentials
	config.GoogleSheets.DataSheetURL = strings.TrimSpace(config.GoogleSheets.DataSheetURL)
	config.GoogleSheets.Worksheets = clean(config.GoogleSheets.Worksheets)

	return &config, nil
}

// loadINI parses the simple key=value settings into a flat 'section.key' map. The
// json_content block is returned under the service_account key, whichever section it is in.
func loadINI(path string) (map[string]any, error) {
	options := ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "unable to read configuration file %v", path)
	}

	f, err := ini.LoadSources(options, raw)
	if err != nil {
		return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "error parsing configuration file %v", path)
	}

	settings := map[string]any{}
	for _, section := range f.Sections() {
		prefix := ""
		if !strings.EqualFold(section.Name(), ini.DefaultSection) {
			prefix = section.Name() + "."
		}

		for _, key := range section.Keys() {
			if key.Name() == jsonContentKey {
				if _, ok := settings[credentialsKey]; !ok {
					settings[credentialsKey] = key.Value()
				}
				continue
			}

			settings[prefix+key.Name()] = key.Value()
		}
	}

	if _, ok := settings[credentialsKey]; !ok || !jsonContentMarker.Match(raw) {
		return nil, gsheets.Errorf(gsheets.ConfigParseError, "missing json_content in %v", path)
	}

	return settings, nil
}

func getCredentials(k *koanf.Koanf) (json.RawMessage, error) {
	switch v := k.Get(credentialsKey).(type) {
	case nil:
		return nil, gsheets.Errorf(gsheets.ConfigParseError, "missing service account credentials")

	case string:
		return decode([]byte(v))

	case map[string]any:
		if b, err := json.Marshal(v); err != nil {
			return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "invalid service account credentials")
		} else {
			return decode(b)
		}

	default:
		return nil, gsheets.Errorf(gsheets.ConfigParseError, "invalid service account credentials - expected a JSON object, got %T", v)
	}
}

// decode checks that b is a JSON object and returns it unchanged apart from surrounding
// whitespace.
func decode(b []byte) (json.RawMessage, error) {
	b = bytes.TrimSpace(b)

	var object map[string]any
	if err := json.Unmarshal(b, &object); err != nil {
		return nil, gsheets.Wrap(gsheets.ConfigParseError, err, "error parsing service account JSON")
	} else if object == nil {
		return nil, gsheets.Errorf(gsheets.ConfigParseError, "invalid service account JSON - expected a JSON object")
	}

	return json.RawMessage(b), nil
}

// envKey maps GSHEETS_GOOGLE_SHEETS__DATA_SHEET_URL to google_sheets.data_sheet_url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, ENV_PREFIX))

	return strings.ReplaceAll(key, "__", ".")
}

func clean(list []string) []string {
	cleaned := []string{}
	for _, v := range list {
		if s := strings.TrimSpace(v); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	return cleaned
}
