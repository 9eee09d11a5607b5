package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const APP = "gsheets-loader"

// Options are the global command line options passed to every command.
type Options struct {
	Debug bool
}

type command struct {
	config   string
	preview  int
	lang     string
	modified bool
	tmpdir   string
	debug    bool
}

var logger = zap.NewNop().Sugar()

func defaults() command {
	return command{
		config:   defaultConfig(),
		preview:  5,
		lang:     "zh-TW",
		modified: false,
		tmpdir:   "",
		debug:    false,
	}
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.config, "config", c.config, "Configuration file path (INI, YAML or JSON)")
	flagset.IntVar(&c.preview, "preview", c.preview, "Number of records to preview for each worksheet (0 for all records)")
	flagset.StringVar(&c.lang, "lang", c.lang, "Report language ('en' or 'zh-TW')")
	flagset.BoolVar(&c.modified, "modified", c.modified, "Reports the last modification time of the workbook")
	flagset.StringVar(&c.tmpdir, "tmpdir", c.tmpdir, "Directory for the transient credentials file. Defaults to the system temporary directory")

	return flagset
}

// Prefers a config.ini in the same directory as the executable, falling back to the
// system default.
func defaultConfig() string {
	if exe, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(exe), "config.ini")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return DEFAULT_CONFIG
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.EncodeLevel = zapcore.CapitalLevelEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	l, err := config.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flagset.VisitAll(func(f *flag.Flag) {
		count++
	})

	if count > 0 {
		fmt.Println("  Options:")
		flagset.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-12s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
