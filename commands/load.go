package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/message"

	"github.com/gsheets-loader/gsheets-loader"
	"github.com/gsheets-loader/gsheets-loader/config"
	"github.com/gsheets-loader/gsheets-loader/loader"
	"github.com/gsheets-loader/gsheets-loader/report"
	"github.com/gsheets-loader/gsheets-loader/workbook"
)

var LoadBudgetCmd = Load{
	command:     defaults(),
	name:        "load-budget",
	description: "Loads the 2026 budget worksheets from a Google Sheets workbook",
	worksheets:  []string{"人力預算(第一版)", "人力預算(第二版)"},
	success:     report.Budget,
}

var LoadPnLCmd = Load{
	command:     defaults(),
	name:        "load-pnl",
	description: "Loads the TSMC PnL worksheets from a Google Sheets workbook",
	worksheets:  []string{"Raw_TruePnL", "Ref_Department", "Ref_Accounts"},
	success:     report.PnL,
}

var LoadCmd = Load{
	command:     defaults(),
	name:        "load",
	description: "Loads a list of worksheets from a Google Sheets workbook",
	worksheets:  []string{},
	success:     report.Loaded,
	generic:     true,
}

// Load is a CLI command that loads a set of worksheets from the workbook in the configuration
// file and prints a summary of each worksheet.
type Load struct {
	command
	name        string
	description string
	worksheets  []string
	success     string
	generic     bool
	list        string

	connector workbook.Connector
	stdout    io.Writer
}

func (cmd *Load) Name() string {
	return cmd.name
}

func (cmd *Load) Description() string {
	return cmd.description
}

func (cmd *Load) Usage() string {
	if cmd.generic {
		return "[--config <file>] --worksheets <titles>"
	}

	return "[--config <file>]"
}

func (cmd *Load) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] %s [options]\n", APP, cmd.name)
	fmt.Println()
	fmt.Printf("  %s\n", cmd.description)

	if !cmd.generic {
		fmt.Println()
		fmt.Println("  Worksheets:")
		for _, w := range cmd.worksheets {
			fmt.Printf("    %s\n", w)
		}
	}

	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	if cmd.generic {
		fmt.Printf(`    %s load --config config.ini --worksheets "Raw_TruePnL,Ref_Accounts" --preview 10`+"\n", APP)
	} else {
		fmt.Printf("    %s --debug %s --config config.ini --lang en\n", APP, cmd.name)
	}
	fmt.Println()
}

func (cmd *Load) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset(cmd.name)

	if cmd.generic {
		flagset.StringVar(&cmd.list, "worksheets", cmd.list, "Comma separated list of worksheet titles. Defaults to the 'worksheets' setting in the configuration file")
	}

	return flagset
}

func (cmd *Load) Execute(args ...any) error {
	if len(args) > 0 {
		if options, ok := args[0].(*Options); ok && options != nil {
			cmd.debug = options.Debug
		}
	}

	stdout := cmd.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	l, err := newLogger(cmd.debug)
	if err != nil {
		return errors.Wrap(err, "unable to initialise logger")
	}

	logger = l
	defer logger.Sync()

	p, err := report.NewPrinter(cmd.lang)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := cmd.exec(context.Background(), stdout, p); err != nil {
		if gsheets.KindOf(err) != gsheets.Unknown {
			report.Error(stdout, p, err)
		}

		return err
	}

	return nil
}

func (cmd *Load) exec(ctx context.Context, stdout io.Writer, p *message.Printer) error {
	if cmd.preview < 0 {
		return errors.Errorf("invalid --preview value (%v)", cmd.preview)
	}

	debugf("loading configuration from %v", cmd.config)

	cfg, err := config.Load(cmd.config)
	if err != nil {
		return err
	}

	worksheets, err := cmd.resolve(cfg)
	if err != nil {
		return err
	}

	debugf("worksheets %q", worksheets)

	result, err := loader.Load(ctx, cfg, loader.Options{
		Worksheets: worksheets,
		Connector:  cmd.connector,
		TempDir:    cmd.tmpdir,
		Modified:   cmd.modified,
		Log:        logger,
	})
	if err != nil {
		return err
	}

	infof("loaded %v worksheets from '%v'", len(result.Tables), result.Title)

	if err := report.Summary(stdout, p, result, cmd.preview); err != nil {
		warnf("error printing summary (%v)", err)
		return errors.Wrap(err, "error printing summary")
	}

	report.Success(stdout, p, cmd.success)

	return nil
}

// Worksheets are taken from --worksheets, then the configuration file, then the command's
// own list.
func (cmd *Load) resolve(cfg *config.Config) ([]string, error) {
	worksheets := []string{}

	if cmd.generic && strings.TrimSpace(cmd.list) != "" {
		for _, w := range strings.Split(cmd.list, ",") {
			if s := strings.TrimSpace(w); s != "" {
				worksheets = append(worksheets, s)
			}
		}
	}

	if len(worksheets) == 0 && len(cfg.GoogleSheets.Worksheets) > 0 {
		worksheets = append(worksheets, cfg.GoogleSheets.Worksheets...)
	}

	if len(worksheets) == 0 {
		worksheets = append(worksheets, cmd.worksheets...)
	}

	if len(worksheets) == 0 {
		return nil, errors.New("--worksheets is a required option")
	}

	return worksheets, nil
}
