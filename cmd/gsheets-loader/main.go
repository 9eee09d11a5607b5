package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/carlmjohnson/exitcode"
	"github.com/pkg/errors"
	lib "github.com/uhppoted/uhppoted-lib/command"

	"github.com/gsheets-loader/gsheets-loader"
	"github.com/gsheets-loader/gsheets-loader/commands"
)

var cli = []lib.Command{
	&commands.LoadBudgetCmd,
	&commands.LoadPnLCmd,
	&commands.LoadCmd,
	&commands.VersionCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = lib.NewHelp(commands.APP, cli, nil)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	exitcode.Exit(run())
}

func run() error {
	cmd, err := lib.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		return errors.Wrap(err, "invalid command line")
	}

	if cmd == nil {
		help.Execute()
		return errors.New("missing command")
	}

	if err = cmd.Execute(&options); err != nil && gsheets.KindOf(err) == gsheets.Unknown {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
	}

	return err
}
