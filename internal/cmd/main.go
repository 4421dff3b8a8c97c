package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/edusign-go/internal/version"
)

// Main runs the edusign CLI against the process streams and returns the
// exit code.
func Main(args []string) int {
	log := hclog.New(&hclog.LoggerOptions{
		Name:   "edusign",
		Output: os.Stderr,
	})

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	return Run(args, log, ui)
}

// Run dispatches args to a subcommand. With no subcommand it prints the
// command list and fails.
func Run(args []string, log hclog.Logger, ui cli.Ui) int {
	cliName := args[0]
	initCommands(log, ui)

	switch {
	case len(args) == 1:
		ui.Error(cli.BasicHelpFunc(cliName)(topLevel(Commands)))
		return 1
	case len(args) == 2 && (args[1] == "-version" || args[1] == "-v"):
		args = []string{cliName, "version"}
	}

	c := &cli.CLI{
		Name:       cliName,
		Args:       args[1:],
		Version:    version.Version,
		Commands:   Commands,
		HelpFunc:   cli.BasicHelpFunc(cliName),
		HelpWriter: &uiWriter{ui: ui},
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}

func topLevel(commands map[string]cli.CommandFactory) map[string]cli.CommandFactory {
	out := make(map[string]cli.CommandFactory, len(commands))
	for name, factory := range commands {
		if !strings.Contains(name, " ") {
			out[name] = factory
		}
	}
	return out
}

// uiWriter sends CLI help output through the UI error stream.
type uiWriter struct {
	ui cli.Ui
}

func (w *uiWriter) Write(p []byte) (int, error) {
	w.ui.Error(string(p))
	return len(p), nil
}
