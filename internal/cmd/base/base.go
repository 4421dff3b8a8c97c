package base

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/edusign-go/internal/config"
	"github.com/hashicorp-forge/edusign-go/pkg/edusign"
)

// Output formats accepted by -format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Command is embedded by every CLI command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is where configuration files are read from.
	Fs afero.Fs

	flagConfig string
	flagFormat string
}

// NewCommand returns a Command reading configuration from the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}

// ClientFlags adds the -config and -format flags shared by commands that
// call the Edusign API.
func (c *Command) ClientFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"(Required) Path to the Edusign HCL config file",
	)
	f.StringVar(
		&c.flagFormat, "format", FormatJSON,
		"Output format: json or yaml",
	)
}

// Client builds an Edusign client from the -config file.
func (c *Command) Client() (*edusign.Client, error) {
	if c.flagConfig == "" {
		return nil, fmt.Errorf("config flag is required")
	}
	switch c.flagFormat {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported format %q", c.flagFormat)
	}

	fs := c.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cfg, err := config.Load(fs, c.flagConfig)
	if err != nil {
		return nil, err
	}

	level, err := cfg.Edusign.Level()
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	c.Log.SetLevel(level)

	clientCfg, err := cfg.Edusign.ClientConfig(c.Log)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return edusign.NewClient(clientCfg)
}

// Context returns a context cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Output renders v to the UI in the -format format.
func (c *Command) Output(v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch c.flagFormat {
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}

	c.UI.Output(strings.TrimRight(string(data), "\n"))
	return nil
}
