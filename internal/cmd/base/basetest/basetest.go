// Package basetest builds CLI commands wired to a fake Edusign API.
package basetest

import (
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/edusign-go/internal/cmd/base"
	"github.com/hashicorp-forge/edusign-go/internal/config"
	"github.com/hashicorp-forge/edusign-go/pkg/edusign/edusigntest"
)

// ConfigPath is where New writes the configuration file.
const ConfigPath = "/etc/edusign/edusign.hcl"

// APIKey is the key the fake server expects.
const APIKey = "cli-test-key"

// New starts a fake Edusign API and returns a command base whose config file
// points at it.
func New(t *testing.T) (*base.Command, *cli.MockUi, *edusigntest.Server) {
	t.Helper()
	t.Setenv(config.APIKeyEnvVar, "")

	srv := edusigntest.NewServer()
	srv.APIKey = APIKey
	t.Cleanup(srv.Close)

	fs := afero.NewMemMapFs()
	src := fmt.Sprintf(`
edusign {
  base_url = %q
  api_key  = %q
  timeout  = "5s"
}
`, srv.URL, APIKey)
	require.NoError(t, afero.WriteFile(fs, ConfigPath, []byte(src), 0o600))

	ui := cli.NewMockUi()
	return &base.Command{
		Log: hclog.NewNullLogger(),
		UI:  ui,
		Fs:  fs,
	}, ui, srv
}
