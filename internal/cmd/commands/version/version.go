package version

import (
	"github.com/hashicorp-forge/edusign-go/internal/cmd/base"
	"github.com/hashicorp-forge/edusign-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the edusign CLI version"
}

func (c *Command) Help() string {
	return `Usage: edusign version

  Print the version of the edusign CLI.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
