package professor

import (
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/edusign-go/internal/cmd/base"
	"github.com/hashicorp-forge/edusign-go/pkg/edusign"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Find or register Edusign professors"
}

func (c *Command) Help() string {
	return `Usage: edusign professor <subcommand> [options] [args]

  This command groups subcommands for working with Edusign professors.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type FindOrCreateCommand struct {
	*base.Command

	flagFirstName string
	flagLastName  string
	flagEmail     string
}

func (c *FindOrCreateCommand) Synopsis() string {
	return "Find a professor by e-mail, creating one if needed"
}

func (c *FindOrCreateCommand) Help() string {
	return `Usage: edusign professor find-or-create [options]

  Look a professor up by e-mail. A professor that does not exist or was
  deleted is created without e-mailing credentials.` + c.Flags().Help()
}

func (c *FindOrCreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("professor find-or-create", flag.ContinueOnError))
	c.ClientFlags(f)
	f.StringVar(&c.flagFirstName, "first-name", "", "(Required) First name")
	f.StringVar(&c.flagLastName, "last-name", "", "(Required) Last name")
	f.StringVar(&c.flagEmail, "email", "", "(Required) E-mail address")
	return f
}

func (c *FindOrCreateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	professor, err := client.FindOrCreateProfessor(ctx, edusign.ProfessorInput{
		FirstName: c.flagFirstName,
		LastName:  c.flagLastName,
		Email:     c.flagEmail,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error finding professor: %v", err))
		return 1
	}
	if professor == nil {
		c.UI.Error("professor not found")
		return 1
	}

	if err := c.Output(professor); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
