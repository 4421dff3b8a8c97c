package student

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
	return "Inspect and register Edusign students"
}

func (c *Command) Help() string {
	return `Usage: edusign student <subcommand> [options] [args]

  This command groups subcommands for working with Edusign students.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type GetCommand struct {
	*base.Command

	flagEmail string
}

func (c *GetCommand) Synopsis() string {
	return "Show a student"
}

func (c *GetCommand) Help() string {
	return `Usage: edusign student get [options] [student-id]

  Fetch a student by Edusign ID, or by e-mail with -email.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("student get", flag.ContinueOnError))
	c.ClientFlags(f)
	f.StringVar(
		&c.flagEmail, "email", "",
		"Look the student up by e-mail instead of ID",
	)
	return f
}

func (c *GetCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	switch {
	case c.flagEmail == "" && f.NArg() != 1:
		c.UI.Error("expected exactly one argument: the student ID")
		return 1
	case c.flagEmail != "" && f.NArg() != 0:
		c.UI.Error("a student ID cannot be combined with -email")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	var student *edusign.Student
	if c.flagEmail != "" {
		student, err = client.StudentByEmail(ctx, c.flagEmail)
	} else {
		student, err = client.StudentByID(ctx, f.Arg(0))
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("error getting student: %v", err))
		return 1
	}
	if student == nil {
		c.UI.Error("student not found")
		return 1
	}

	if err := c.Output(student); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type UpsertCommand struct {
	*base.Command

	flagID        string
	flagFirstName string
	flagLastName  string
	flagEmail     string
	flagGroups    []string
}

func (c *UpsertCommand) Synopsis() string {
	return "Create or update a student"
}

func (c *UpsertCommand) Help() string {
	return `Usage: edusign student upsert [options]

  Update the student found by -id, or by -email when no ID is given. A
  student that does not exist or was deleted is created.` + c.Flags().Help()
}

func (c *UpsertCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("student upsert", flag.ContinueOnError))
	c.ClientFlags(f)
	f.StringVar(&c.flagID, "id", "", "Edusign student ID")
	f.StringVar(&c.flagFirstName, "first-name", "", "(Required) First name")
	f.StringVar(&c.flagLastName, "last-name", "", "(Required) Last name")
	f.StringVar(&c.flagEmail, "email", "", "(Required) E-mail address")
	f.StringSliceVar(&c.flagGroups, "group", "Group ID; repeat or comma-separate for several")
	return f
}

func (c *UpsertCommand) Run(args []string) int {
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

	env, err := client.CreateOrUpdateStudent(ctx, edusign.StudentInput{
		ID:        c.flagID,
		FirstName: c.flagFirstName,
		LastName:  c.flagLastName,
		Email:     c.flagEmail,
		GroupIDs:  c.flagGroups,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error saving student: %v", err))
		return 1
	}
	if env.Failed() {
		c.UI.Warn(fmt.Sprintf("Edusign rejected the student: %s", env.Message))
		return 1
	}

	var saved struct {
		ID string `mapstructure:"ID"`
	}
	if err := env.Decode(&saved); err == nil && saved.ID != "" {
		c.UI.Output(saved.ID)
	}
	return 0
}
