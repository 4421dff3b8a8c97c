package group

import (
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/edusign-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect and update Edusign groups"
}

func (c *Command) Help() string {
	return `Usage: edusign group <subcommand> [options] [args]

  This command groups subcommands for working with Edusign school groups.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a group"
}

func (c *GetCommand) Help() string {
	return `Usage: edusign group get [options] <group-id>

  Fetch a group and its members.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("group get", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: the group ID")
		return 1
	}
	groupID := f.Arg(0)

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	group, err := client.Group(ctx, groupID)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error getting group: %v", err))
		return 1
	}
	if group == nil {
		c.UI.Error(fmt.Sprintf("group %q not found", groupID))
		return 1
	}

	if err := c.Output(group); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type AddStudentsCommand struct {
	*base.Command
}

func (c *AddStudentsCommand) Synopsis() string {
	return "Add students to a group"
}

func (c *AddStudentsCommand) Help() string {
	return `Usage: edusign group add-students [options] <group-id> <student-id>...

  Add students to a group. Existing members are kept and duplicates are
  dropped.` + c.Flags().Help()
}

func (c *AddStudentsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("group add-students", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *AddStudentsCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() < 2 {
		c.UI.Error("expected a group ID followed by at least one student ID")
		return 1
	}
	groupID, studentIDs := f.Arg(0), f.Args()[1:]

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	if _, err := client.AddStudentsToGroup(ctx, groupID, studentIDs); err != nil {
		c.UI.Error(fmt.Sprintf("error adding students to group: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("added %d student(s) to group %s", len(studentIDs), groupID))
	return 0
}
