package course

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
	return "Inspect and operate on Edusign courses"
}

func (c *Command) Help() string {
	return `Usage: edusign course <subcommand> [options] [args]

  This command groups subcommands for working with Edusign courses.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Show a course"
}

func (c *GetCommand) Help() string {
	return `Usage: edusign course get [options] <course-id>

  Fetch a course with its attendance list.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("course get", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	courseID, code := parseCourseID(c.Command, c.Flags(), args)
	if code != 0 {
		return code
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	course, err := client.Course(ctx, courseID)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error getting course: %v", err))
		return 1
	}
	if course == nil {
		c.UI.Error(fmt.Sprintf("course %q not found", courseID))
		return 1
	}

	if err := c.Output(course); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type LockCommand struct {
	*base.Command
}

func (c *LockCommand) Synopsis() string {
	return "Lock a course attendance list"
}

func (c *LockCommand) Help() string {
	return `Usage: edusign course lock [options] <course-id>

  Lock a course and print the signing link. For a course that is already
  locked, the generated attendance list is printed instead.` + c.Flags().Help()
}

func (c *LockCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("course lock", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *LockCommand) Run(args []string) int {
	courseID, code := parseCourseID(c.Command, c.Flags(), args)
	if code != 0 {
		return code
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	link, err := client.LockCourse(ctx, courseID)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error locking course: %v", err))
		return 1
	}
	if link == "" {
		c.UI.Warn("course was locked concurrently; no link returned")
		return 0
	}

	c.UI.Output(link)
	return 0
}

type SendSignEmailsCommand struct {
	*base.Command
}

func (c *SendSignEmailsCommand) Synopsis() string {
	return "E-mail signature requests for a course"
}

func (c *SendSignEmailsCommand) Help() string {
	return `Usage: edusign course send-sign-emails [options] <course-id>

  E-mail a signature request to every student of the course who has not
  signed yet, and print the IDs e-mailed.` + c.Flags().Help()
}

func (c *SendSignEmailsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("course send-sign-emails", flag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *SendSignEmailsCommand) Run(args []string) int {
	courseID, code := parseCourseID(c.Command, c.Flags(), args)
	if code != 0 {
		return code
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	sent, err := client.SendSignatureEmail(ctx, courseID)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error sending signature e-mails: %v", err))
		return 1
	}
	if len(sent) == 0 {
		c.UI.Info("every student has signed; no e-mail sent")
		return 0
	}

	if err := c.Output(sent); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

// parseCourseID parses flags and returns the single positional course ID.
func parseCourseID(c *base.Command, f *base.FlagSet, args []string) (string, int) {
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return "", 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one argument: the course ID")
		return "", 1
	}
	return f.Arg(0), 0
}
