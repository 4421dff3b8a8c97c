package attendancesheet

import (
	"flag"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hashicorp-forge/edusign-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flagStudent string
	flagStart   string
	flagEnd     string
}

func (c *Command) Synopsis() string {
	return "Generate a student attendance sheet"
}

func (c *Command) Help() string {
	return `Usage: edusign attendance-sheet [options]

  Generate the attendance sheet PDF of a student for every course between
  two dates and print its file name. Dates accept most common layouts, for
  example 2024-01-31, 01/31/2024 or 2024-01-31T08:00:00Z; dates without a
  zone are UTC.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("attendance-sheet", flag.ContinueOnError))
	c.ClientFlags(f)
	f.StringVar(&c.flagStudent, "student", "", "(Required) Edusign student ID")
	f.StringVar(&c.flagStart, "start", "", "(Required) First day covered")
	f.StringVar(&c.flagEnd, "end", "", "Last day covered; defaults to now")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagStudent == "" {
		c.UI.Error("student flag is required")
		return 1
	}
	if c.flagStart == "" {
		c.UI.Error("start flag is required")
		return 1
	}

	start, err := dateparse.ParseIn(c.flagStart, time.UTC)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error parsing start date: %v", err))
		return 1
	}
	end := time.Now().UTC()
	if c.flagEnd != "" {
		if end, err = dateparse.ParseIn(c.flagEnd, time.UTC); err != nil {
			c.UI.Error(fmt.Sprintf("error parsing end date: %v", err))
			return 1
		}
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Edusign client: %v", err))
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	filename, err := client.StudentAttendanceSheetPDF(ctx, c.flagStudent, start, end)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error generating attendance sheet: %v", err))
		return 1
	}

	c.UI.Output(filename)
	return 0
}
