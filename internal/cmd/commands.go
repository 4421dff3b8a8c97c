package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/edusign-go/internal/cmd/base"
	"github.com/hashicorp-forge/edusign-go/internal/cmd/commands/attendancesheet"
	"github.com/hashicorp-forge/edusign-go/internal/cmd/commands/course"
	"github.com/hashicorp-forge/edusign-go/internal/cmd/commands/group"
	"github.com/hashicorp-forge/edusign-go/internal/cmd/commands/professor"
	"github.com/hashicorp-forge/edusign-go/internal/cmd/commands/student"
	"github.com/hashicorp-forge/edusign-go/internal/cmd/commands/version"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"attendance-sheet": func() (cli.Command, error) {
			return &attendancesheet.Command{Command: b}, nil
		},
		"course": func() (cli.Command, error) {
			return &course.Command{Command: b}, nil
		},
		"course get": func() (cli.Command, error) {
			return &course.GetCommand{Command: b}, nil
		},
		"course lock": func() (cli.Command, error) {
			return &course.LockCommand{Command: b}, nil
		},
		"course send-sign-emails": func() (cli.Command, error) {
			return &course.SendSignEmailsCommand{Command: b}, nil
		},
		"group": func() (cli.Command, error) {
			return &group.Command{Command: b}, nil
		},
		"group get": func() (cli.Command, error) {
			return &group.GetCommand{Command: b}, nil
		},
		"group add-students": func() (cli.Command, error) {
			return &group.AddStudentsCommand{Command: b}, nil
		},
		"professor": func() (cli.Command, error) {
			return &professor.Command{Command: b}, nil
		},
		"professor find-or-create": func() (cli.Command, error) {
			return &professor.FindOrCreateCommand{Command: b}, nil
		},
		"student": func() (cli.Command, error) {
			return &student.Command{Command: b}, nil
		},
		"student get": func() (cli.Command, error) {
			return &student.GetCommand{Command: b}, nil
		},
		"student upsert": func() (cli.Command, error) {
			return &student.UpsertCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
