package course

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/edusign-go/internal/cmd/base/basetest"
	"github.com/hashicorp-forge/edusign-go/pkg/edusign/edusigntest"
)

func TestGetCommand(t *testing.T) {
	b, ui, srv := basetest.New(t)
	courseID := srv.AddCourse(edusigntest.Entity{"NAME": "Algebra"})

	c := &GetCommand{Command: b}
	code := c.Run([]string{"-config", basetest.ConfigPath, courseID})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &out))
	assert.Equal(t, courseID, out["ID"])
	assert.Equal(t, "Algebra", out["Name"])
}

func TestGetCommand_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		b, ui, _ := basetest.New(t)
		c := &GetCommand{Command: b}
		assert.Equal(t, 1, c.Run([]string{"-config", basetest.ConfigPath, "unknown"}))
		assert.Contains(t, ui.ErrorWriter.String(), "not found")
	})

	t.Run("missing argument", func(t *testing.T) {
		b, ui, _ := basetest.New(t)
		c := &GetCommand{Command: b}
		assert.Equal(t, 1, c.Run([]string{"-config", basetest.ConfigPath}))
		assert.Contains(t, ui.ErrorWriter.String(), "course ID")
	})

	t.Run("missing config", func(t *testing.T) {
		b, ui, _ := basetest.New(t)
		c := &GetCommand{Command: b}
		assert.Equal(t, 1, c.Run([]string{"c1"}))
		assert.Contains(t, ui.ErrorWriter.String(), "config flag is required")
	})
}

func TestLockCommand(t *testing.T) {
	b, ui, srv := basetest.New(t)
	courseID := srv.AddCourse(edusigntest.Entity{"NAME": "Algebra"})

	c := &LockCommand{Command: b}
	require.Equal(t, 0, c.Run([]string{"-config", basetest.ConfigPath, courseID}), ui.ErrorWriter.String())
	assert.Equal(t, srv.URL+"/sign/"+courseID+"\n", ui.OutputWriter.String())

	stored, ok := srv.Course(courseID)
	require.True(t, ok)
	assert.EqualValues(t, 1, stored["LOCKED"])
}

func TestSendSignEmailsCommand(t *testing.T) {
	b, ui, srv := basetest.New(t)
	courseID := srv.AddCourse(edusigntest.Entity{
		"NAME": "Algebra",
		"STUDENTS": []interface{}{
			map[string]interface{}{"studentId": "s1", "state": true},
			map[string]interface{}{"studentId": "s2", "state": false},
		},
	})

	c := &SendSignEmailsCommand{Command: b}
	require.Equal(t, 0, c.Run([]string{"-config", basetest.ConfigPath, "-format", "yaml", courseID}), ui.ErrorWriter.String())
	assert.Equal(t, "- s2\n", ui.OutputWriter.String())
	assert.Len(t, srv.SignatureEmails(), 1)
}
