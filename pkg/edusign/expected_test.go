package edusign

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedOutcome(t *testing.T) {
	remote := func(op Operation, msg string) error {
		return &RemoteError{Operation: op, Message: msg}
	}

	tests := []struct {
		name string
		op   Operation
		err  error
		want Outcome
	}{
		{"course not found", OpCourse, remote(OpCourse, MsgCourseNotFound), OutcomeNil},
		{"course other message", OpCourse, remote(OpCourse, "Unauthorized"), OutcomeRaise},
		{"already locked", OpLockCourse, remote(OpLockCourse, MsgCourseAlreadyLocked), OutcomeNil},
		{"already locked elsewhere", OpCourse, remote(OpCourse, MsgCourseAlreadyLocked), OutcomeRaise},
		{"student already in list", OpAddStudentToCourse, remote(OpAddStudentToCourse, MsgStudentAlreadyInList), OutcomeSkip},
		{"professor not found", OpFindProfessor, remote(OpFindProfessor, MsgProfessorNotFound), OutcomeFallback},
		{"professor deleted", OpFindProfessor, remote(OpFindProfessor, MsgProfessorDeleted), OutcomeFallback},
		{"professor other message", OpFindProfessor, remote(OpFindProfessor, "Forbidden"), OutcomeRaise},
		{"group any message", OpGroup, remote(OpGroup, "Group not found"), OutcomeNil},
		{"student lookup any message", OpStudentLookup, remote(OpStudentByEmail, "Student not found"), OutcomeFallback},
		{"wrapped remote error", OpCourse, fmt.Errorf("failed to get course: %w", remote(OpCourse, MsgCourseNotFound)), OutcomeNil},
		{"no whitelist for student by id", OpStudentByID, remote(OpStudentByID, "Student not found"), OutcomeRaise},
		{
			"transport failure is never expected",
			OpGroup,
			&RemoteError{Operation: OpGroup, Message: "connection refused", Err: errors.New("connection refused")},
			OutcomeRaise,
		},
		{"bad gateway is never expected", OpGroup, &TransportError{Operation: OpGroup, StatusCode: 502, Err: ErrBadGateway}, OutcomeRaise},
		{"plain error", OpCourse, errors.New(MsgCourseNotFound), OutcomeRaise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpectedOutcome(tt.op, tt.err))
			assert.Equal(t, tt.want != OutcomeRaise, IsExpected(tt.op, tt.err))
		})
	}
}

func TestExpectedErrors_ReturnsCopy(t *testing.T) {
	table := ExpectedErrors()
	assert.NotEmpty(t, table)

	table[0].Outcome = OutcomeRaise
	assert.NotEqual(t, OutcomeRaise, ExpectedErrors()[0].Outcome)
}

func TestIsRemoteMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &RemoteError{Message: MsgCourseAlreadyLocked})
	assert.True(t, IsRemoteMessage(err, MsgCourseAlreadyLocked))
	assert.False(t, IsRemoteMessage(err, MsgCourseNotFound))
	assert.False(t, IsRemoteMessage(errors.New(MsgCourseAlreadyLocked), MsgCourseAlreadyLocked))
}
