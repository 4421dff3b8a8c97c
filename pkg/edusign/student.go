package edusign

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ===================================================================
// Students
// ===================================================================
// /student and /justified-absence endpoints.

// StudentByID retrieves a student by Edusign ID.
func (c *Client) StudentByID(ctx context.Context, studentID string) (*Student, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, ErrBlankIdentifier
	}
	return c.getStudent(ctx, OpStudentByID, "/student/"+escape(studentID))
}

// StudentByEmail retrieves a student by e-mail address.
func (c *Client) StudentByEmail(ctx context.Context, email string) (*Student, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrBlankIdentifier
	}
	return c.getStudent(ctx, OpStudentByEmail, "/student/by-email/"+escape(email))
}

func (c *Client) getStudent(ctx context.Context, op Operation, path string) (*Student, error) {
	env, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		if c.settle(op, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	if !env.HasResult() {
		return nil, nil
	}

	var student Student
	if err := env.Decode(&student); err != nil {
		return nil, fmt.Errorf("failed to decode student: %w", err)
	}

	return &student, nil
}

// CreateStudent creates a student without sending credentials by e-mail.
func (c *Client) CreateStudent(ctx context.Context, in StudentInput) (*Envelope, error) {
	if err := validate("student", in); err != nil {
		return nil, err
	}

	env, err := c.do(ctx, OpCreateStudent, http.MethodPost, "/student", in.payload(""))
	c.invalidateGroups(in.GroupIDs)
	if err != nil {
		if c.settle(OpCreateStudent, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return env, nil
}

// UpdateStudent updates the student identified by in.ID.
func (c *Client) UpdateStudent(ctx context.Context, in StudentInput) (*Envelope, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrBlankIdentifier
	}
	if err := validate("student", in); err != nil {
		return nil, err
	}

	env, err := c.do(ctx, OpUpdateStudent, http.MethodPatch, "/student", in.payload(in.ID))
	c.invalidateGroups(in.GroupIDs)
	if err != nil {
		if c.settle(OpUpdateStudent, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return env, nil
}

// CreateOrUpdateStudent looks the student up by in.ID, or by e-mail when no
// ID is given. A student that is missing or soft-deleted is created again;
// otherwise the found student is updated.
//
// The lookup and the write are separate requests, so a concurrent change on
// the remote side can slip in between.
func (c *Client) CreateOrUpdateStudent(ctx context.Context, in StudentInput) (*Envelope, error) {
	if err := validate("student", in); err != nil {
		return nil, err
	}

	var (
		student *Student
		err     error
	)
	if in.ID != "" {
		student, err = c.StudentByID(ctx, in.ID)
	} else {
		student, err = c.StudentByEmail(ctx, in.Email)
	}
	if err != nil && c.settle(OpStudentLookup, err) != OutcomeFallback {
		return nil, err
	}

	if err != nil || student == nil || student.IsHidden() {
		c.logger.Debug("student missing or deleted, creating",
			"email", in.Email,
			"student_id", in.ID,
		)
		create := in
		create.ID = ""
		return c.CreateStudent(ctx, create)
	}

	update := in
	update.ID = student.ID
	return c.UpdateStudent(ctx, update)
}

// DeclareAbsence records a justified absence for a student on a course.
func (c *Client) DeclareAbsence(ctx context.Context, in AbsenceInput) (*Envelope, error) {
	if err := validate("absence", in); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"STUDENT_ID": in.StudentID,
		"COURSE_ID":  in.CourseID,
		"TYPE":       in.Type,
		"COMMENT":    in.Comment,
	}

	env, err := c.do(ctx, OpDeclareAbsence, http.MethodPost, "/justified-absence", payload)
	if err != nil {
		if c.settle(OpDeclareAbsence, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to declare absence: %w", err)
	}

	return env, nil
}
