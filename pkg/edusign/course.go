package edusign

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ===================================================================
// Courses
// ===================================================================
// /course endpoints, including attendance, locking and signature e-mails.

// Course retrieves a course. An unknown course ID is reported as (nil, nil).
func (c *Client) Course(ctx context.Context, courseID string) (*Course, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrBlankIdentifier
	}

	env, err := c.do(ctx, OpCourse, http.MethodGet, "/course/"+escape(courseID), nil)
	if err != nil {
		if c.settle(OpCourse, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if !env.HasResult() {
		return nil, nil
	}

	var course Course
	if err := env.Decode(&course); err != nil {
		return nil, fmt.Errorf("failed to decode course: %w", err)
	}

	return &course, nil
}

// Courses lists courses, optionally restricted to one group.
func (c *Client) Courses(ctx context.Context, groupID string) ([]Course, error) {
	path := "/course"
	if groupID != "" {
		path += "?" + url.Values{"groupId": {groupID}}.Encode()
	}

	env, err := c.do(ctx, OpCourses, http.MethodGet, path, nil)
	if err != nil {
		if c.settle(OpCourses, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if !env.HasResult() {
		return nil, nil
	}

	var courses []Course
	if err := env.Decode(&courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}

	return courses, nil
}

// CreateCourse creates a course for a single group.
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (*Envelope, error) {
	if err := validate("course", in); err != nil {
		return nil, err
	}

	env, err := c.do(ctx, OpCreateCourse, http.MethodPost, "/course", in.payload(false))
	if err != nil {
		if c.settle(OpCreateCourse, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return env, nil
}

// UpdateCourse updates the course identified by in.ID.
func (c *Client) UpdateCourse(ctx context.Context, in CourseInput) (*Envelope, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrBlankIdentifier
	}
	if err := validate("course", in); err != nil {
		return nil, err
	}

	env, err := c.do(ctx, OpUpdateCourse, http.MethodPatch, "/course", in.payload(true))
	if err != nil {
		if c.settle(OpUpdateCourse, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return env, nil
}

// DeleteCourse deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) (*Envelope, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrBlankIdentifier
	}

	env, err := c.do(ctx, OpDeleteCourse, http.MethodDelete, "/course/"+escape(courseID), nil)
	if err != nil {
		if c.settle(OpDeleteCourse, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to delete course: %w", err)
	}

	return env, nil
}

// SignatureLinksForCourse returns student signature links for a course,
// restricted to studentIDs when any are given.
func (c *Client) SignatureLinksForCourse(ctx context.Context, courseID string, studentIDs []string) ([]SignatureLink, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrBlankIdentifier
	}

	path := "/course/get-signature-links/" + escape(courseID)
	if len(studentIDs) > 0 {
		path += "?" + url.Values{"studentids": {strings.Join(studentIDs, ",")}}.Encode()
	}

	env, err := c.do(ctx, OpSignatureLinks, http.MethodGet, path, nil)
	if err != nil {
		if c.settle(OpSignatureLinks, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get signature links: %w", err)
	}

	if !env.HasResult() {
		return nil, nil
	}

	var links []SignatureLink
	if err := env.Decode(&links); err != nil {
		return nil, fmt.Errorf("failed to decode signature links: %w", err)
	}

	return links, nil
}

// LockCourse closes a course's attendance list and returns the signing link.
// A course that is already locked returns its generated attendance list
// instead.
func (c *Client) LockCourse(ctx context.Context, courseID string) (string, error) {
	course, err := c.Course(ctx, courseID)
	if err != nil {
		if c.settle(OpLockCourse, err) != OutcomeRaise {
			return "", nil
		}
		return "", err
	}
	if course == nil {
		return "", ErrCourseNotFound
	}

	if course.IsLocked() {
		return course.AttendanceListGenerated, nil
	}

	env, err := c.do(ctx, OpLockCourse, http.MethodGet, "/course/lock/"+escape(courseID), nil)
	if err != nil {
		if c.settle(OpLockCourse, err) != OutcomeRaise {
			return "", nil
		}
		return "", fmt.Errorf("failed to lock course: %w", err)
	}

	var locked struct {
		Link string `mapstructure:"link"`
	}
	if err := env.Decode(&locked); err != nil {
		return "", fmt.Errorf("failed to decode lock result: %w", err)
	}

	return locked.Link, nil
}

// AddStudentToCourse adds a student to a course attendance list. A student
// already on the list is not an error.
func (c *Client) AddStudentToCourse(ctx context.Context, courseID, studentID string) error {
	if strings.TrimSpace(courseID) == "" || strings.TrimSpace(studentID) == "" {
		return ErrBlankIdentifier
	}

	_, err := c.do(ctx, OpAddStudentToCourse, http.MethodPut, "/course/attendance/"+escape(courseID),
		map[string]string{"studentId": studentID})
	if err != nil {
		if c.settle(OpAddStudentToCourse, err) != OutcomeRaise {
			return nil
		}
		return fmt.Errorf("failed to add student %s to course: %w", studentID, err)
	}

	return nil
}

// AddStudentsToCourse adds each student in turn. It keeps going after a
// failure and returns every failure together.
func (c *Client) AddStudentsToCourse(ctx context.Context, courseID string, studentIDs []string) error {
	var result *multierror.Error
	for _, studentID := range studentIDs {
		if err := c.AddStudentToCourse(ctx, courseID, studentID); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// SendSignatureEmail e-mails a signature request to every student of the
// course with no recorded signature. It returns the IDs e-mailed; when all
// students have signed no request is sent.
func (c *Client) SendSignatureEmail(ctx context.Context, courseID string) ([]string, error) {
	course, err := c.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	students := course.Unsigned()
	if len(students) == 0 {
		c.logger.Debug("no unsigned students, skipping signature e-mails", "course", courseID)
		return students, nil
	}

	payload := map[string]interface{}{
		"course":   courseID,
		"students": students,
	}

	if _, err := c.do(ctx, OpSendSignatureEmail, http.MethodPost, "/course/send-sign-emails", payload); err != nil {
		if c.settle(OpSendSignatureEmail, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to send signature e-mails: %w", err)
	}

	return students, nil
}
