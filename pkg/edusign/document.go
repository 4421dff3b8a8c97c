package edusign

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// StudentAttendanceSheetPDF generates the attendance sheet of a student for
// every course between start and end and returns the PDF file name.
func (c *Client) StudentAttendanceSheetPDF(ctx context.Context, studentID string, start, end time.Time) (string, error) {
	if strings.TrimSpace(studentID) == "" {
		return "", ErrBlankIdentifier
	}
	if end.Before(start) {
		return "", &ValidationError{Input: "attendance sheet", Err: fmt.Errorf("end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))}
	}

	payload := map[string]interface{}{
		"STUDENT_ID": studentID,
		"DATE_START": start.Format(time.RFC3339),
		"DATE_END":   end.Format(time.RFC3339),
	}

	env, err := c.do(ctx, OpStudentAttendanceSheet, http.MethodPost, "/document/student/courses-between-dates", payload)
	if err != nil {
		if c.settle(OpStudentAttendanceSheet, err) != OutcomeRaise {
			return "", nil
		}
		return "", fmt.Errorf("failed to generate attendance sheet: %w", err)
	}

	var document struct {
		Filename string `mapstructure:"filename"`
	}
	if err := env.Decode(&document); err != nil {
		return "", fmt.Errorf("failed to decode attendance sheet: %w", err)
	}

	return document.Filename, nil
}
