package edusign

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/edusign-go/pkg/edusign/edusigntest"
)

func TestClient_StudentAttendanceSheetPDF(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	studentID := srv.AddStudent(edusigntest.Entity{"EMAIL": "ada@example.com"})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	filename, err := client.StudentAttendanceSheetPDF(ctx, studentID, start, end)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/documents/"+studentID+".pdf", filename)

	posts := srv.RequestsTo(http.MethodPost, "/document/student/courses-between-dates")
	require.Len(t, posts, 1)
	assert.Equal(t, studentID, posts[0].Body["STUDENT_ID"])
	assert.Equal(t, "2024-01-01T00:00:00Z", posts[0].Body["DATE_START"])
	assert.Equal(t, "2024-06-30T00:00:00Z", posts[0].Body["DATE_END"])

	t.Run("end before start", func(t *testing.T) {
		_, err := client.StudentAttendanceSheetPDF(ctx, studentID, end, start)
		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := client.StudentAttendanceSheetPDF(ctx, "unknown", start, end)
		assert.True(t, IsRemoteMessage(err, edusigntest.MsgStudentNotFound))
	})

	t.Run("blank student", func(t *testing.T) {
		_, err := client.StudentAttendanceSheetPDF(ctx, " ", start, end)
		assert.ErrorIs(t, err, ErrBlankIdentifier)
	})
}
