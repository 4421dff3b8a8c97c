package edusign

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/edusign-go/pkg/edusign/edusigntest"
)

func TestClient_StudentByEmail(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	studentID := srv.AddStudent(edusigntest.Entity{
		"FIRSTNAME": "Ada",
		"LASTNAME":  "Lovelace",
		"EMAIL":     "ada@example.com",
		"GROUPS":    []string{"g1"},
	})

	student, err := client.StudentByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, studentID, student.ID)
	assert.Equal(t, []string{"g1"}, student.Groups)

	// Lookups by ID and e-mail have no absorbed replies.
	_, err = client.StudentByEmail(ctx, "nobody@example.com")
	assert.True(t, IsRemoteMessage(err, edusigntest.MsgStudentNotFound))

	_, err = client.StudentByEmail(ctx, "")
	assert.ErrorIs(t, err, ErrBlankIdentifier)
}

func TestClient_CreateAndUpdateStudent(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	in := StudentInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}

	_, err := client.CreateStudent(ctx, in)
	require.NoError(t, err)

	posts := srv.RequestsTo(http.MethodPost, "/student")
	require.Len(t, posts, 1)
	student := posts[0].Body["student"].(map[string]interface{})
	assert.Equal(t, "Ada", student["FIRSTNAME"])
	assert.Equal(t, false, student["SEND_EMAIL_CREDENTIALS"])
	assert.Equal(t, []interface{}{}, student["GROUPS"])
	assert.NotContains(t, student, "ID")

	_, err = client.UpdateStudent(ctx, in)
	assert.ErrorIs(t, err, ErrBlankIdentifier)

	_, err = client.CreateStudent(ctx, StudentInput{FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email"})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "student", validationErr.Input)
}

func TestClient_CreateOrUpdateStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown e-mail creates", func(t *testing.T) {
		srv := newTestServer(t)
		client := newTestClient(t, srv.URL)

		_, err := client.CreateOrUpdateStudent(ctx, StudentInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			GroupIDs:  []string{"g1"},
		})
		require.NoError(t, err)

		assert.Len(t, srv.RequestsTo(http.MethodGet, "/student/by-email/ada@example.com"), 1)
		assert.Len(t, srv.RequestsTo(http.MethodPost, "/student"), 1)
		assert.Empty(t, srv.RequestsTo(http.MethodPatch, "/student"))
		assert.Equal(t, 1, srv.Students())
	})

	t.Run("known e-mail updates the found student", func(t *testing.T) {
		srv := newTestServer(t)
		client := newTestClient(t, srv.URL)

		studentID := srv.AddStudent(edusigntest.Entity{
			"FIRSTNAME": "Ada",
			"LASTNAME":  "Byron",
			"EMAIL":     "ada@example.com",
		})

		_, err := client.CreateOrUpdateStudent(ctx, StudentInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		patches := srv.RequestsTo(http.MethodPatch, "/student")
		require.Len(t, patches, 1)
		assert.Equal(t, studentID, patches[0].Body["student"].(map[string]interface{})["ID"])

		stored, ok := srv.Student(studentID)
		require.True(t, ok)
		assert.Equal(t, "Lovelace", stored["LASTNAME"])
		assert.Equal(t, 1, srv.Students())
	})

	t.Run("known identifier updates", func(t *testing.T) {
		srv := newTestServer(t)
		client := newTestClient(t, srv.URL)

		studentID := srv.AddStudent(edusigntest.Entity{"EMAIL": "old@example.com"})

		_, err := client.CreateOrUpdateStudent(ctx, StudentInput{
			ID:        studentID,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		assert.Len(t, srv.RequestsTo(http.MethodGet, "/student/"+studentID), 1)
		assert.Len(t, srv.RequestsTo(http.MethodPatch, "/student"), 1)
		assert.Empty(t, srv.RequestsTo(http.MethodPost, "/student"))
	})

	t.Run("unknown identifier creates", func(t *testing.T) {
		srv := newTestServer(t)
		client := newTestClient(t, srv.URL)

		_, err := client.CreateOrUpdateStudent(ctx, StudentInput{
			ID:        "unknown",
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@lewagon.org",
		})
		require.NoError(t, err)

		assert.Len(t, srv.RequestsTo(http.MethodGet, "/student/unknown"), 1)
		posts := srv.RequestsTo(http.MethodPost, "/student")
		require.Len(t, posts, 1)
		student := posts[0].Body["student"].(map[string]interface{})
		assert.NotContains(t, student, "ID")
		assert.Equal(t, "jane@lewagon.org", student["EMAIL"])
		assert.Empty(t, srv.RequestsTo(http.MethodPatch, "/student"))
		assert.Equal(t, 1, srv.Students())
	})

	t.Run("soft-deleted student is created again", func(t *testing.T) {
		srv := newTestServer(t)
		client := newTestClient(t, srv.URL)

		studentID := srv.AddStudent(edusigntest.Entity{"EMAIL": "ada@example.com"})
		srv.SoftDeleteStudent(studentID)

		_, err := client.CreateOrUpdateStudent(ctx, StudentInput{
			ID:        studentID,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		posts := srv.RequestsTo(http.MethodPost, "/student")
		require.Len(t, posts, 1)
		assert.NotContains(t, posts[0].Body["student"], "ID")
		assert.Equal(t, 2, srv.Students())
	})

	t.Run("gateway errors are not a fallback", func(t *testing.T) {
		srv := newTestServer(t)
		client := newTestClient(t, srv.URL)
		srv.Fail(http.MethodGet, "/student/by-email/ada@example.com", http.StatusGatewayTimeout, "")

		_, err := client.CreateOrUpdateStudent(ctx, StudentInput{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
		})
		assert.ErrorIs(t, err, ErrGatewayTimeout)
		assert.Empty(t, srv.RequestsTo(http.MethodPost, "/student"))
	})
}

func TestClient_DeclareAbsence(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	env, err := client.DeclareAbsence(ctx, AbsenceInput{
		StudentID: "s1",
		CourseID:  "c1",
		Type:      2,
		Comment:   "Medical certificate",
	})
	require.NoError(t, err)
	assert.True(t, env.OK())

	absences := srv.Absences()
	require.Len(t, absences, 1)
	assert.Equal(t, "s1", absences[0]["STUDENT_ID"])
	assert.Equal(t, "c1", absences[0]["COURSE_ID"])
	assert.Equal(t, float64(2), absences[0]["TYPE"])
	assert.Equal(t, "Medical certificate", absences[0]["COMMENT"])

	_, err = client.DeclareAbsence(ctx, AbsenceInput{StudentID: "s1"})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
