package edusign

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/edusign-go/pkg/edusign/edusigntest"
)

const testAPIKey = "test-key"

// newTestServer starts the fake API and requires the test key on every call.
func newTestServer(t *testing.T) *edusigntest.Server {
	t.Helper()
	srv := edusigntest.NewServer()
	srv.APIKey = testAPIKey
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string, opts ...func(*Config)) *Client {
	t.Helper()
	cfg := &Config{
		BaseURL: baseURL,
		APIKey:  testAPIKey,
		Timeout: 5 * time.Second,
		Logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func nonStrict(cfg *Config) {
	strict := false
	cfg.StrictErrors = &strict
}

func TestClient_RequestHeaders(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)

	courseID := srv.AddCourse(edusigntest.Entity{"NAME": "Algebra"})
	_, err := client.Course(context.Background(), courseID)
	require.NoError(t, err)

	requests := srv.RequestsTo(http.MethodGet, "/course/"+courseID)
	require.Len(t, requests, 1)
	header := requests[0].Header
	assert.Equal(t, "Bearer "+testAPIKey, header.Get("Authorization"))
	assert.Equal(t, "application/json", header.Get("Content-Type"))
	assert.Equal(t, "application/json", header.Get("Accept"))
	assert.NotEmpty(t, header.Get("X-Request-Id"))
}

func TestClient_GetAndDeleteSendNoBody(t *testing.T) {
	var bodies []string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","result":null}`))
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL)
	ctx := context.Background()

	_, err := client.do(ctx, OpCourse, http.MethodGet, "/course/c1", map[string]string{"ignored": "yes"})
	require.NoError(t, err)
	_, err = client.do(ctx, OpDeleteCourse, http.MethodDelete, "/course/c1", map[string]string{"ignored": "yes"})
	require.NoError(t, err)

	assert.Equal(t, []string{"", ""}, bodies)
}

func TestClient_StudentByIDExample(t *testing.T) {
	status := `{"status":"success","result":{"ID":"123","FIRSTNAME":"Ada","LASTNAME":"Lovelace","EMAIL":"ada@example.com","HIDDEN":0}}`
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/student/123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(status))
	}))
	defer mockServer.Close()

	client := newTestClient(t, mockServer.URL)

	student, err := client.StudentByID(context.Background(), "123")
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "123", student.ID)
	assert.Equal(t, "Ada", student.FirstName)
	assert.Equal(t, "ada@example.com", student.Email)
	assert.False(t, student.IsHidden())

	status = `{"status":"error","message":"Student not found"}`
	student, err = client.StudentByID(context.Background(), "123")
	require.Error(t, err)
	assert.Nil(t, student)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "Student not found", remoteErr.Message)
}

func TestClient_GatewayErrors(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	ctx := context.Background()

	courseID := srv.AddCourse(edusigntest.Entity{"NAME": "Algebra"})

	srv.Fail(http.MethodGet, "/course/"+courseID, http.StatusBadGateway, `{"status":"success","result":{}}`)
	_, err := client.Course(ctx, courseID)
	assert.ErrorIs(t, err, ErrBadGateway)

	srv.Fail(http.MethodGet, "/course/"+courseID, http.StatusGatewayTimeout, "upstream timed out")
	_, err = client.Course(ctx, courseID)
	assert.ErrorIs(t, err, ErrGatewayTimeout)

	// Gateway errors are never whitelisted, not even for group lookups.
	groupID := srv.AddGroup("M1")
	srv.Fail(http.MethodGet, "/group/"+groupID, http.StatusBadGateway, "")
	_, err = client.Group(ctx, groupID)
	assert.ErrorIs(t, err, ErrBadGateway)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := edusigntest.NewServer()
	baseURL := srv.URL
	srv.Close()

	client := newTestClient(t, baseURL)

	_, err := client.StudentByID(context.Background(), "123")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.False(t, remoteErr.FromEnvelope())
	assert.NotNil(t, remoteErr.Err)
	assert.NotEmpty(t, remoteErr.Message)
}

func TestClient_NonStrictMode(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL, nonStrict)
	ctx := context.Background()

	t.Run("error envelope returns zero value", func(t *testing.T) {
		student, err := client.StudentByID(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, student)
	})

	t.Run("writes return the error envelope", func(t *testing.T) {
		srv.Fail(http.MethodPost, "/justified-absence", http.StatusOK, "Course is closed")
		defer srv.ClearFailures()

		env, err := client.DeclareAbsence(ctx, AbsenceInput{StudentID: "s1", CourseID: "c1"})
		require.NoError(t, err)
		require.NotNil(t, env)
		assert.True(t, env.Failed())
		assert.Equal(t, "Course is closed", env.Message)
	})

	t.Run("gateway errors still propagate", func(t *testing.T) {
		srv.Fail(http.MethodGet, "/student/s1", http.StatusBadGateway, "")
		defer srv.ClearFailures()

		_, err := client.StudentByID(ctx, "s1")
		assert.ErrorIs(t, err, ErrBadGateway)
	})

	t.Run("validation errors still propagate", func(t *testing.T) {
		_, err := client.CreateStudent(ctx, StudentInput{})
		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr))
	})
}

func TestClient_WrongKeyIsRemoteError(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL, func(cfg *Config) { cfg.APIKey = "wrong-key" })

	_, err := client.StudentByID(context.Background(), "s1")
	assert.True(t, IsRemoteMessage(err, edusigntest.MsgUnauthorized))
}

func TestClient_RateLimit(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL, func(cfg *Config) { cfg.RequestsPerSecond = 0.01 })
	require.NotNil(t, client.limiter)

	studentID := srv.AddStudent(edusigntest.Entity{"EMAIL": "ada@example.com"})

	// The first request uses the burst token.
	_, err := client.StudentByID(context.Background(), studentID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.StudentByID(ctx, studentID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
	assert.Len(t, srv.RequestsTo(http.MethodGet, "/student/"+studentID), 1)
}
