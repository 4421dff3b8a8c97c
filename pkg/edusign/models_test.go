package edusign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourse_Times(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"RFC 3339", "2024-03-01T09:00:00Z", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"SQL datetime", "2024-03-01 09:00:00", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"date only", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := &Course{Start: tt.value, End: tt.value}

			start, err := course.StartTime()
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(start.UTC()), "got %s", start)

			end, err := course.EndTime()
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(end.UTC()), "got %s", end)
		})
	}

	_, err := (&Course{}).StartTime()
	assert.Error(t, err)
}

func TestCourse_Unsigned(t *testing.T) {
	course := &Course{Students: []CourseStudent{
		{StudentID: "s1", State: true},
		{StudentID: "s2"},
		{StudentID: "s3", State: true},
		{StudentID: "s4"},
	}}
	assert.Equal(t, []string{"s2", "s4"}, course.Unsigned())
	assert.Empty(t, (&Course{}).Unsigned())
}

func TestCourse_IsLocked(t *testing.T) {
	assert.False(t, (&Course{}).IsLocked())
	assert.True(t, (&Course{Locked: 1}).IsLocked())
}

func TestStudent_IsHidden(t *testing.T) {
	assert.False(t, (&Student{}).IsHidden())
	assert.True(t, (&Student{Hidden: 1}).IsHidden())
}

func TestGroup_Payload(t *testing.T) {
	group := &Group{ID: "g1", Name: "Master 1", Extra: map[string]interface{}{"API_ID": "x", "NAME": "stale"}}

	payload := group.payload()
	assert.Equal(t, "g1", payload["ID"])
	assert.Equal(t, "Master 1", payload["NAME"])
	assert.Equal(t, []string{}, payload["STUDENTS"])
	assert.Equal(t, "x", payload["API_ID"])
}

func TestGroup_Clone(t *testing.T) {
	var nilGroup *Group
	assert.Nil(t, nilGroup.Clone())

	group := &Group{ID: "g1", Students: []string{"s1"}, Extra: map[string]interface{}{"k": "v"}}
	clone := group.Clone()
	clone.Students[0] = "s2"
	clone.Extra["k"] = "changed"

	assert.Equal(t, "s1", group.Students[0])
	assert.Equal(t, "v", group.Extra["k"])
}
