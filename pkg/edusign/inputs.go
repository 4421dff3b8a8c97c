package edusign

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// GroupInput describes a group to create or update. A blank ID creates.
type GroupInput struct {
	ID         string
	Name       string
	StudentIDs []string
}

// Validate validates the GroupInput.
func (in GroupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
	)
}

// CourseInput describes a course to create or update. ID is required for
// updates only.
type CourseInput struct {
	ID          string
	GroupID     string
	Name        string
	StartsAt    time.Time
	EndsAt      time.Time
	TeacherID   string
	Description string
	APIID       string
}

// Validate validates the CourseInput.
func (in CourseInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.GroupID, validation.Required),
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.StartsAt, validation.Required),
		validation.Field(&in.EndsAt, validation.Required, validation.Min(in.StartsAt)),
		validation.Field(&in.TeacherID, validation.Required),
	)
}

// payload builds the remote course object. Times are sent as RFC 3339.
func (in CourseInput) payload(withID bool) map[string]interface{} {
	var description, apiID interface{}
	if in.Description != "" {
		description = in.Description
	}
	if in.APIID != "" {
		apiID = in.APIID
	}

	course := map[string]interface{}{
		"NAME":         in.Name,
		"START":        in.StartsAt.Format(time.RFC3339),
		"END":          in.EndsAt.Format(time.RFC3339),
		"DESCRIPTION":  description,
		"PROFESSOR":    in.TeacherID,
		"SCHOOL_GROUP": []string{in.GroupID},
		"ZOOM":         false,
		"API_ID":       apiID,
	}
	if withID {
		course["ID"] = in.ID
	}
	return map[string]interface{}{"course": course}
}

// StudentInput describes a student to create, update or upsert.
type StudentInput struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	GroupIDs  []string
}

// Validate validates the StudentInput.
func (in StudentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required),
		validation.Field(&in.LastName, validation.Required),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
	)
}

func (in StudentInput) payload(id string) map[string]interface{} {
	groups := in.GroupIDs
	if groups == nil {
		groups = []string{}
	}

	student := map[string]interface{}{
		"FIRSTNAME":              in.FirstName,
		"LASTNAME":               in.LastName,
		"EMAIL":                  in.Email,
		"SEND_EMAIL_CREDENTIALS": false,
		"GROUPS":                 groups,
	}
	if id != "" {
		student["ID"] = id
	}
	return map[string]interface{}{"student": student}
}

// ProfessorInput describes a professor to find or create.
type ProfessorInput struct {
	FirstName string
	LastName  string
	Email     string
}

// Validate validates the ProfessorInput.
func (in ProfessorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required),
		validation.Field(&in.LastName, validation.Required),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
	)
}

// AbsenceInput declares a justified absence for a student on a course.
type AbsenceInput struct {
	StudentID string
	CourseID  string
	Type      int
	Comment   string
}

// Validate validates the AbsenceInput.
func (in AbsenceInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.StudentID, validation.Required),
		validation.Field(&in.CourseID, validation.Required),
	)
}

// validate wraps a validation failure so callers can match on it.
func validate(name string, v validation.Validatable) error {
	if err := v.Validate(); err != nil {
		return &ValidationError{Input: name, Err: err}
	}
	return nil
}
