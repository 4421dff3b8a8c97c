package edusign

import (
	"time"

	"github.com/araddon/dateparse"
)

// Group is an Edusign school group.
type Group struct {
	ID       string   `mapstructure:"ID"`
	Name     string   `mapstructure:"NAME"`
	Students []string `mapstructure:"STUDENTS"`

	// Extra holds fields this client does not model. They are sent back
	// unchanged when the group is patched.
	Extra map[string]interface{} `mapstructure:",remain"`
}

// Clone returns a copy that shares no slices or maps with g.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	out := *g
	out.Students = append([]string(nil), g.Students...)
	if g.Extra != nil {
		out.Extra = make(map[string]interface{}, len(g.Extra))
		for k, v := range g.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// payload rebuilds the remote representation of the group.
func (g *Group) payload() map[string]interface{} {
	out := make(map[string]interface{}, len(g.Extra)+3)
	for k, v := range g.Extra {
		out[k] = v
	}
	out["ID"] = g.ID
	out["NAME"] = g.Name
	students := g.Students
	if students == nil {
		students = []string{}
	}
	out["STUDENTS"] = students
	return out
}

// Course is an Edusign course (a session students sign for).
type Course struct {
	ID                      string          `mapstructure:"ID"`
	Name                    string          `mapstructure:"NAME"`
	Description             string          `mapstructure:"DESCRIPTION"`
	Start                   string          `mapstructure:"START"`
	End                     string          `mapstructure:"END"`
	Professor               string          `mapstructure:"PROFESSOR"`
	SchoolGroup             []string        `mapstructure:"SCHOOL_GROUP"`
	Locked                  int             `mapstructure:"LOCKED"`
	AttendanceListGenerated string          `mapstructure:"ATTENDANCE_LIST_GENERATED"`
	APIID                   string          `mapstructure:"API_ID"`
	Students                []CourseStudent `mapstructure:"STUDENTS"`

	Extra map[string]interface{} `mapstructure:",remain"`
}

// IsLocked reports whether the attendance list has been closed.
func (c *Course) IsLocked() bool {
	return c.Locked != 0
}

// StartTime parses the remote START timestamp. Timestamps without a zone
// are UTC.
func (c *Course) StartTime() (time.Time, error) {
	return dateparse.ParseIn(c.Start, time.UTC)
}

// EndTime parses the remote END timestamp.
func (c *Course) EndTime() (time.Time, error) {
	return dateparse.ParseIn(c.End, time.UTC)
}

// Unsigned returns the IDs of the students with no recorded signature.
func (c *Course) Unsigned() []string {
	ids := make([]string, 0, len(c.Students))
	for _, student := range c.Students {
		if !student.State {
			ids = append(ids, student.StudentID)
		}
	}
	return ids
}

// CourseStudent is a student entry on a course attendance list.
type CourseStudent struct {
	StudentID string `mapstructure:"studentId"`
	State     bool   `mapstructure:"state"`

	Extra map[string]interface{} `mapstructure:",remain"`
}

// Student is an Edusign student.
type Student struct {
	ID        string   `mapstructure:"ID"`
	FirstName string   `mapstructure:"FIRSTNAME"`
	LastName  string   `mapstructure:"LASTNAME"`
	Email     string   `mapstructure:"EMAIL"`
	Groups    []string `mapstructure:"GROUPS"`
	Hidden    int      `mapstructure:"HIDDEN"`

	Extra map[string]interface{} `mapstructure:",remain"`
}

// IsHidden reports a soft-deleted student.
func (s *Student) IsHidden() bool {
	return s.Hidden == 1
}

// Professor is an Edusign teacher.
type Professor struct {
	ID        string `mapstructure:"ID"`
	FirstName string `mapstructure:"FIRSTNAME"`
	LastName  string `mapstructure:"LASTNAME"`
	Email     string `mapstructure:"EMAIL"`

	// Hidden lists the account IDs under which this professor was
	// soft-deleted.
	Hidden []string `mapstructure:"HIDDEN"`

	Extra map[string]interface{} `mapstructure:",remain"`
}

// IsDeleted reports a soft-deleted professor.
func (p *Professor) IsDeleted() bool {
	for _, id := range p.Hidden {
		if id == p.ID {
			return true
		}
	}
	return false
}

// SignatureLink is one entry returned by the signature link endpoints. Its
// shape is not stable across API versions, so it stays untyped.
type SignatureLink map[string]interface{}
