// Package edusigntest provides an in-memory fake of the Edusign API for
// testing code built on package edusign.
package edusigntest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Messages the fake answers with. The ones the client absorbs match the
// real service.
const (
	MsgGroupNotFound        = "Group not found"
	MsgCourseNotFound       = "No course with this ID found"
	MsgCourseAlreadyLocked  = "Course already locked"
	MsgStudentAlreadyInList = "Student already in the list"
	MsgStudentNotFound      = "Student not found"
	MsgProfessorNotFound    = "professor not found"
	MsgUnauthorized         = "Invalid API key"
)

// Entity is a remote object with the remote's field names.
type Entity map[string]interface{}

// Request records one request received by the fake.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     map[string]interface{}
}

type failure struct {
	statusCode int
	message    string
}

// Server is a fake Edusign API backed by maps. All fields are guarded by the
// server's lock; use the helper methods while the server is running.
type Server struct {
	*httptest.Server

	// APIKey, when set, is required as the Bearer token.
	APIKey string

	mu         sync.Mutex
	groups     map[string]Entity
	courses    map[string]Entity
	students   map[string]Entity
	professors map[string]Entity
	absences   []Entity
	emails     []Entity
	requests   []Request
	failures   map[string]failure
	nextID     int
}

// NewServer starts a fake Edusign API. Close it when done.
func NewServer() *Server {
	s := &Server{
		groups:     make(map[string]Entity),
		courses:    make(map[string]Entity),
		students:   make(map[string]Entity),
		professors: make(map[string]Entity),
		failures:   make(map[string]failure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /group/{id}", s.getGroup)
	mux.HandleFunc("POST /group", s.createGroup)
	mux.HandleFunc("PATCH /group", s.updateGroup)
	mux.HandleFunc("DELETE /group/{id}", s.deleteGroup)

	mux.HandleFunc("GET /course", s.listCourses)
	mux.HandleFunc("GET /course/{id}", s.getCourse)
	mux.HandleFunc("POST /course", s.createCourse)
	mux.HandleFunc("PATCH /course", s.updateCourse)
	mux.HandleFunc("DELETE /course/{id}", s.deleteCourse)
	mux.HandleFunc("GET /course/lock/{id}", s.lockCourse)
	mux.HandleFunc("PUT /course/attendance/{id}", s.addAttendance)
	mux.HandleFunc("POST /course/send-sign-emails", s.sendSignEmails)
	mux.HandleFunc("GET /course/get-signature-links/{id}", s.signatureLinks)
	mux.HandleFunc("GET /course/get-professors-signature-links/{id}", s.professorSignatureLinks)

	mux.HandleFunc("GET /student/{id}", s.getStudent)
	mux.HandleFunc("GET /student/by-email/{email}", s.getStudentByEmail)
	mux.HandleFunc("POST /student", s.createStudent)
	mux.HandleFunc("PATCH /student", s.updateStudent)
	mux.HandleFunc("POST /justified-absence", s.declareAbsence)

	mux.HandleFunc("GET /professor/{id}", s.getProfessor)
	mux.HandleFunc("GET /professor/by-email/{email}", s.getProfessorByEmail)
	mux.HandleFunc("POST /professor", s.createProfessor)

	mux.HandleFunc("POST /document/student/courses-between-dates", s.attendanceSheet)

	s.Server = httptest.NewServer(s.intercept(mux))
	return s
}

// ===================================================================
// Test helpers
// ===================================================================

// Fail makes every request matching method and path answer with
// statusCode. A 200 status answers with an error envelope carrying
// message; any other status answers with message as a plain body.
func (s *Server) Fail(method, path string, statusCode int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{statusCode: statusCode, message: message}
}

// ClearFailures removes every injected failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the requests received for method and path.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// AddGroup stores a group and returns its ID.
func (s *Server) AddGroup(name string, studentIDs ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("group")
	s.groups[id] = Entity{"ID": id, "NAME": name, "STUDENTS": toList(studentIDs)}
	return id
}

// Group returns a copy of a stored group.
func (s *Server) Group(id string) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.groups, id)
}

// AddCourse stores a course and returns its ID. Missing LOCKED and STUDENTS
// fields default to unlocked with no students.
func (s *Server) AddCourse(course Entity) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("course")
	stored := Entity{"LOCKED": 0, "STUDENTS": []interface{}{}}
	for k, v := range course {
		stored[k] = v
	}
	stored["ID"] = id
	s.courses[id] = normalize(stored)
	return id
}

// Course returns a copy of a stored course.
func (s *Server) Course(id string) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.courses, id)
}

// AddStudent stores a student and returns its ID.
func (s *Server) AddStudent(student Entity) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("student")
	stored := Entity{"HIDDEN": 0}
	for k, v := range student {
		stored[k] = v
	}
	stored["ID"] = id
	s.students[id] = normalize(stored)
	return id
}

// Student returns a copy of a stored student.
func (s *Server) Student(id string) (Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.students, id)
}

// Students returns the number of stored students.
func (s *Server) Students() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.students)
}

// AddProfessor stores a professor and returns its ID.
func (s *Server) AddProfessor(professor Entity) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("professor")
	stored := Entity{"HIDDEN": []interface{}{}}
	for k, v := range professor {
		stored[k] = v
	}
	stored["ID"] = id
	s.professors[id] = normalize(stored)
	return id
}

// SoftDeleteStudent marks a stored student as hidden.
func (s *Server) SoftDeleteStudent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if student, ok := s.students[id]; ok {
		student["HIDDEN"] = float64(1)
	}
}

// SoftDeleteProfessor adds a stored professor's own ID to its HIDDEN list,
// which is how the remote service reports a deleted professor.
func (s *Server) SoftDeleteProfessor(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if professor, ok := s.professors[id]; ok {
		hidden, _ := professor["HIDDEN"].([]interface{})
		professor["HIDDEN"] = append(hidden, id)
	}
}

// Professors returns the number of stored professors.
func (s *Server) Professors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.professors)
}

// Absences returns the justified absences declared so far.
func (s *Server) Absences() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entity(nil), s.absences...)
}

// SignatureEmails returns the signature e-mail requests received so far.
func (s *Server) SignatureEmails() []Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entity(nil), s.emails...)
}

// newID must be called with s.mu held.
func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

// ===================================================================
// Plumbing
// ===================================================================

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		fail, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if s.APIKey != "" && r.Header.Get("Authorization") != "Bearer "+s.APIKey {
			writeError(w, MsgUnauthorized)
			return
		}

		if failing {
			if fail.statusCode == http.StatusOK {
				writeError(w, fail.message)
				return
			}
			w.WriteHeader(fail.statusCode)
			_, _ = w.Write([]byte(fail.message))
			return
		}

		next.ServeHTTP(w, withBody(r, body))
	})
}

type bodyKey struct{}

func withBody(r *http.Request, body map[string]interface{}) *http.Request {
	return r.WithContext(contextWithBody(r.Context(), body))
}

func writeResult(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": nil,
		"result":  result,
	})
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

func clone(store map[string]Entity, id string) (Entity, bool) {
	e, ok := store[id]
	if !ok {
		return nil, false
	}
	out := make(Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out, true
}

// normalize gives e the shapes a JSON round trip produces: float64
// numbers, []interface{} lists and map[string]interface{} objects.
func normalize(e Entity) Entity {
	raw, err := json.Marshal(e)
	if err != nil {
		panic(fmt.Sprintf("edusigntest: entity is not JSON: %v", err))
	}
	var out Entity
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("edusigntest: entity is not JSON: %v", err))
	}
	return out
}

func toList(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func object(body map[string]interface{}, key string) Entity {
	if body == nil {
		return nil
	}
	inner, _ := body[key].(map[string]interface{})
	return inner
}

func findBy(store map[string]Entity, field, value string) Entity {
	for _, e := range store {
		if v, _ := e[field].(string); strings.EqualFold(v, value) {
			return e
		}
	}
	return nil
}
