package edusigntest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

func contextWithBody(ctx context.Context, body map[string]interface{}) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyOf(r *http.Request) map[string]interface{} {
	body, _ := r.Context().Value(bodyKey{}).(map[string]interface{})
	return body
}

// ===================================================================
// Groups
// ===================================================================

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	group, ok := clone(s.groups, r.PathValue("id"))
	s.mu.Unlock()
	if !ok {
		writeError(w, MsgGroupNotFound)
		return
	}
	writeResult(w, group)
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "group")
	if in == nil || in["NAME"] == nil {
		writeError(w, "Missing group name")
		return
	}

	s.mu.Lock()
	id := s.newID("group")
	in["ID"] = id
	s.groups[id] = in
	s.mu.Unlock()

	writeResult(w, Entity{"ID": id})
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "group")
	id, _ := in["ID"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		writeError(w, MsgGroupNotFound)
		return
	}
	s.groups[id] = in
	writeResult(w, Entity{"ID": id})
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		writeError(w, MsgGroupNotFound)
		return
	}
	delete(s.groups, id)
	writeResult(w, nil)
}

// ===================================================================
// Courses
// ===================================================================

func (s *Server) listCourses(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("groupId")

	s.mu.Lock()
	defer s.mu.Unlock()
	courses := []Entity{}
	for id := range s.courses {
		course, _ := clone(s.courses, id)
		if groupID != "" && !contains(course["SCHOOL_GROUP"], groupID) {
			continue
		}
		courses = append(courses, course)
	}
	writeResult(w, courses)
}

func (s *Server) getCourse(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	course, ok := clone(s.courses, r.PathValue("id"))
	s.mu.Unlock()
	if !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	writeResult(w, course)
}

func (s *Server) createCourse(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "course")
	if in == nil {
		writeError(w, "Missing course")
		return
	}

	s.mu.Lock()
	id := s.newID("course")
	in["ID"] = id
	in["LOCKED"] = 0
	in["STUDENTS"] = []interface{}{}
	s.courses[id] = in
	s.mu.Unlock()

	writeResult(w, Entity{"ID": id})
}

func (s *Server) updateCourse(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "course")
	id, _ := in["ID"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.courses[id]
	if !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	for k, v := range in {
		existing[k] = v
	}
	writeResult(w, Entity{"ID": id})
}

func (s *Server) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	delete(s.courses, id)
	writeResult(w, nil)
}

func (s *Server) lockCourse(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	if isSet(course["LOCKED"]) {
		writeError(w, MsgCourseAlreadyLocked)
		return
	}
	course["LOCKED"] = 1
	course["ATTENDANCE_LIST_GENERATED"] = s.URL + "/documents/attendance-" + id + ".pdf"
	writeResult(w, Entity{"link": s.URL + "/sign/" + id})
}

func (s *Server) addAttendance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	studentID, _ := bodyOf(r)["studentId"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	students, _ := course["STUDENTS"].([]interface{})
	for _, entry := range students {
		if m, _ := entry.(map[string]interface{}); m["studentId"] == studentID {
			writeError(w, MsgStudentAlreadyInList)
			return
		}
	}
	course["STUDENTS"] = append(students, map[string]interface{}{"studentId": studentID, "state": false})
	writeResult(w, nil)
}

func (s *Server) sendSignEmails(w http.ResponseWriter, r *http.Request) {
	body := bodyOf(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, Entity(body))
	writeResult(w, nil)
}

func (s *Server) signatureLinks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var only []string
	if raw := r.URL.Query().Get("studentids"); raw != "" {
		only = strings.Split(raw, ",")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	links := []Entity{}
	students, _ := course["STUDENTS"].([]interface{})
	for _, entry := range students {
		m, _ := entry.(map[string]interface{})
		studentID, _ := m["studentId"].(string)
		if len(only) > 0 && !contains(toList(only), studentID) {
			continue
		}
		links = append(links, Entity{
			"studentId":     studentID,
			"SIGNATURE_URL": fmt.Sprintf("%s/sign/%s/%s", s.URL, id, studentID),
		})
	}
	writeResult(w, links)
}

func (s *Server) professorSignatureLinks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.courses[id]
	if !ok {
		writeError(w, MsgCourseNotFound)
		return
	}
	professorID, _ := course["PROFESSOR"].(string)
	if professorID == "" {
		writeResult(w, []Entity{})
		return
	}
	writeResult(w, []Entity{{
		"professorId":   professorID,
		"SIGNATURE_URL": fmt.Sprintf("%s/sign/%s/%s", s.URL, id, professorID),
	}})
}

// ===================================================================
// Students
// ===================================================================

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	student, ok := clone(s.students, r.PathValue("id"))
	s.mu.Unlock()
	if !ok {
		writeError(w, MsgStudentNotFound)
		return
	}
	writeResult(w, student)
}

func (s *Server) getStudentByEmail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	student := findBy(s.students, "EMAIL", r.PathValue("email"))
	s.mu.Unlock()
	if student == nil {
		writeError(w, MsgStudentNotFound)
		return
	}
	writeResult(w, student)
}

func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "student")
	if in == nil {
		writeError(w, "Missing student")
		return
	}

	s.mu.Lock()
	id := s.newID("student")
	in["ID"] = id
	in["HIDDEN"] = 0
	s.students[id] = in
	s.joinGroups(id, in["GROUPS"])
	s.mu.Unlock()

	writeResult(w, Entity{"ID": id})
}

func (s *Server) updateStudent(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "student")
	id, _ := in["ID"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.students[id]
	if !ok {
		writeError(w, MsgStudentNotFound)
		return
	}
	for k, v := range in {
		existing[k] = v
	}
	s.joinGroups(id, in["GROUPS"])
	writeResult(w, Entity{"ID": id})
}

// joinGroups adds a student to the members of every known group it lists,
// as the remote service does. It must be called with s.mu held.
func (s *Server) joinGroups(studentID string, groups interface{}) {
	ids, _ := groups.([]interface{})
	for _, raw := range ids {
		groupID, _ := raw.(string)
		group, ok := s.groups[groupID]
		if !ok || contains(group["STUDENTS"], studentID) {
			continue
		}
		members, _ := group["STUDENTS"].([]interface{})
		group["STUDENTS"] = append(append([]interface{}(nil), members...), studentID)
	}
}

func (s *Server) declareAbsence(w http.ResponseWriter, r *http.Request) {
	body := bodyOf(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID("absence")
	absence := Entity{"ID": id}
	for k, v := range body {
		absence[k] = v
	}
	s.absences = append(s.absences, absence)
	writeResult(w, Entity{"ID": id})
}

// ===================================================================
// Professors
// ===================================================================

func (s *Server) getProfessor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	professor, ok := clone(s.professors, r.PathValue("id"))
	s.mu.Unlock()
	if !ok {
		writeError(w, MsgProfessorNotFound)
		return
	}
	writeResult(w, professor)
}

func (s *Server) getProfessorByEmail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	professor := findBy(s.professors, "EMAIL", r.PathValue("email"))
	s.mu.Unlock()
	if professor == nil {
		writeError(w, MsgProfessorNotFound)
		return
	}
	writeResult(w, professor)
}

func (s *Server) createProfessor(w http.ResponseWriter, r *http.Request) {
	in := object(bodyOf(r), "professor")
	if in == nil {
		writeError(w, "Missing professor")
		return
	}

	s.mu.Lock()
	id := s.newID("professor")
	in["ID"] = id
	in["HIDDEN"] = []interface{}{}
	s.professors[id] = in
	stored, _ := clone(s.professors, id)
	s.mu.Unlock()

	writeResult(w, stored)
}

// ===================================================================
// Documents
// ===================================================================

func (s *Server) attendanceSheet(w http.ResponseWriter, r *http.Request) {
	studentID, _ := bodyOf(r)["STUDENT_ID"].(string)

	s.mu.Lock()
	_, ok := s.students[studentID]
	s.mu.Unlock()
	if !ok {
		writeError(w, MsgStudentNotFound)
		return
	}
	writeResult(w, Entity{"filename": fmt.Sprintf("%s/documents/%s.pdf", s.URL, studentID)})
}

func contains(list interface{}, value string) bool {
	items, _ := list.([]interface{})
	for _, item := range items {
		if s, _ := item.(string); s == value {
			return true
		}
	}
	return false
}

func isSet(v interface{}) bool {
	switch flag := v.(type) {
	case bool:
		return flag
	case int:
		return flag != 0
	case float64:
		return flag != 0
	case string:
		return flag != "" && flag != "0"
	default:
		return false
	}
}
