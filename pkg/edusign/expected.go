package edusign

import "errors"

// Operation names a client call site. It tags errors and selects rows in the
// expected error table.
type Operation string

const (
	OpGroup                  Operation = "group"
	OpCreateOrUpdateGroup    Operation = "create_or_update_group"
	OpAddStudentsToGroup     Operation = "add_students_to_group"
	OpDeleteGroup            Operation = "delete_group"
	OpCourse                 Operation = "course"
	OpCourses                Operation = "courses"
	OpCreateCourse           Operation = "create_course"
	OpUpdateCourse           Operation = "update_course"
	OpDeleteCourse           Operation = "delete_course"
	OpSignatureLinks         Operation = "signature_links_for_course"
	OpLockCourse             Operation = "lock_course"
	OpAddStudentToCourse     Operation = "add_student_to_course"
	OpSendSignatureEmail     Operation = "send_signature_email"
	OpStudentByID            Operation = "student_by_uid"
	OpStudentByEmail         Operation = "student_by_email"
	OpStudentLookup          Operation = "student_lookup"
	OpCreateStudent          Operation = "create_student"
	OpUpdateStudent          Operation = "update_student"
	OpDeclareAbsence         Operation = "declare_absence"
	OpTeacherByID            Operation = "teacher_by_uid"
	OpFindProfessor          Operation = "find_professor"
	OpCreateProfessor        Operation = "create_professor"
	OpTeacherSignatureLink   Operation = "teacher_signature_link_for_course"
	OpStudentAttendanceSheet Operation = "student_attendance_sheet"
)

// Known remote error messages. The remote service reports failures only as
// English text, so these strings are the contract.
const (
	MsgCourseAlreadyLocked  = "Course already locked"
	MsgStudentAlreadyInList = "Student already in the list"
	MsgCourseNotFound       = "No course with this ID found"
	MsgProfessorNotFound    = "professor not found"
	MsgProfessorDeleted     = "professor was deleted"
)

// AnyMessage matches every remote error message for an operation.
const AnyMessage = ""

// Outcome is what a call site does with an expected remote error.
type Outcome int

const (
	// OutcomeRaise propagates the error.
	OutcomeRaise Outcome = iota
	// OutcomeNil returns the zero value with no error.
	OutcomeNil
	// OutcomeSkip treats the request as already applied.
	OutcomeSkip
	// OutcomeFallback switches to the operation's creation path.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNil:
		return "nil"
	case OutcomeSkip:
		return "skip"
	case OutcomeFallback:
		return "fallback"
	default:
		return "raise"
	}
}

// ExpectedError is one row of the expected error table.
type ExpectedError struct {
	Operation Operation
	Message   string
	Outcome   Outcome
}

// expectedErrors lists every remote error a call site absorbs. Anything not
// listed here is raised (or, outside strict mode, logged and dropped).
var expectedErrors = []ExpectedError{
	{Operation: OpGroup, Message: AnyMessage, Outcome: OutcomeNil},
	{Operation: OpCourse, Message: MsgCourseNotFound, Outcome: OutcomeNil},
	{Operation: OpLockCourse, Message: MsgCourseAlreadyLocked, Outcome: OutcomeNil},
	{Operation: OpAddStudentToCourse, Message: MsgStudentAlreadyInList, Outcome: OutcomeSkip},
	{Operation: OpStudentLookup, Message: AnyMessage, Outcome: OutcomeFallback},
	{Operation: OpFindProfessor, Message: MsgProfessorNotFound, Outcome: OutcomeFallback},
	{Operation: OpFindProfessor, Message: MsgProfessorDeleted, Outcome: OutcomeFallback},
}

// ExpectedErrors returns a copy of the expected error table.
func ExpectedErrors() []ExpectedError {
	out := make([]ExpectedError, len(expectedErrors))
	copy(out, expectedErrors)
	return out
}

// ExpectedOutcome returns the outcome configured for err at op. Only error
// envelopes are eligible; transport failures always raise.
func ExpectedOutcome(op Operation, err error) Outcome {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) || !remoteErr.FromEnvelope() {
		return OutcomeRaise
	}

	for _, row := range expectedErrors {
		if row.Operation != op {
			continue
		}
		if row.Message == AnyMessage || row.Message == remoteErr.Message {
			return row.Outcome
		}
	}
	return OutcomeRaise
}

// IsExpected reports whether err is absorbed at op.
func IsExpected(op Operation, err error) bool {
	return ExpectedOutcome(op, err) != OutcomeRaise
}
