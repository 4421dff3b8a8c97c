package edusign

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ===================================================================
// Professors
// ===================================================================
// /professor endpoints. Edusign calls teachers "professors".

// TeacherByID retrieves a professor by Edusign ID.
func (c *Client) TeacherByID(ctx context.Context, teacherID string) (*Professor, error) {
	if strings.TrimSpace(teacherID) == "" {
		return nil, ErrBlankIdentifier
	}

	env, err := c.do(ctx, OpTeacherByID, http.MethodGet, "/professor/"+escape(teacherID), nil)
	if err != nil {
		if c.settle(OpTeacherByID, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get professor: %w", err)
	}

	return decodeProfessor(env)
}

// CreateProfessor creates a professor without sending credentials by e-mail.
func (c *Client) CreateProfessor(ctx context.Context, in ProfessorInput) (*Envelope, error) {
	if err := validate("professor", in); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"professor": map[string]interface{}{
			"FIRSTNAME": in.FirstName,
			"LASTNAME":  in.LastName,
			"EMAIL":     in.Email,
		},
		"dontSendCredentials": true,
	}

	env, err := c.do(ctx, OpCreateProfessor, http.MethodPost, "/professor", payload)
	if err != nil {
		if c.settle(OpCreateProfessor, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to create professor: %w", err)
	}

	return env, nil
}

// FindOrCreateProfessor looks a professor up by e-mail and creates one when
// none exists or the existing one was soft-deleted.
func (c *Client) FindOrCreateProfessor(ctx context.Context, in ProfessorInput) (*Professor, error) {
	if err := validate("professor", in); err != nil {
		return nil, err
	}

	var professor *Professor
	env, err := c.do(ctx, OpFindProfessor, http.MethodGet, "/professor/by-email/"+escape(in.Email), nil)
	if err == nil {
		professor, err = decodeProfessor(env)
		if err != nil {
			return nil, err
		}
		if professor != nil && professor.IsDeleted() {
			err = &RemoteError{Operation: OpFindProfessor, Message: MsgProfessorDeleted}
		}
	}

	if err != nil {
		switch c.settle(OpFindProfessor, err) {
		case OutcomeRaise:
			return nil, fmt.Errorf("failed to find professor: %w", err)
		case OutcomeFallback:
			// handled below
		default:
			return nil, nil
		}

		c.logger.Debug("professor missing or deleted, creating", "email", in.Email)

		created, err := c.CreateProfessor(ctx, in)
		if err != nil {
			return nil, err
		}
		return decodeProfessor(created)
	}

	return professor, nil
}

// TeacherSignatureLinkForCourse returns the first professor signature link
// of a course, or nil when there is none.
func (c *Client) TeacherSignatureLinkForCourse(ctx context.Context, courseID string) (SignatureLink, error) {
	if strings.TrimSpace(courseID) == "" {
		return nil, ErrBlankIdentifier
	}

	env, err := c.do(ctx, OpTeacherSignatureLink, http.MethodGet,
		"/course/get-professors-signature-links/"+escape(courseID), nil)
	if err != nil {
		if c.settle(OpTeacherSignatureLink, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get professor signature links: %w", err)
	}

	if !env.HasResult() {
		return nil, nil
	}

	var links []SignatureLink
	if err := env.Decode(&links); err != nil {
		return nil, fmt.Errorf("failed to decode professor signature links: %w", err)
	}
	if len(links) == 0 {
		return nil, nil
	}

	return links[0], nil
}

func decodeProfessor(env *Envelope) (*Professor, error) {
	if !env.HasResult() {
		return nil, nil
	}

	var professor Professor
	if err := env.Decode(&professor); err != nil {
		return nil, fmt.Errorf("failed to decode professor: %w", err)
	}

	return &professor, nil
}
