package edusign

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ===================================================================
// Groups
// ===================================================================
// /group endpoints. Fetched groups are cached by ID until a write through
// this client invalidates them.

// Group retrieves a group. A group the remote service cannot return is
// reported as (nil, nil).
func (c *Client) Group(ctx context.Context, groupID string) (*Group, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, ErrBlankIdentifier
	}

	if group, ok := c.groups.get(groupID); ok {
		return group, nil
	}

	env, err := c.do(ctx, OpGroup, http.MethodGet, "/group/"+escape(groupID), nil)
	if err != nil {
		if c.settle(OpGroup, err) != OutcomeRaise {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if !env.HasResult() {
		return nil, nil
	}

	var group Group
	if err := env.Decode(&group); err != nil {
		return nil, fmt.Errorf("failed to decode group: %w", err)
	}

	c.groups.add(&group)
	return &group, nil
}

// CreateOrUpdateGroup creates the group when in.ID is blank and updates it
// otherwise. An update replaces the member list with in.StudentIDs; use
// AddStudentsToGroup to merge.
func (c *Client) CreateOrUpdateGroup(ctx context.Context, in GroupInput) (*Envelope, error) {
	if err := validate("group", in); err != nil {
		return nil, err
	}

	students := in.StudentIDs
	if students == nil {
		students = []string{}
	}

	group := map[string]interface{}{
		"NAME":     in.Name,
		"STUDENTS": students,
	}

	method := http.MethodPost
	if in.ID != "" {
		group["ID"] = in.ID
		method = http.MethodPatch
		c.groups.remove(in.ID)
	}

	env, err := c.do(ctx, OpCreateOrUpdateGroup, method, "/group", map[string]interface{}{"group": group})
	if err != nil {
		if c.settle(OpCreateOrUpdateGroup, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	return env, nil
}

// AddStudentsToGroup merges studentIDs into the group's members, dropping
// duplicates while keeping the existing order. The members are always read
// fresh from the remote service, never from the cache.
func (c *Client) AddStudentsToGroup(ctx context.Context, groupID string, studentIDs []string) (*Envelope, error) {
	c.groups.remove(groupID)
	group, err := c.Group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	group.Students = mergeUnique(group.Students, studentIDs)
	c.groups.remove(groupID)

	env, err := c.do(ctx, OpAddStudentsToGroup, http.MethodPatch, "/group",
		map[string]interface{}{"group": group.payload()})
	if err != nil {
		if c.settle(OpAddStudentsToGroup, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to add students to group: %w", err)
	}

	return env, nil
}

// DeleteGroup deletes a group.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) (*Envelope, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, ErrBlankIdentifier
	}

	c.groups.remove(groupID)

	env, err := c.do(ctx, OpDeleteGroup, http.MethodDelete, "/group/"+escape(groupID), nil)
	if err != nil {
		if c.settle(OpDeleteGroup, err) != OutcomeRaise {
			return env, nil
		}
		return nil, fmt.Errorf("failed to delete group: %w", err)
	}

	return env, nil
}

// mergeUnique appends the values of b missing from a, keeping first
// occurrences only.
func mergeUnique(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
