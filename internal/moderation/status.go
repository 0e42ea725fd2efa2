// Package moderation holds the review lifecycle shared by content items and
// quiz questions.
//
//	submit           -> pending
//	publish_official -> approved
//	approve          pending|approved|rejected -> approved
//	reject           pending|approved|rejected -> rejected
//	force_set        any -> any valid status
//
// Approve and reject do not look at the current status, so re-approving an
// approved record is accepted. ForceSet is the administrative override and is
// the only path that can move a record back to pending.
package moderation

import (
	"fmt"
	"strings"
)

// Status is the moderation state of a content item or quiz question.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Visible reports whether records in this state are served to students.
func (s Status) Visible() bool {
	return s == StatusApproved
}

// ParseStatus accepts any casing and surrounding whitespace.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("status must be one of pending, approved, rejected")
	}
	return s, nil
}

// Action is a moderation event that may move a record between states.
type Action string

const (
	ActionSubmit          Action = "submit"
	ActionPublishOfficial Action = "publish_official"
	ActionApprove         Action = "approve"
	ActionReject          Action = "reject"
	ActionForceSet        Action = "force_set"
	ActionEdit            Action = "edit"
	ActionDelete          Action = "delete"
)

// Initial is the status a new record is created with.
func Initial(official bool) Status {
	if official {
		return StatusApproved
	}
	return StatusPending
}

// Apply returns the status after a review action on an existing record.
func Apply(current Status, action Action) (Status, error) {
	switch action {
	case ActionApprove:
		return StatusApproved, nil
	case ActionReject:
		return StatusRejected, nil
	case ActionEdit:
		return current, nil
	}
	return "", fmt.Errorf("action %q is not a review transition", action)
}

// ForceSet validates the target of an administrative status override.
func ForceSet(target Status) (Status, error) {
	if !target.Valid() {
		return "", fmt.Errorf("status must be one of pending, approved, rejected")
	}
	return target, nil
}
