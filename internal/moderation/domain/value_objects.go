package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ContentType identifica qué clase de contenido se está moderando.
type ContentType string

const (
	ContentMeetup       ContentType = "meetup"
	ContentPost         ContentType = "post"
	ContentMeetupReview ContentType = "meetup_review"
)

// ParseContentType valida la representación externa de un ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentMeetup, ContentPost, ContentMeetupReview:
		return ContentType(s), nil
	}
	return "", fmt.Errorf("invalid content type %q", s)
}

// Decision es el estado de moderación de una tarea.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// ParseDecision valida la representación externa de una Decision.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionPending, DecisionApproved, DecisionRejected:
		return Decision(s), nil
	}
	return "", fmt.Errorf("invalid decision %q", s)
}

// ContentRef apunta al contenido bajo moderación.
type ContentRef struct {
	ContentType ContentType `json:"content_type"`
	ContentID   uuid.UUID   `json:"content_id"`
}
