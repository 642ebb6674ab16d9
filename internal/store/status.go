package store

import "fmt"

// Status values mirror the application_status enum in PostgreSQL.
//
// Valid status graph:
//
//	SAVED ──► APPLIED ──► INTERVIEWING ──► OFFER
//	   │          │              │
//	   └──────────┴──────────────┴──► REJECTED
//
// OFFER and REJECTED are terminal states.
type Status string

const (
	StatusSaved        Status = "SAVED"
	StatusApplied      Status = "APPLIED"
	StatusInterviewing Status = "INTERVIEWING"
	StatusOffer        Status = "OFFER"
	StatusRejected     Status = "REJECTED"
)

var validTransitions = map[Status][]Status{
	StatusSaved:        {StatusApplied, StatusRejected},
	StatusApplied:      {StatusInterviewing, StatusRejected},
	StatusInterviewing: {StatusOffer, StatusRejected},
	// OFFER and REJECTED are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
