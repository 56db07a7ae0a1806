package models

// RoleType represents a user role in the portal
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAgent   RoleType = "AGENT"
)

// Valid reports whether the role is one of the known values.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleAgent:
		return true
	}
	return false
}

// CompletionStatus is the tri-state profile completion flag that gates
// which onboarding step a session is routed to.
type CompletionStatus string

const (
	CompletionIncomplete CompletionStatus = "incomplete"
	CompletionPartial    CompletionStatus = "partial"
	CompletionComplete   CompletionStatus = "complete"
)

// Valid reports whether the status is one of the known values.
func (s CompletionStatus) Valid() bool {
	switch s {
	case CompletionIncomplete, CompletionPartial, CompletionComplete:
		return true
	}
	return false
}
