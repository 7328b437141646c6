package domain

import "strings"

// ID is used across domain entities.
type ID int64

// Status is a booking status. The set is open: the backend may send values
// this client does not know, and those are shown verbatim.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Normalize lowercases and trims a raw status for comparisons.
func (s Status) Normalize() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// Label is the display form: upper-cased, unknown values included.
func (s Status) Label() string {
	return strings.ToUpper(strings.TrimSpace(string(s)))
}

// Upcoming trips are the ones still ahead of the passenger.
func (s Status) Upcoming() bool {
	switch s.Normalize() {
	case StatusPending, StatusConfirmed:
		return true
	}
	return false
}

// Past trips are finished one way or another.
func (s Status) Past() bool {
	switch s.Normalize() {
	case StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
