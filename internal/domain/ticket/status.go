package ticket

import "strings"

// Status is either "open" or "closed_by_<actor>".
type Status string

const (
	StatusOpen Status = "open"

	// DefaultCloser is the actor recorded when none is given.
	DefaultCloser = "admin"

	// ClosedPrefix starts every closed status, including legacy rows
	// without an actor.
	ClosedPrefix = "closed"

	closedPrefix   = ClosedPrefix
	closedByPrefix = "closed_by_"
)

// ClosedBy builds the terminal status for actor.
func ClosedBy(actor string) Status {
	return Status(closedByPrefix + actor)
}

// ParseStatus accepts "open", "closed_by_<actor>" and the shorthand "closed",
// which maps to the default closer.
func ParseStatus(s string) (Status, error) {
	if s == closedPrefix {
		return ClosedBy(DefaultCloser), nil
	}
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

// IsClosed matches any status beginning with "closed", including rows
// imported from older data that lack an actor.
func (s Status) IsClosed() bool {
	return strings.HasPrefix(string(s), closedPrefix)
}

// Actor returns who closed the ticket, or "" for non-closed statuses.
func (s Status) Actor() string {
	if !strings.HasPrefix(string(s), closedByPrefix) {
		return ""
	}
	return strings.TrimPrefix(string(s), closedByPrefix)
}

func (s Status) IsValid() bool {
	if s == StatusOpen {
		return true
	}
	return validActor(s.Actor())
}

func validActor(actor string) bool {
	return actor != "" && !strings.ContainsAny(actor, " \t\r\n")
}
