package model

import "time"

// TargetExtra is a free-form key/value attribute attached to a target.
// Extras are deleted together with their parent target.
type TargetExtra struct {
	TargetID string
	Key      string
	Value    string
}

// TargetList is a named grouping of targets.
type TargetList struct {
	ID      string
	Name    string
	Created time.Time

	TargetIDs []string
}

// String returns the list's name.
func (l *TargetList) String() string { return l.Name }
