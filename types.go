package instagram

import "time"

// UserIDField is the key under which the resolved user ID is stored in a Profile.
const UserIDField = "userID"

// Profile is a profile record as returned by the private API: field name to
// decoded JSON value (string, bool, json.Number, nested map or slice).
type Profile map[string]any

// String returns the value of key as a string, or "" if absent or not a string.
func (p Profile) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Bool returns the value of key as a bool, or false if absent or not a bool.
func (p Profile) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Investigation is the outcome of one successful investigation run.
type Investigation struct {
	RunID    string
	Username string
	UserID   string
	Profile  Profile

	// Steps records which sub-calls ran and how they ended.
	Steps []StepOutcome

	// Partial is set when the advanced lookup failed and Profile holds only
	// the base record.
	Partial   bool
	LookupErr error

	StartedAt  time.Time
	FinishedAt time.Time
}

// StepOutcome is the provenance of one sub-call.
type StepOutcome struct {
	Step     Step
	OK       bool
	Err      error
	Duration time.Duration
}
