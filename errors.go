package instagram

import (
	"errors"
	"fmt"
)

// Kind categorizes investigation failures.
type Kind int

const (
	// KindNone means the error is not a *Failure.
	KindNone Kind = iota
	// KindInvalidUsername is an empty username or one with disallowed characters.
	KindInvalidUsername
	// KindNotFound is a missing account, or a profile body without a user object.
	KindNotFound
	// KindRateLimitedOrInvalidResponse is a malformed body, which the API uses
	// as an implicit rate-limit signal.
	KindRateLimitedOrInvalidResponse
	// KindUnexpectedResponseShape is a parseable body missing the expected fields.
	KindUnexpectedResponseShape
	// KindRateLimited is an explicit HTTP 429.
	KindRateLimited
	// KindNetworkError covers transport errors, timeouts and unexpected statuses.
	KindNetworkError
	// KindLookupFailed is any advanced lookup failure. It is never fatal.
	KindLookupFailed
)

var kindNames = map[Kind]string{
	KindNone:                         "none",
	KindInvalidUsername:              "invalid username",
	KindNotFound:                     "not found",
	KindRateLimitedOrInvalidResponse: "rate limited or invalid response",
	KindUnexpectedResponseShape:      "unexpected response shape",
	KindRateLimited:                  "rate limited",
	KindNetworkError:                 "network error",
	KindLookupFailed:                 "advanced lookup failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Fatal reports whether a failure of this kind aborts an investigation.
func (k Kind) Fatal() bool {
	return k != KindNone && k != KindLookupFailed
}

// Step identifies a stage of the investigation pipeline.
type Step string

const (
	StepValidate Step = "validate" // username normalization
	StepResolve  Step = "resolve"  // username to user ID
	StepFetch    Step = "fetch"    // profile record by user ID
	StepLookup   Step = "lookup"   // best-effort users/lookup
)

// Failure is a classified error produced by a pipeline step.
type Failure struct {
	Kind   Kind
	Step   Step
	Detail string
	Err    error
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s", f.Step, f.Kind)
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Err }

func newFailure(step Step, kind Kind, detail string, err error) *Failure {
	return &Failure{Kind: kind, Step: step, Detail: detail, Err: err}
}

// KindOf returns the Kind of the first *Failure in err's chain, or KindNone.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindNone
}

// IsKind reports whether err carries a *Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// classifyResolveStatus maps a web_profile_info HTTP status to a failure kind.
// Any status other than 404 falls through to body parsing, which is where the
// API signals throttling.
func classifyResolveStatus(status int) Kind {
	if status == 404 {
		return KindNotFound
	}
	return KindNone
}

// classifyFetchStatus maps a user info HTTP status to a failure kind.
func classifyFetchStatus(status int) Kind {
	switch {
	case status == 429:
		return KindRateLimited
	case status < 200 || status > 299:
		return KindNetworkError
	}
	return KindNone
}
