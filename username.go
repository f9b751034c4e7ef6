package instagram

import (
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// NormalizeUsername trims whitespace and one leading "@", then checks the
// result against Instagram's username charset (letters, digits, "." and "_").
func NormalizeUsername(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	u = strings.TrimPrefix(u, "@")
	if u == "" {
		return "", newFailure(StepValidate, KindInvalidUsername, "username is required", nil)
	}
	if !usernameRe.MatchString(u) {
		return "", newFailure(StepValidate, KindInvalidUsername, "only letters, digits, '.' and '_' are allowed: "+u, nil)
	}
	return u, nil
}
