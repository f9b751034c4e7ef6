package instagram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	errMalformedBody = errors.New("malformed JSON body")
	errMissingUserID = errors.New("data.user.id missing")
	errMissingUser   = errors.New("user object missing")
)

// decodeJSON decodes a complete JSON document, keeping numbers as json.Number.
// Trailing data after the first value is rejected.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", errMalformedBody)
	}
	return v, nil
}

// parseWebProfileInfo extracts data.user.id from a web_profile_info response.
func parseWebProfileInfo(body []byte) (string, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return "", err
	}
	root, _ := v.(map[string]any)
	data, _ := root["data"].(map[string]any)
	user, _ := data["user"].(map[string]any)
	switch id := user["id"].(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case json.Number:
		return id.String(), nil
	}
	return "", errMissingUserID
}

// parseUserInfo extracts the user object from a users/{id}/info response and
// tags it with the user ID.
func parseUserInfo(body []byte, userID string) (Profile, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	root, _ := v.(map[string]any)
	user, _ := root["user"].(map[string]any)
	if len(user) == 0 {
		return nil, errMissingUser
	}
	p := Profile(user)
	p[UserIDField] = userID
	return p, nil
}

// parseLookup returns the users/lookup response object as a partial record.
func parseLookup(body []byte) (Profile, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("lookup response is %T, want object", v)
	}
	return Profile(obj), nil
}
