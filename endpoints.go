package instagram

import (
	"fmt"
	"net/url"
	"strings"
)

const defaultAPIBase = "https://i.instagram.com/api/v1"

// Operation names, used for logging and rate-limit bookkeeping.
const (
	opWebProfileInfo = "web_profile_info"
	opUserInfo       = "user_info"
	opUsersLookup    = "users_lookup"
)

// lookupSignature is the placeholder signature the lookup endpoint accepts.
const lookupSignature = "SIGNATURE"

func webProfileInfoURL(base, username string) string {
	return strings.TrimRight(base, "/") + "/users/web_profile_info/?username=" + url.QueryEscape(username)
}

func userInfoURL(base, userID string) string {
	return fmt.Sprintf("%s/users/%s/info/", strings.TrimRight(base, "/"), url.PathEscape(userID))
}

func usersLookupURL(base string) string {
	return strings.TrimRight(base, "/") + "/users/lookup/"
}
