package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// ResolveUserID maps a username to Instagram's internal user ID via web_profile_info.
//
// The endpoint answers throttled requests with a non-JSON body instead of a
// status code, so an unparsable body is reported as
// KindRateLimitedOrInvalidResponse. This is an upstream convention and can
// misfire if the API starts returning other non-JSON errors.
func (c *Client) ResolveUserID(ctx context.Context, username, sessionID string) (string, error) {
	if until, blocked := c.coolingDown(opWebProfileInfo); blocked {
		return "", newFailure(StepResolve, KindRateLimitedOrInvalidResponse, "cooling down until "+until.Format(time.RFC3339), nil)
	}

	body, status, err := c.doRequest(ctx, opWebProfileInfo, "GET", webProfileInfoURL(c.cfg.APIBase, username), webProfileHeaders(sessionID), nil)
	if err != nil {
		return "", newFailure(StepResolve, KindNetworkError, "", err)
	}
	if kind := classifyResolveStatus(status); kind != KindNone {
		return "", newFailure(StepResolve, kind, fmt.Sprintf("HTTP %d", status), nil)
	}

	id, err := parseWebProfileInfo(body)
	switch {
	case errors.Is(err, errMalformedBody):
		c.markThrottled(opWebProfileInfo)
		return "", newFailure(StepResolve, KindRateLimitedOrInvalidResponse, fmt.Sprintf("HTTP %d: %s", status, truncateBytes(body, 200)), err)
	case err != nil:
		return "", newFailure(StepResolve, KindUnexpectedResponseShape, fmt.Sprintf("HTTP %d", status), err)
	}
	return id, nil
}

// FetchProfile loads the full profile record for a user ID. The returned
// record carries the ID under UserIDField.
func (c *Client) FetchProfile(ctx context.Context, userID, sessionID string) (Profile, error) {
	if until, blocked := c.coolingDown(opUserInfo); blocked {
		return nil, newFailure(StepFetch, KindRateLimited, "cooling down until "+until.Format(time.RFC3339), nil)
	}

	body, status, err := c.doRequest(ctx, opUserInfo, "GET", userInfoURL(c.cfg.APIBase, userID), userInfoHeaders(sessionID), nil)
	if err != nil {
		return nil, newFailure(StepFetch, KindNetworkError, "", err)
	}
	switch kind := classifyFetchStatus(status); kind {
	case KindNone:
	case KindRateLimited:
		c.markThrottled(opUserInfo)
		return nil, newFailure(StepFetch, kind, "HTTP 429", nil)
	default:
		return nil, newFailure(StepFetch, kind, fmt.Sprintf("HTTP %d: %s", status, truncateBytes(body, 200)), nil)
	}

	p, err := parseUserInfo(body, userID)
	switch {
	case errors.Is(err, errMalformedBody):
		return nil, newFailure(StepFetch, KindRateLimitedOrInvalidResponse, truncateBytes(body, 200), err)
	case err != nil:
		return nil, newFailure(StepFetch, KindNotFound, "", err)
	}
	return p, nil
}

// lookupPayload builds the signed_body form value for users/lookup.
func lookupPayload(username string) []byte {
	q, _ := json.Marshal(struct {
		Q            string `json:"q"`
		SkipRecovery string `json:"skip_recovery"`
	}{Q: username, SkipRecovery: "1"})
	return []byte("signed_body=" + lookupSignature + "." + url.QueryEscape(string(q)))
}

// AdvancedLookup queries users/lookup, which can expose obfuscated contact
// fields. It uses app identification only, no session. Every failure is
// KindLookupFailed; callers treat it as best-effort.
func (c *Client) AdvancedLookup(ctx context.Context, username string) (Profile, error) {
	if until, blocked := c.coolingDown(opUsersLookup); blocked {
		return nil, newFailure(StepLookup, KindLookupFailed, "cooling down until "+until.Format(time.RFC3339), nil)
	}

	body, status, err := c.doRequest(ctx, opUsersLookup, "POST", usersLookupURL(c.cfg.APIBase), lookupHeaders(), lookupPayload(username))
	if err != nil {
		return nil, newFailure(StepLookup, KindLookupFailed, "network error", err)
	}

	p, err := parseLookup(body)
	if err != nil {
		if errors.Is(err, errMalformedBody) {
			c.markThrottled(opUsersLookup)
		}
		return nil, newFailure(StepLookup, KindLookupFailed, fmt.Sprintf("HTTP %d", status), err)
	}
	slog.Debug("lookup response", slog.Int("status", status), slog.Int("fields", len(p)))
	return p, nil
}
