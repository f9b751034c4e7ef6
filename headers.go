package instagram

import stealth "github.com/anatolykoptev/go-stealth"

const (
	// webUserAgent is sent with web_profile_info; the endpoint only checks
	// that x-ig-app-id matches the web app.
	webUserAgent = "iphone_ua"
	webAppID     = "936619743392459"

	// mobileUserAgent is sent with users/{id}/info.
	mobileUserAgent = "Instagram 64.0.0.14.96"

	// lookupUserAgent and lookupAppID identify the Android app for users/lookup.
	lookupUserAgent = "Instagram 101.0.0.15.120"
	lookupAppID     = "124024574287414"
)

func sessionCookie(sessionID string) string {
	return "sessionid=" + sessionID
}

// webProfileHeaders returns headers for the web_profile_info endpoint.
func webProfileHeaders(sessionID string) map[string]string {
	h := map[string]string{
		"user-agent":  webUserAgent,
		"x-ig-app-id": webAppID,
		"cookie":      sessionCookie(sessionID),
		"accept":      "*/*",
	}
	if ch := stealth.ClientHintsHeaders(webUserAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}

// userInfoHeaders returns headers for the users/{id}/info endpoint.
func userInfoHeaders(sessionID string) map[string]string {
	return map[string]string{
		"user-agent": mobileUserAgent,
		"cookie":     sessionCookie(sessionID),
		"accept":     "*/*",
	}
}

// lookupHeaders returns headers for the unauthenticated users/lookup endpoint.
func lookupHeaders() map[string]string {
	return map[string]string{
		"accept-language": "en-US",
		"user-agent":      lookupUserAgent,
		"content-type":    "application/x-www-form-urlencoded; charset=UTF-8",
		"x-ig-app-id":     lookupAppID,
		"accept-encoding": "gzip, deflate",
		"connection":      "keep-alive",
	}
}

// instagramHeaderOrder keeps header order stable across requests for TLS fingerprint consistency.
var instagramHeaderOrder = []string{
	"user-agent",
	"x-ig-app-id",
	"content-type",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"cookie",
	"accept",
	"accept-language",
	"accept-encoding",
	"connection",
}
