package instagram

import "time"

// Config holds all configuration for the Instagram client and investigator.
type Config struct {
	// APIBase is the private API root. Default: https://i.instagram.com/api/v1
	APIBase string

	// Proxy is an optional proxy URL for all requests.
	Proxy string

	// RequestTimeout bounds every outbound call.
	RequestTimeout time.Duration

	// Pacing is the pause between consecutive pipeline calls. Negative disables it.
	Pacing time.Duration

	// RateLimitCooldown is how long an endpoint stays blocked after it signalled
	// throttling. Zero or negative (the default) disables the cool-down, so a
	// failed investigation can be re-run right away.
	RateLimitCooldown time.Duration

	// ProgressHook receives step start/finish notifications. Optional.
	ProgressHook func(Event)
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.Pacing == 0 {
		cfg.Pacing = 1 * time.Second
	}
}
