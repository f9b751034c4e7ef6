// Package instagram investigates Instagram profiles through the private API:
// it resolves a username to a user ID, fetches the profile record and merges in
// the best-effort users/lookup response.
package instagram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// Doer executes a single HTTP request with a fixed header order and returns
// body, response headers and status. It must return once ctx is done.
// *stealth.BrowserClient implements it.
type Doer interface {
	DoWithHeaderOrderCtx(ctx context.Context, method, url string, headers map[string]string, body io.Reader, order []string) ([]byte, map[string]string, int, error)
}

// Client talks to the three private API endpoints used by an investigation.
// Every method returns either a value or a *Failure.
type Client struct {
	doer    Doer
	limiter *ratelimit.Limiter
	cfg     Config
}

// NewClient creates a client backed by a stealth browser transport.
func NewClient(cfg Config) (*Client, error) {
	cfg.defaults()

	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(instagramHeaderOrder),
		stealth.WithTimeout(timeoutSeconds(cfg.RequestTimeout)),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
		slog.Debug("using proxy", slog.String("proxy", stealth.MaskProxy(cfg.Proxy)))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return NewClientWithDoer(cfg, bc), nil
}

// timeoutSeconds converts d to the whole seconds go-stealth expects, rounding
// up so the transport never gives up before the context deadline does.
func timeoutSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

// NewClientWithDoer creates a client over an arbitrary transport.
func NewClientWithDoer(cfg Config, doer Doer) *Client {
	cfg.defaults()
	return &Client{
		doer:    doer,
		limiter: ratelimit.NewLimiter(ratelimit.DefaultConfig),
		cfg:     cfg,
	}
}

// markThrottled blocks an operation for the configured cool-down, if any.
func (c *Client) markThrottled(op string) {
	if c.cfg.RateLimitCooldown <= 0 {
		return
	}
	until := time.Now().Add(c.cfg.RateLimitCooldown)
	c.limiter.MarkRateLimited(op, until)
	slog.Warn("endpoint throttled, cooling down", slog.String("endpoint", op), slog.Time("until", until))
}

// coolingDown reports whether op is still blocked by an earlier throttle signal.
func (c *Client) coolingDown(op string) (time.Time, bool) {
	if c.cfg.RateLimitCooldown <= 0 || !c.limiter.IsRateLimited(op) {
		return time.Time{}, false
	}
	return c.limiter.AvailableAt(op), true
}
