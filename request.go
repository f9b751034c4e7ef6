package instagram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// doRequest executes one request bounded by the configured timeout. A call that
// outlives the deadline is abandoned and reported as a context error.
func (c *Client) doRequest(ctx context.Context, op, method, url string, headers map[string]string, payload []byte) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	start := time.Now()
	b, _, status, err := c.doer.DoWithHeaderOrderCtx(ctx, method, url, headers, body, instagramHeaderOrder)
	if err != nil {
		slog.Debug("request failed", slog.String("endpoint", op), slog.Any("error", err))
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("%s %s: %w", method, op, ctx.Err())
		}
		return nil, 0, err
	}
	slog.Debug("request done",
		slog.String("endpoint", op),
		slog.Int("status", status),
		slog.Int("bytes", len(b)),
		slog.Duration("took", time.Since(start)))
	return b, status, nil
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
