package meting

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RedirectResolver follows a URL's redirect chain to its terminal CDN
// address without downloading any media. It tries a cheap HEAD first and
// falls back to a GET whose body is closed unread, since some CDNs
// reject HEAD outright. Resolution never fails: when both probes come up
// empty the input URL is returned as-is.
type RedirectResolver struct {
	log  *zap.Logger
	http *http.Client
}

// NewRedirectResolver builds a resolver with the given probe timeout.
// A nil transport means the default transport.
func NewRedirectResolver(log *zap.Logger, timeout time.Duration, transport http.RoundTripper) *RedirectResolver {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &RedirectResolver{
		log:  log,
		http: &http.Client{Timeout: timeout, Transport: transport},
	}
}

// Resolve returns the terminal URL after following redirects, or the
// input unchanged when neither probe succeeds.
func (r *RedirectResolver) Resolve(ctx context.Context, rawURL string) string {
	if rawURL == "" {
		return ""
	}

	if final, ok := r.probe(ctx, http.MethodHead, rawURL); ok {
		return final
	}
	if final, ok := r.probe(ctx, http.MethodGet, rawURL); ok {
		return final
	}

	r.log.Warn("redirect resolution fell back to source url", zap.String("url", rawURL))
	return rawURL
}

func (r *RedirectResolver) probe(ctx context.Context, method, rawURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return "", false
	}
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug("redirect probe failed",
			zap.String("method", method), zap.String("url", rawURL), zap.Error(err))
		return "", false
	}
	// The body is never read; a GET here is only a headers probe.
	resp.Body.Close()

	final := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return final, true
	case http.StatusPartialContent:
		if method == http.MethodHead {
			return final, true
		}
	}
	r.log.Debug("redirect probe rejected",
		zap.String("method", method), zap.Int("status", resp.StatusCode))
	return "", false
}
