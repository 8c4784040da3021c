package meting

import (
	"net/url"
	"strings"
)

// Normalizer rewrites partial and relative URLs returned by upstream
// mirrors into absolute http(s) URLs. Pure string transformation, no
// network access.
type Normalizer struct {
	base *url.URL
}

// NewNormalizer builds a normalizer resolving relative paths against the
// upstream base URL.
func NewNormalizer(baseURL string) (Normalizer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return Normalizer{}, err
	}
	return Normalizer{base: base}, nil
}

// Normalize returns the absolute form of raw, or "" for blank input.
// Already-absolute http(s) URLs pass through unchanged; protocol-relative
// "//host/path" URLs default to https; everything else resolves against
// the base URL with standard relative-reference semantics.
func (n Normalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if parsed, err := url.Parse(trimmed); err == nil {
		if parsed.Scheme == "http" || parsed.Scheme == "https" {
			return trimmed
		}
	}

	if strings.HasPrefix(trimmed, "//") {
		return "https:" + trimmed
	}

	ref, err := url.Parse(trimmed)
	if err != nil || n.base == nil {
		return trimmed
	}
	return n.base.ResolveReference(ref).String()
}
