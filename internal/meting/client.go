package meting

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public Meting-compatible aggregator endpoint.
const DefaultBaseURL = "https://api.i-meto.com/meting/api"

// DefaultServer is the upstream source tag sent with every request.
const DefaultServer = "netease"

// Config configures the upstream aggregator client. Transport is
// injectable for tests and proxies; nil means the default transport.
type Config struct {
	BaseURL   string
	Server    string
	Token     string
	SignParam string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client performs the three upstream call shapes against a single GET
// endpoint: search, play-url lookup and lyric lookup. Every transport
// failure is recovered to the operation's empty value; nothing here is
// allowed to take the process down.
type Client struct {
	log        *zap.Logger
	http       *http.Client
	noRedirect *http.Client
	base       string
	server     string
	signer     Signer
	norm       Normalizer
	cache      *Cache
}

// NewClient builds a client. The cache receives every search hit so later
// resolve calls can recover lyric URLs the caller omitted.
func NewClient(log *zap.Logger, cfg Config, cache *Cache) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Server) == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	norm, err := NewNormalizer(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewCache()
	}

	return &Client{
		log:  log,
		http: &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
		noRedirect: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		base:   cfg.BaseURL,
		server: cfg.Server,
		signer: Signer{Token: cfg.Token, Param: cfg.SignParam},
		norm:   norm,
		cache:  cache,
	}, nil
}

// Normalizer exposes the client's URL normalizer.
func (c *Client) Normalizer() Normalizer {
	return c.norm
}

// Search queries the upstream aggregator and returns up to limit hits.
// Failures of any kind return an empty slice; each hit is written into
// the resolution cache as a side effect.
func (c *Client) Search(ctx context.Context, query string, limit int) []SearchResult {
	params, err := c.signer.Sign(c.server, "search", query)
	if err != nil {
		// Search is never in the signed set; this cannot happen.
		c.log.Error("sign search request", zap.Error(err))
		return nil
	}

	body, status, err := c.get(ctx, c.http, c.base+"?"+params.Encode())
	if err != nil {
		c.log.Error("search request failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	if status != http.StatusOK {
		c.log.Error("search request rejected", zap.String("query", query), zap.Int("status", status))
		return nil
	}

	items, err := decodeSearchItems(body)
	if err != nil {
		c.log.Error("search response malformed", zap.String("query", query), zap.Error(err))
		return nil
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	results := make([]SearchResult, 0, len(items))
	for _, item := range items {
		playURL := c.norm.Normalize(item.URL)
		lyricURL := ""
		if strings.TrimSpace(item.Lrc) != "" {
			lyricURL = c.norm.Normalize(item.Lrc)
		}
		id := item.id()
		if id == "" {
			id = playURL
		}
		result := SearchResult{
			ID:       id,
			Name:     item.Title,
			Artist:   item.Author,
			URL:      playURL,
			PicURL:   item.Pic,
			LyricURL: lyricURL,
		}
		results = append(results, result)
		c.cache.Put(result.ID, result)
	}
	return results
}

// FetchPlayURL looks up a playable URL for a song id. The upstream either
// redirects to the direct link (the Location header is the answer) or
// returns a 200 with the URL embedded in one of several JSON shapes.
// Transport failures return ""; a missing signing token returns
// ErrTokenRequired.
func (c *Client) FetchPlayURL(ctx context.Context, id string) (string, error) {
	params, err := c.signer.Sign(c.server, "url", id)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+params.Encode(), nil)
	if err != nil {
		return "", nil
	}
	resp, err := c.noRedirect.Do(req)
	if err != nil {
		c.log.Error("play url request failed", zap.String("id", id), zap.Error(err))
		return "", nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		location := strings.TrimSpace(resp.Header.Get("Location"))
		if location == "" {
			c.log.Error("redirect without location header", zap.String("id", id))
			return "", nil
		}
		c.log.Info("play url via redirect", zap.String("id", id), zap.String("url", location))
		return location, nil
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			c.log.Error("play url body read failed", zap.String("id", id), zap.Error(err))
			return "", nil
		}
		return decodePlayURL(body), nil
	default:
		c.log.Error("play url lookup rejected", zap.String("id", id), zap.Int("status", resp.StatusCode))
		return "", nil
	}
}

// FetchLyricText fetches the lyric body for a song id. The upstream
// answers either with raw LRC text (which is not valid JSON and is
// returned as-is) or with the lyric wrapped in one of several JSON
// shapes. Any failure returns "".
func (c *Client) FetchLyricText(ctx context.Context, id string) string {
	params, err := c.signer.Sign(c.server, "lrc", id)
	if err != nil {
		c.log.Warn("lyric lookup needs signing token", zap.String("id", id))
		return ""
	}

	body, status, err := c.get(ctx, c.http, c.base+"?"+params.Encode())
	if err != nil {
		c.log.Warn("lyric request failed", zap.String("id", id), zap.Error(err))
		return ""
	}
	if status != http.StatusOK {
		c.log.Warn("lyric lookup rejected", zap.String("id", id), zap.Int("status", status))
		return ""
	}
	return decodeLyric(body)
}

// FetchLyricByURL fetches lyric text directly from a lyric URL.
func (c *Client) FetchLyricByURL(ctx context.Context, lyricURL string) string {
	if strings.TrimSpace(lyricURL) == "" {
		return ""
	}
	body, status, err := c.get(ctx, c.http, lyricURL)
	if err != nil {
		c.log.Warn("lyric url fetch failed", zap.String("url", lyricURL), zap.Error(err))
		return ""
	}
	if status != http.StatusOK {
		c.log.Warn("lyric url fetch rejected", zap.String("url", lyricURL), zap.Int("status", status))
		return ""
	}
	return strings.TrimSpace(string(body))
}

// LyricURL constructs the signed lyric-fetch URL for a song id, suitable
// for the playback device to GET on its own. Requires the signing token.
func (c *Client) LyricURL(id string) (string, error) {
	params, err := c.signer.Sign(c.server, "lrc", id)
	if err != nil {
		return "", err
	}
	return c.base + "?" + params.Encode(), nil
}

func (c *Client) get(ctx context.Context, client *http.Client, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
