package meting

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// SongReference is the caller's description of what to play. At least
// one of ID or URL must be set; everything else is optional detail that
// shortens the resolution pipeline.
type SongReference struct {
	ID        string
	URL       string
	Name      string
	Artist    string
	LyricURL  string
	LyricText string
}

// ResolvedTrack is the outcome of a resolution: a direct playable URL
// plus at most one lyric source.
type ResolvedTrack struct {
	SongID    string
	Name      string
	Artist    string
	SourceURL string
	FinalURL  string
	LyricURL  string
	LyricText string
}

// ProgressFunc receives coarse progress milestones during a resolution.
type ProgressFunc func(percent int, message string)

// Resolver runs the full resolution pipeline: reference validation,
// upstream play-url lookup, URL normalization, redirect chasing and the
// lyric source fallback chain.
type Resolver struct {
	log       *zap.Logger
	client    *Client
	redirects *RedirectResolver
	cache     *Cache
}

// NewResolver wires a resolver over a client, a redirect resolver and
// the shared resolution cache.
func NewResolver(log *zap.Logger, client *Client, redirects *RedirectResolver, cache *Cache) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log, client: client, redirects: redirects, cache: cache}
}

// Resolve turns a song reference into a playable track. Returns
// ErrInvalidReference when the reference has neither id nor URL,
// ErrTokenRequired when an id lookup needs the missing signing token,
// and ErrLookupFailed when the upstream yields nothing playable.
// Resolving the same reference twice is side-effect free.
func (r *Resolver) Resolve(ctx context.Context, ref SongReference, progress ProgressFunc) (ResolvedTrack, error) {
	if progress == nil {
		progress = func(int, string) {}
	}

	id := strings.TrimSpace(ref.ID)
	sourceURL := r.client.norm.Normalize(ref.URL)
	if id == "" && sourceURL == "" {
		return ResolvedTrack{}, ErrInvalidReference
	}
	progress(10, "starting resolution")

	if sourceURL == "" {
		progress(25, "looking up play url")
		fetched, err := r.client.FetchPlayURL(ctx, id)
		if err != nil {
			return ResolvedTrack{}, err
		}
		if fetched == "" {
			return ResolvedTrack{}, ErrLookupFailed
		}
		sourceURL = r.client.norm.Normalize(fetched)
	}

	progress(55, "resolving final url")
	finalURL := r.redirects.Resolve(ctx, sourceURL)
	r.log.Info("track resolved",
		zap.String("id", id), zap.String("url", finalURL))

	progress(70, "resolving lyric source")
	lyricURL, lyricText := r.lyricSource(ctx, id, ref)

	progress(100, "resolution complete")
	return ResolvedTrack{
		SongID:    id,
		Name:      ref.Name,
		Artist:    ref.Artist,
		SourceURL: sourceURL,
		FinalURL:  finalURL,
		LyricURL:  lyricURL,
		LyricText: lyricText,
	}, nil
}

// lyricSource walks the lyric fallback chain and returns at most one of
// a lyric URL or inline lyric text. A caller-supplied source wins over
// the cache, the cache wins over a constructed signed URL, and fetching
// the text outright is the last resort. Lyrics are best effort: every
// failure here degrades to "no lyric" rather than failing the resolve.
func (r *Resolver) lyricSource(ctx context.Context, id string, ref SongReference) (string, string) {
	if u := strings.TrimSpace(ref.LyricURL); u != "" {
		return r.client.norm.Normalize(u), ""
	}
	if t := strings.TrimSpace(ref.LyricText); t != "" {
		return "", t
	}
	if id == "" {
		return "", ""
	}

	if cached, ok := r.cache.Get(id); ok && cached.LyricURL != "" {
		return cached.LyricURL, ""
	}
	if u, err := r.client.LyricURL(id); err == nil {
		return u, ""
	}
	if t := r.client.FetchLyricText(ctx, id); t != "" {
		return "", t
	}
	return "", ""
}
