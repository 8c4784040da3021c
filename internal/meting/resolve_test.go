package meting

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestResolveRejectsEmptyReference(t *testing.T) {
	resolver, _ := newTestResolver(t, http.NewServeMux(), "secret")

	_, err := resolver.Resolve(context.Background(), SongReference{}, nil)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestResolveByID(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/meting/api", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") != "url" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Location", "http://cdn.test/start")
		w.WriteHeader(http.StatusFound)
	})
	handler.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://cdn.test/final.mp3", http.StatusFound)
	})
	handler.HandleFunc("/final.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resolver, _ := newTestResolver(t, handler, "secret")
	track, err := resolver.Resolve(context.Background(), SongReference{ID: "42", Name: "Song", Artist: "Artist"}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if track.FinalURL != "http://cdn.test/final.mp3" {
		t.Fatalf("expected terminal cdn url, got %q", track.FinalURL)
	}
	if track.Name != "Song" || track.Artist != "Artist" || track.SongID != "42" {
		t.Fatalf("reference metadata lost: %+v", track)
	}
	if track.LyricURL == "" || !strings.Contains(track.LyricURL, "type=lrc") {
		t.Fatalf("expected constructed lyric url, got %q", track.LyricURL)
	}
	if track.LyricText != "" {
		t.Fatalf("lyric url and lyric text are mutually exclusive")
	}
}

func TestResolveByURLSkipsLookup(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/meting/api", func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("url-only reference must not hit the aggregator")
	})
	handler.HandleFunc("/track.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resolver, _ := newTestResolver(t, handler, "")
	track, err := resolver.Resolve(context.Background(), SongReference{URL: "http://cdn.test/track.mp3"}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if track.FinalURL != "http://cdn.test/track.mp3" {
		t.Fatalf("unexpected final url %q", track.FinalURL)
	}
}

func TestResolveMissingTokenFailsIDLookup(t *testing.T) {
	resolver, _ := newTestResolver(t, http.NewServeMux(), "")

	_, err := resolver.Resolve(context.Background(), SongReference{ID: "42"}, nil)
	if !errors.Is(err, ErrTokenRequired) {
		t.Fatalf("expected ErrTokenRequired, got %v", err)
	}
}

func TestResolveLookupFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resolver, _ := newTestResolver(t, handler, "secret")
	_, err := resolver.Resolve(context.Background(), SongReference{ID: "42"}, nil)
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}

func TestResolveCallerLyricURLWins(t *testing.T) {
	handler := okHandler()

	resolver, cache := newTestResolver(t, handler, "secret")
	cache.Put("42", SearchResult{ID: "42", LyricURL: "http://cached.test/lrc"})

	track, err := resolver.Resolve(context.Background(), SongReference{
		ID:       "42",
		URL:      "http://cdn.test/track.mp3",
		LyricURL: "//caller.test/lrc",
	}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if track.LyricURL != "https://caller.test/lrc" {
		t.Fatalf("caller lyric url must win, got %q", track.LyricURL)
	}
}

func TestResolveCallerLyricTextWins(t *testing.T) {
	resolver, _ := newTestResolver(t, okHandler(), "secret")

	track, err := resolver.Resolve(context.Background(), SongReference{
		URL:       "http://cdn.test/track.mp3",
		LyricText: "[00:01.00]line",
	}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if track.LyricText != "[00:01.00]line" || track.LyricURL != "" {
		t.Fatalf("expected inline lyric text only, got %+v", track)
	}
}

func TestResolveUsesCachedLyricURL(t *testing.T) {
	resolver, cache := newTestResolver(t, okHandler(), "secret")
	cache.Put("42", SearchResult{ID: "42", LyricURL: "http://cached.test/lrc"})

	track, err := resolver.Resolve(context.Background(), SongReference{
		ID:  "42",
		URL: "http://cdn.test/track.mp3",
	}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if track.LyricURL != "http://cached.test/lrc" {
		t.Fatalf("expected cached lyric url, got %q", track.LyricURL)
	}
}

func TestResolveWithoutTokenHasNoLyric(t *testing.T) {
	resolver, _ := newTestResolver(t, okHandler(), "")

	track, err := resolver.Resolve(context.Background(), SongReference{
		ID:  "42",
		URL: "http://cdn.test/track.mp3",
	}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if track.LyricURL != "" || track.LyricText != "" {
		t.Fatalf("lyric lookup should degrade gracefully without a token: %+v", track)
	}
}

func TestResolveReportsProgress(t *testing.T) {
	resolver, _ := newTestResolver(t, okHandler(), "secret")

	var percents []int
	_, err := resolver.Resolve(context.Background(), SongReference{URL: "http://cdn.test/track.mp3"},
		func(percent int, _ string) { percents = append(percents, percent) })
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(percents) == 0 || percents[len(percents)-1] != 100 {
		t.Fatalf("expected progress ending at 100, got %v", percents)
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Fatalf("progress went backwards: %v", percents)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	resolver, _ := newTestResolver(t, okHandler(), "secret")
	ref := SongReference{URL: "http://cdn.test/track.mp3", Name: "Song"}

	first, err := resolver.Resolve(context.Background(), ref, nil)
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := resolver.Resolve(context.Background(), ref, nil)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if first != second {
		t.Fatalf("resolving twice diverged: %+v vs %+v", first, second)
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestResolver(t *testing.T, handler http.Handler, token string) (*Resolver, *Cache) {
	t.Helper()
	cache := NewCache()
	client := newUpstreamTestClient(t, handler, cache, token)
	redirects := NewRedirectResolver(zap.NewNop(), time.Second, roundTripper{handler: handler})

	return NewResolver(zap.NewNop(), client, redirects, cache), cache
}
