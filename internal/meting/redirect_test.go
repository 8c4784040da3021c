package meting

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestResolveFollowsRedirectsWithHead(t *testing.T) {
	var gets int
	handler := http.NewServeMux()
	handler.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://cdn.test/final.mp3", http.StatusFound)
	})
	handler.HandleFunc("/final.mp3", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
		}
		w.WriteHeader(http.StatusOK)
	})

	resolver := newTestRedirectResolver(handler)
	got := resolver.Resolve(context.Background(), "http://cdn.test/start")
	if got != "http://cdn.test/final.mp3" {
		t.Fatalf("expected terminal url, got %q", got)
	}
	if gets != 0 {
		t.Fatalf("HEAD success must not trigger a GET probe")
	}
}

func TestResolveFallsBackToGet(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	resolver := newTestRedirectResolver(handler)
	got := resolver.Resolve(context.Background(), "http://cdn.test/track.mp3")
	if got != "http://cdn.test/track.mp3" {
		t.Fatalf("expected GET fallback to confirm url, got %q", got)
	}
}

func TestResolveAcceptsPartialContentHead(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Fatalf("unexpected %s probe", r.Method)
		}
		w.WriteHeader(http.StatusPartialContent)
	})

	resolver := newTestRedirectResolver(handler)
	got := resolver.Resolve(context.Background(), "http://cdn.test/track.mp3")
	if got != "http://cdn.test/track.mp3" {
		t.Fatalf("206 on HEAD should confirm the url, got %q", got)
	}
}

func TestResolveReturnsInputWhenProbesFail(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	resolver := newTestRedirectResolver(handler)
	got := resolver.Resolve(context.Background(), "http://cdn.test/track.mp3")
	if got != "http://cdn.test/track.mp3" {
		t.Fatalf("failed probes must fall back to the input url, got %q", got)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	resolver := NewRedirectResolver(zap.NewNop(), time.Second, nil)
	if got := resolver.Resolve(context.Background(), ""); got != "" {
		t.Fatalf("empty input should stay empty, got %q", got)
	}
}

func newTestRedirectResolver(handler http.Handler) *RedirectResolver {
	return NewRedirectResolver(zap.NewNop(), time.Second, roundTripper{handler: handler})
}
