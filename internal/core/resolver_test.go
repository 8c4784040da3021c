package core

import (
	"context"
	"testing"

	"github.com/mikey-austin/music_bridge/pkg/mb"
)

func TestResolverAlias(t *testing.T) {
	presence := []mb.Presence{{NodeID: "mb:tool:music:one", Kind: "music_tool", Name: "Music Tool"}}
	resolver := Resolver{
		Presence: &fakeBroker{presence: presence},
		Config: Config{
			Aliases: map[string]string{"music": "mb:tool:music:one"},
		},
	}
	got, err := resolver.ResolveMusicNode(context.Background(), "music")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.NodeID != "mb:tool:music:one" {
		t.Fatalf("expected alias resolution")
	}
}

func TestResolverSingleNodeDefault(t *testing.T) {
	presence := []mb.Presence{
		{NodeID: "mb:tool:music:one", Kind: "music_tool", Name: "Music Tool"},
		{NodeID: "mb:other:node", Kind: "other", Name: "Other"},
	}
	resolver := Resolver{Presence: &fakeBroker{presence: presence}}

	got, err := resolver.ResolveMusicNode(context.Background(), "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.NodeID != "mb:tool:music:one" {
		t.Fatalf("expected the only music node, got %q", got.NodeID)
	}
}

func TestResolverAmbiguous(t *testing.T) {
	presence := []mb.Presence{
		{NodeID: "mb:tool:music:one", Kind: "music_tool", Name: "Music Tool"},
		{NodeID: "mb:tool:music:two", Kind: "music_tool", Name: "Music Tool"},
	}
	resolver := Resolver{Presence: &fakeBroker{presence: presence}}
	if _, err := resolver.ResolveMusicNode(context.Background(), "Music Tool"); err == nil {
		t.Fatalf("expected ambiguous error")
	}
}

func TestResolverNotFound(t *testing.T) {
	resolver := Resolver{Presence: &fakeBroker{}}
	_, err := resolver.ResolveMusicNode(context.Background(), "nothing")
	cliErr, ok := err.(*CLIError)
	if !ok || cliErr.Code != ExitNotFound {
		t.Fatalf("expected not-found CLI error, got %v", err)
	}
}
