package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mikey-austin/music_bridge/internal/ports"
	"github.com/mikey-austin/music_bridge/pkg/mb"
)

// Resolver resolves selectors to node presence.
type Resolver struct {
	Presence ports.Broker
	Config   Config
}

// ResolveMusicNode resolves a music tool selector using config defaults.
// An empty selector falls back to the configured default, and failing
// that, to the only music node present.
func (r Resolver) ResolveMusicNode(ctx context.Context, selector string) (mb.Presence, error) {
	if selector == "" {
		selector = r.Config.Defaults.MusicNode
	}

	presence, err := r.Presence.ListPresence(ctx)
	if err != nil {
		return mb.Presence{}, WrapError(ExitRuntime, "list presence", err)
	}

	filtered := filterPresenceByKind(presence, "music_tool")
	if selector == "" {
		if len(filtered) == 1 {
			return filtered[0], nil
		}
		return mb.Presence{}, &CLIError{Code: ExitUsage, Msg: "selector required"}
	}
	return resolveSelector(selector, filtered, r.Config.Aliases)
}

func filterPresenceByKind(presence []mb.Presence, kind string) []mb.Presence {
	if kind == "" {
		return presence
	}
	out := make([]mb.Presence, 0, len(presence))
	for _, p := range presence {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

func resolveSelector(selector string, presence []mb.Presence, aliases map[string]string) (mb.Presence, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return mb.Presence{}, &CLIError{Code: ExitUsage, Msg: "selector required"}
	}

	if strings.HasPrefix(selector, "mb:") {
		return resolveExact(selector, presence)
	}

	if alias, ok := aliases[selector]; ok {
		if strings.HasPrefix(alias, "mb:") {
			return resolveExact(alias, presence)
		}
		selector = alias
	}

	matches := make([]mb.Presence, 0)
	for _, p := range presence {
		if strings.EqualFold(p.Name, selector) || strings.EqualFold(p.NodeID, selector) {
			matches = append(matches, p)
		}
	}

	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) == 0 {
		return mb.Presence{}, &CLIError{Code: ExitNotFound, Msg: fmt.Sprintf("no match for %q", selector)}
	}
	return mb.Presence{}, &CLIError{Code: ExitUsage, Msg: fmt.Sprintf("ambiguous selector %q: %s", selector, suggestionList(matches))}
}

func resolveExact(nodeID string, presence []mb.Presence) (mb.Presence, error) {
	for _, p := range presence {
		if p.NodeID == nodeID {
			return p, nil
		}
	}
	return mb.Presence{}, &CLIError{Code: ExitNotFound, Msg: fmt.Sprintf("node not found: %s", nodeID)}
}

func suggestionList(matches []mb.Presence) string {
	names := make([]string, 0, len(matches))
	for _, p := range matches {
		names = append(names, fmt.Sprintf("%s (%s)", p.Name, p.NodeID))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
