package core

import "github.com/mikey-austin/music_bridge/pkg/mb"

// NodesResult holds a list of presence records.
type NodesResult struct {
	Nodes []mb.Presence
}

// SearchResult holds search hits from a music node.
type SearchResult struct {
	Node  mb.Presence
	Reply mb.SearchReply
}

// ResolveResult holds a resolved track.
type ResolveResult struct {
	Node  mb.Presence
	Reply mb.ResolveReply
}

// PlaylistResult holds a playlist listing.
type PlaylistResult struct {
	Node  mb.Presence
	Reply mb.PlaylistGetReply
}

// SongResult holds a single playlist selection.
type SongResult struct {
	Node mb.Presence
	Song mb.PlaylistSong
}

// StatusResult holds a status message from a state-mutating tool.
type StatusResult struct {
	Node   mb.Presence
	Status string
}

// RawResult holds arbitrary JSON data for output.
type RawResult struct {
	Data any
}
