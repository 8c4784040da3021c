package core

import (
	"context"
	"encoding/json"

	"github.com/mikey-austin/music_bridge/internal/ports"
	"github.com/mikey-austin/music_bridge/pkg/mb"
)

// Service orchestrates mb CLI use cases against a music node.
type Service struct {
	Broker   ports.Broker
	Resolver Resolver
	Clock    ports.Clock
	IDGen    ports.IDGen
	Config   Config
}

// ListNodes returns presence entries with an optional kind filter.
func (s Service) ListNodes(ctx context.Context, kind string) (NodesResult, error) {
	nodes, err := s.Broker.ListPresence(ctx)
	if err != nil {
		return NodesResult{}, WrapError(ExitRuntime, "list nodes", err)
	}
	if kind != "" {
		nodes = filterPresenceByKind(nodes, kind)
	}
	return NodesResult{Nodes: nodes}, nil
}

// Search runs a music search on the selected node.
func (s Service) Search(ctx context.Context, selector, query string, limit int) (SearchResult, error) {
	node, err := s.Resolver.ResolveMusicNode(ctx, selector)
	if err != nil {
		return SearchResult{}, err
	}

	reply, err := s.send(ctx, node.NodeID, "music.search", mb.SearchBody{Query: query, Limit: limit})
	if err != nil {
		return SearchResult{}, err
	}

	var body mb.SearchReply
	if err := json.Unmarshal(reply.Body, &body); err != nil {
		return SearchResult{}, WrapError(ExitRuntime, "decode search reply", err)
	}
	return SearchResult{Node: node, Reply: body}, nil
}

// Resolve resolves a song reference into a playable URL on the selected
// node.
func (s Service) Resolve(ctx context.Context, selector string, body mb.ResolveBody) (ResolveResult, error) {
	node, err := s.Resolver.ResolveMusicNode(ctx, selector)
	if err != nil {
		return ResolveResult{}, err
	}

	reply, err := s.send(ctx, node.NodeID, "music.resolve", body)
	if err != nil {
		return ResolveResult{}, err
	}

	var out mb.ResolveReply
	if err := json.Unmarshal(reply.Body, &out); err != nil {
		return ResolveResult{}, WrapError(ExitRuntime, "decode resolve reply", err)
	}
	return ResolveResult{Node: node, Reply: out}, nil
}

// Stop marks playback stopped on the selected node.
func (s Service) Stop(ctx context.Context, selector string) (StatusResult, error) {
	return s.statusCommand(ctx, selector, "music.stop", struct{}{})
}

// PlaylistAdd appends a song to the node's playlist.
func (s Service) PlaylistAdd(ctx context.Context, selector string, body mb.PlaylistAddBody) (StatusResult, error) {
	return s.statusCommand(ctx, selector, "playlist.add", body)
}

// PlaylistGet returns the node's playlist and playback status.
func (s Service) PlaylistGet(ctx context.Context, selector string) (PlaylistResult, error) {
	node, err := s.Resolver.ResolveMusicNode(ctx, selector)
	if err != nil {
		return PlaylistResult{}, err
	}

	reply, err := s.send(ctx, node.NodeID, "playlist.get", struct{}{})
	if err != nil {
		return PlaylistResult{}, err
	}

	var body mb.PlaylistGetReply
	if err := json.Unmarshal(reply.Body, &body); err != nil {
		return PlaylistResult{}, WrapError(ExitRuntime, "decode playlist reply", err)
	}
	return PlaylistResult{Node: node, Reply: body}, nil
}

// PlaylistClear empties the node's playlist.
func (s Service) PlaylistClear(ctx context.Context, selector string) (StatusResult, error) {
	return s.statusCommand(ctx, selector, "playlist.clear", struct{}{})
}

// PlaylistNext advances the playlist selection.
func (s Service) PlaylistNext(ctx context.Context, selector string) (SongResult, error) {
	return s.songCommand(ctx, selector, "playlist.next")
}

// PlaylistPrev moves the playlist selection backwards.
func (s Service) PlaylistPrev(ctx context.Context, selector string) (SongResult, error) {
	return s.songCommand(ctx, selector, "playlist.prev")
}

// WatchProgress streams resolution progress events from a music node.
func (s Service) WatchProgress(ctx context.Context, selector string) (<-chan mb.Event, <-chan error, error) {
	node, err := s.Resolver.ResolveMusicNode(ctx, selector)
	if err != nil {
		return nil, nil, err
	}
	events, errs := s.Broker.WatchEvents(ctx, node.NodeID)
	return events, errs, nil
}

func (s Service) songCommand(ctx context.Context, selector, cmdType string) (SongResult, error) {
	node, err := s.Resolver.ResolveMusicNode(ctx, selector)
	if err != nil {
		return SongResult{}, err
	}

	reply, err := s.send(ctx, node.NodeID, cmdType, struct{}{})
	if err != nil {
		return SongResult{}, err
	}

	var song mb.PlaylistSong
	if err := json.Unmarshal(reply.Body, &song); err != nil {
		return SongResult{}, WrapError(ExitRuntime, "decode song reply", err)
	}
	return SongResult{Node: node, Song: song}, nil
}

func (s Service) statusCommand(ctx context.Context, selector, cmdType string, body any) (StatusResult, error) {
	node, err := s.Resolver.ResolveMusicNode(ctx, selector)
	if err != nil {
		return StatusResult{}, err
	}

	reply, err := s.send(ctx, node.NodeID, cmdType, body)
	if err != nil {
		return StatusResult{}, err
	}

	var status mb.StatusReply
	if err := json.Unmarshal(reply.Body, &status); err != nil {
		return StatusResult{}, WrapError(ExitRuntime, "decode status reply", err)
	}
	return StatusResult{Node: node, Status: status.Status}, nil
}

func (s Service) send(ctx context.Context, nodeID, cmdType string, body any) (mb.ReplyEnvelope, error) {
	cmd, err := mb.NewCommand(cmdType, body)
	if err != nil {
		return mb.ReplyEnvelope{}, WrapError(ExitRuntime, "build command", err)
	}
	cmd = s.decorateCommand(cmd)

	reply, err := s.Broker.PublishCommand(ctx, nodeID, cmd)
	if err != nil {
		return mb.ReplyEnvelope{}, WrapError(ExitRuntime, "publish command", err)
	}
	if reply.Err != nil {
		return mb.ReplyEnvelope{}, ErrorForReplyCode(reply.Err.Code, reply.Err.Message)
	}
	return reply, nil
}

func (s Service) decorateCommand(cmd mb.CommandEnvelope) mb.CommandEnvelope {
	cmd.ID = s.IDGen.NewID()
	cmd.TS = s.Clock.NowUnix()
	cmd.From = s.Config.Identity
	cmd.ReplyTo = s.Broker.ReplyTopic()
	return cmd
}
