package musictool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/mikey-austin/music_bridge/internal/adapters/mqttserver"
	"github.com/mikey-austin/music_bridge/internal/meting"
	"github.com/mikey-austin/music_bridge/pkg/mb"
)

// Placeholder metadata when the agent supplies none and the cache has
// nothing better.
const (
	unknownSong   = "未知歌曲"
	unknownArtist = "未知歌手"
)

const defaultSearchLimit = 10

// Config configures the music tool module. Transport is injectable for
// tests; nil means the default HTTP transport.
type Config struct {
	NodeID         string
	TopicBase      string
	Identity       string
	APIBaseURL     string
	APIToken       string
	SignParam      string
	Server         string
	Timeout        time.Duration
	ResolveTimeout time.Duration
	Transport      http.RoundTripper
}

// Module exposes the music tool surface over MQTT: upstream search,
// track resolution and the session playback/playlist state.
type Module struct {
	log      *zap.Logger
	client   *mqttserver.Client
	config   Config
	cmdTopic string
	evtTopic string
	state    *State
	cache    *meting.Cache
	upstream *meting.Client
	resolver *meting.Resolver
}

// NewModule initializes the music tool module.
func NewModule(log *zap.Logger, client *mqttserver.Client, cfg Config) (*Module, error) {
	if strings.TrimSpace(cfg.NodeID) == "" {
		return nil, errors.New("music_tool node_id required")
	}
	if strings.TrimSpace(cfg.TopicBase) == "" {
		cfg.TopicBase = mb.BaseTopic
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ResolveTimeout == 0 {
		cfg.ResolveTimeout = 15 * time.Second
	}

	cache := meting.NewCache()
	upstream, err := meting.NewClient(log, meting.Config{
		BaseURL:   cfg.APIBaseURL,
		Server:    cfg.Server,
		Token:     cfg.APIToken,
		SignParam: cfg.SignParam,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	}, cache)
	if err != nil {
		return nil, err
	}

	redirects := meting.NewRedirectResolver(log, cfg.ResolveTimeout, cfg.Transport)

	return &Module{
		log:      log,
		client:   client,
		config:   cfg,
		cmdTopic: mb.TopicCommands(cfg.TopicBase, cfg.NodeID),
		evtTopic: mb.TopicEvents(cfg.TopicBase, cfg.NodeID),
		state:    NewState(),
		cache:    cache,
		upstream: upstream,
		resolver: meting.NewResolver(log, upstream, redirects, cache),
	}, nil
}

// Run starts the music tool module.
func (m *Module) Run(ctx context.Context) error {
	handler := func(_ paho.Client, msg paho.Message) {
		m.handleMessage(msg)
	}

	if err := m.client.Subscribe(m.cmdTopic, 1, handler); err != nil {
		return err
	}
	defer m.client.Unsubscribe(m.cmdTopic)

	if err := m.publishPresence(); err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func (m *Module) publishPresence() error {
	presence := mb.Presence{
		NodeID: m.config.NodeID,
		Kind:   "music_tool",
		Name:   "Music Tool",
		Caps: map[string]any{
			"commands": []string{
				"music.search", "music.resolve", "music.stop",
				"playlist.add", "playlist.get", "playlist.clear",
				"playlist.next", "playlist.prev",
			},
		},
		TS: time.Now().Unix(),
	}

	payload, err := json.Marshal(presence)
	if err != nil {
		return err
	}
	return m.client.Publish(mb.TopicPresence(m.config.TopicBase, m.config.NodeID), 1, true, payload)
}

func (m *Module) handleMessage(msg paho.Message) {
	var cmd mb.CommandEnvelope
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		m.log.Warn("invalid command", zap.Error(err))
		return
	}

	reply := m.dispatch(cmd)
	if cmd.ReplyTo == "" {
		return
	}
	payload, err := json.Marshal(reply)
	if err != nil {
		m.log.Error("marshal reply", zap.Error(err))
		return
	}
	if err := m.client.Publish(cmd.ReplyTo, 1, false, payload); err != nil {
		m.log.Error("publish reply", zap.Error(err))
	}
}

func (m *Module) dispatch(cmd mb.CommandEnvelope) mb.ReplyEnvelope {
	reply := mb.ReplyEnvelope{
		ID:   cmd.ID,
		Type: "ack",
		OK:   true,
		TS:   time.Now().Unix(),
	}

	switch cmd.Type {
	case "music.search":
		return m.musicSearch(cmd, reply)
	case "music.resolve":
		return m.musicResolve(cmd, reply)
	case "music.stop":
		return m.musicStop(cmd, reply)
	case "playlist.add":
		return m.playlistAdd(cmd, reply)
	case "playlist.get":
		return m.playlistGet(cmd, reply)
	case "playlist.clear":
		return m.playlistClear(cmd, reply)
	case "playlist.next":
		return m.playlistNext(cmd, reply)
	case "playlist.prev":
		return m.playlistPrev(cmd, reply)
	default:
		return errorReply(cmd, "INVALID", "unsupported command")
	}
}

func (m *Module) musicSearch(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	var body mb.SearchBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, "INVALID", "invalid body")
	}
	if strings.TrimSpace(body.Query) == "" {
		return errorReply(cmd, "INVALID", "query required")
	}
	limit := body.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	results := m.upstream.Search(context.Background(), body.Query, limit)

	out := mb.SearchReply{Query: body.Query, Results: make([]mb.TrackInfo, 0, len(results))}
	var lines []string
	for i, r := range results {
		name := r.Name
		if name == "" {
			name = unknownSong
		}
		artist := r.Artist
		if artist == "" {
			artist = unknownArtist
		}
		out.Results = append(out.Results, mb.TrackInfo{
			ID:       r.ID,
			Name:     name,
			Artist:   artist,
			URL:      r.URL,
			PicURL:   r.PicURL,
			LyricURL: r.LyricURL,
		})
		lines = append(lines, fmt.Sprintf("%d. %s - %s (id: %s)", i+1, name, artist, r.ID))
	}
	if len(lines) == 0 {
		out.Text = fmt.Sprintf("no songs found for %q", body.Query)
	} else {
		out.Text = strings.Join(lines, "\n")
	}

	payload, _ := json.Marshal(out)
	reply.Body = payload
	return reply
}

func (m *Module) musicResolve(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	var body mb.ResolveBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, "INVALID", "invalid body")
	}

	id := strings.TrimSpace(body.SongID)
	if id == "" {
		id = strings.TrimSpace(body.ID)
	}
	name := strings.TrimSpace(body.SongName)
	artist := strings.TrimSpace(body.Artist)
	if cached, ok := m.cache.Get(id); ok {
		if name == "" {
			name = cached.Name
		}
		if artist == "" {
			artist = cached.Artist
		}
	}

	ref := meting.SongReference{
		ID:        id,
		URL:       body.URL,
		Name:      name,
		Artist:    artist,
		LyricURL:  body.LyricURL,
		LyricText: body.Lyric,
	}
	track, err := m.resolver.Resolve(context.Background(), ref, m.publishProgress)
	if err != nil {
		switch {
		case errors.Is(err, meting.ErrInvalidReference):
			return errorReply(cmd, "INVALID", "song id or url required")
		case errors.Is(err, meting.ErrTokenRequired):
			return errorReply(cmd, "CONFIG", "music api token not configured")
		case errors.Is(err, meting.ErrLookupFailed):
			return errorReply(cmd, "NOT_FOUND", "no playable url for song")
		default:
			return errorReply(cmd, "UPSTREAM", err.Error())
		}
	}

	if name == "" {
		name = unknownSong
	}
	if artist == "" {
		artist = unknownArtist
	}

	m.state.SetCurrent(Song{
		ID:       id,
		Name:     name,
		Artist:   artist,
		URL:      track.FinalURL,
		LyricURL: track.LyricURL,
	})

	nextArgs := map[string]string{
		"url":    track.FinalURL,
		"title":  name,
		"artist": artist,
	}
	if track.LyricURL != "" {
		nextArgs["lyric_url"] = track.LyricURL
	} else if track.LyricText != "" {
		nextArgs["lyric"] = track.LyricText
	}

	out := mb.ResolveReply{
		SongName:      name,
		Artist:        artist,
		FinalURL:      track.FinalURL,
		LyricURL:      track.LyricURL,
		HasLyric:      track.LyricURL != "" || track.LyricText != "",
		NextTool:      mb.NextToolPlayURL,
		NextArguments: nextArgs,
	}
	payload, _ := json.Marshal(out)
	reply.Body = payload
	return reply
}

func (m *Module) musicStop(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	m.state.Stop()
	payload, _ := json.Marshal(mb.StatusReply{Status: "stopped"})
	reply.Body = payload
	return reply
}

func (m *Module) playlistAdd(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	var body mb.PlaylistAddBody
	if err := json.Unmarshal(cmd.Body, &body); err != nil {
		return errorReply(cmd, "INVALID", "invalid body")
	}
	id := strings.TrimSpace(body.SongID)
	if id == "" && strings.TrimSpace(body.URL) == "" {
		return errorReply(cmd, "INVALID", "song_id or url required")
	}

	name := strings.TrimSpace(body.SongName)
	artist := strings.TrimSpace(body.Artist)
	if cached, ok := m.cache.Get(id); ok {
		if name == "" {
			name = cached.Name
		}
		if artist == "" {
			artist = cached.Artist
		}
	}
	if name == "" {
		name = unknownSong
	}
	if artist == "" {
		artist = unknownArtist
	}

	length := m.state.Add(Song{ID: id, Name: name, Artist: artist, URL: body.URL})
	payload, _ := json.Marshal(mb.StatusReply{
		Status: fmt.Sprintf("added %s - %s (playlist length %d)", name, artist, length),
	})
	reply.Body = payload
	return reply
}

func (m *Module) playlistGet(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	snapshot := m.state.Snapshot()

	out := mb.PlaylistGetReply{Songs: make([]mb.PlaylistSong, 0, snapshot.PlaylistLen)}
	for _, song := range m.state.Songs() {
		out.Songs = append(out.Songs, mb.PlaylistSong{
			ID:     song.ID,
			Name:   song.Name,
			Artist: song.Artist,
			URL:    song.URL,
		})
	}
	out.Status = "stopped"
	if snapshot.IsPlaying && snapshot.Current != nil {
		out.Status = fmt.Sprintf("playing: %s - %s", snapshot.Current.Name, snapshot.Current.Artist)
	}

	payload, _ := json.Marshal(out)
	reply.Body = payload
	return reply
}

func (m *Module) playlistClear(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	m.state.Clear()
	payload, _ := json.Marshal(mb.StatusReply{Status: "playlist cleared"})
	reply.Body = payload
	return reply
}

func (m *Module) playlistNext(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	song, ok := m.state.Next()
	if !ok {
		return errorReply(cmd, "NOT_FOUND", "playlist is empty")
	}
	payload, _ := json.Marshal(mb.PlaylistSong{ID: song.ID, Name: song.Name, Artist: song.Artist, URL: song.URL})
	reply.Body = payload
	return reply
}

func (m *Module) playlistPrev(cmd mb.CommandEnvelope, reply mb.ReplyEnvelope) mb.ReplyEnvelope {
	song, ok := m.state.Prev()
	if !ok {
		return errorReply(cmd, "NOT_FOUND", "playlist is empty")
	}
	payload, _ := json.Marshal(mb.PlaylistSong{ID: song.ID, Name: song.Name, Artist: song.Artist, URL: song.URL})
	reply.Body = payload
	return reply
}

// publishProgress emits a resolve.progress event on the node event
// topic. Progress is advisory; publish failures are logged and dropped.
func (m *Module) publishProgress(percent int, message string) {
	if m.client == nil {
		return
	}
	evt := mb.Event{
		Type:    mb.EventResolveProgress,
		TS:      time.Now().Unix(),
		Percent: percent,
		Message: message,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := m.client.Publish(m.evtTopic, 0, false, payload); err != nil {
		m.log.Debug("publish progress event", zap.Error(err))
	}
}

func errorReply(cmd mb.CommandEnvelope, code string, message string) mb.ReplyEnvelope {
	return mb.ReplyEnvelope{
		ID:   cmd.ID,
		Type: "error",
		OK:   false,
		TS:   time.Now().Unix(),
		Err: &mb.ReplyError{
			Code:    code,
			Message: message,
		},
	}
}
