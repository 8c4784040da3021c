package mb

// TrackInfo is a single search hit as exposed over the protocol.
type TrackInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	URL      string `json:"url"`
	PicURL   string `json:"pic,omitempty"`
	LyricURL string `json:"lrc,omitempty"`
}

// SearchBody is the payload for music.search.
type SearchBody struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchReply is the reply body for music.search.
type SearchReply struct {
	Query   string      `json:"query"`
	Results []TrackInfo `json:"results"`
	Text    string      `json:"text"`
}

// ResolveBody is the payload for music.resolve. Both id and song_id are
// accepted because agent callers are inconsistent about the parameter name.
type ResolveBody struct {
	ID       string `json:"id,omitempty"`
	SongID   string `json:"song_id,omitempty"`
	SongName string `json:"song_name,omitempty"`
	Artist   string `json:"artist,omitempty"`
	URL      string `json:"url,omitempty"`
	LyricURL string `json:"lrc,omitempty"`
	Lyric    string `json:"lyric,omitempty"`
}

// ResolveReply is the reply body for music.resolve. NextArguments is the
// exact argument set for the downstream playback tool: url, title, artist
// and exactly one of lyric_url / lyric.
type ResolveReply struct {
	SongName      string            `json:"song_name"`
	Artist        string            `json:"artist"`
	FinalURL      string            `json:"final_url"`
	LyricURL      string            `json:"lyric_url"`
	HasLyric      bool              `json:"has_lyric"`
	NextTool      string            `json:"next_tool"`
	NextArguments map[string]string `json:"next_arguments"`
}

// PlaylistAddBody is the payload for playlist.add.
type PlaylistAddBody struct {
	SongID   string `json:"song_id"`
	SongName string `json:"song_name,omitempty"`
	Artist   string `json:"artist,omitempty"`
	URL      string `json:"url,omitempty"`
}

// PlaylistSong is one playlist entry as exposed over the protocol.
type PlaylistSong struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URL    string `json:"url,omitempty"`
}

// PlaylistGetReply is the reply body for playlist.get.
type PlaylistGetReply struct {
	Songs  []PlaylistSong `json:"songs"`
	Status string         `json:"status"`
}

// StatusReply is the reply body for the simple state-mutating tools.
type StatusReply struct {
	Status string `json:"status"`
}

// EventResolveProgress is the event type for resolution progress.
const EventResolveProgress = "resolve.progress"

// NextToolPlayURL names the downstream playback tool an agent should call
// after a successful resolve.
const NextToolPlayURL = "self.music.play_url"
