package musictool

import "sync"

// Song identifies one track in the playback state. The URL is whatever
// reference the agent handed us, not necessarily a resolved CDN link.
type Song struct {
	ID       string
	Name     string
	Artist   string
	URL      string
	LyricURL string
}

// Status is a snapshot of the playback state.
type Status struct {
	Current     *Song
	IsPlaying   bool
	PlaylistLen int
	Volume      int
}

// State holds the in-memory playback and playlist state for one node.
// There is no persistence: the state describes the current agent session
// and dies with the process.
type State struct {
	mu       sync.Mutex
	current  *Song
	playlist []Song
	playing  bool
	volume   int
}

// NewState returns a fresh stopped state.
func NewState() *State {
	return &State{volume: 50}
}

// SetCurrent records song as the current track. Playback stays marked
// stopped: the device fetches the resolved URL on its own schedule, so
// a fresh resolve never claims to be playing.
func (s *State) SetCurrent(song Song) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &song
	s.playing = false
}

// Stop flips the playing flag off and clears the current track.
func (s *State) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.current = nil
}

// Current returns the now-playing track, if any.
func (s *State) Current() (Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Song{}, false
	}
	return *s.current, true
}

// Add appends a song to the playlist.
func (s *State) Add(song Song) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = append(s.playlist, song)
	return len(s.playlist)
}

// Songs returns a copy of the playlist.
func (s *State) Songs() []Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Song, len(s.playlist))
	copy(out, s.playlist)
	return out
}

// Clear empties the playlist. The current song is untouched.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist = nil
}

// Next advances the selection to the song after the current one,
// wrapping at the end, and marks playback started. When the current
// song is not in the playlist the selection starts from the first
// entry. Returns false on an empty playlist.
func (s *State) Next() (Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.playlist) == 0 {
		return Song{}, false
	}

	idx := 0
	if i := s.currentIndex(); i >= 0 {
		idx = (i + 1) % len(s.playlist)
	}
	song := s.playlist[idx]
	s.current = &song
	s.playing = true
	return song, true
}

// Prev moves the selection to the song before the current one, wrapping
// at the start, and marks playback started. When the current song is
// not in the playlist the selection starts from the last entry. Returns
// false on an empty playlist.
func (s *State) Prev() (Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.playlist) == 0 {
		return Song{}, false
	}

	idx := len(s.playlist) - 1
	if i := s.currentIndex(); i >= 0 {
		idx = (i - 1 + len(s.playlist)) % len(s.playlist)
	}
	song := s.playlist[idx]
	s.current = &song
	s.playing = true
	return song, true
}

// Snapshot returns the current status.
func (s *State) Snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := Status{
		IsPlaying:   s.playing,
		PlaylistLen: len(s.playlist),
		Volume:      s.volume,
	}
	if s.current != nil {
		song := *s.current
		status.Current = &song
	}
	return status
}

// caller must hold s.mu
func (s *State) currentIndex() int {
	if s.current == nil {
		return -1
	}
	for i, song := range s.playlist {
		if song.ID != "" && song.ID == s.current.ID {
			return i
		}
	}
	return -1
}
