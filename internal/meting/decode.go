package meting

import (
	"encoding/json"
	"strings"
)

// searchItem is one element of the upstream search response. Ids arrive
// as either JSON strings or bare numbers depending on the mirror.
type searchItem struct {
	RawID  json.RawMessage `json:"id"`
	Title  string          `json:"title"`
	Author string          `json:"author"`
	URL    string          `json:"url"`
	Pic    string          `json:"pic"`
	Lrc    string          `json:"lrc"`
}

func (s searchItem) id() string {
	return rawString(s.RawID)
}

func decodeSearchItems(body []byte) ([]searchItem, error) {
	var items []searchItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// decodePlayURL extracts a play URL from a 200 response body. Mirrors
// answer with a bare JSON string, a list of strings, a list of objects
// with a url field, or a single object. Anything unrecognized yields "".
func decodePlayURL(body []byte) string {
	raw := json.RawMessage(trimJSON(body))
	switch firstByte(raw) {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return strings.TrimSpace(s)
		}
	case '[':
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			first := list[0]
			if firstByte(first) == '"' {
				var s string
				if json.Unmarshal(first, &s) == nil {
					return strings.TrimSpace(s)
				}
				return ""
			}
			return urlField(first)
		}
	case '{':
		return urlField(raw)
	}
	return ""
}

// decodeLyric extracts lyric text from a 200 response body. A body that
// is not valid JSON is raw LRC text and is returned verbatim; otherwise
// the lyric is unwrapped from the same shapes decodePlayURL handles,
// under a lyric or lrc key. Valid JSON that fits none of those shapes
// (numbers, booleans, empty or mixed lists) also falls back to the raw
// trimmed body.
func decodeLyric(body []byte) string {
	trimmed := trimJSON(body)
	if !json.Valid(trimmed) {
		return strings.TrimSpace(string(body))
	}

	raw := json.RawMessage(trimmed)
	switch firstByte(raw) {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return strings.TrimSpace(s)
		}
	case '[':
		var list []json.RawMessage
		if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
			first := list[0]
			if firstByte(first) == '"' {
				var s string
				if json.Unmarshal(first, &s) == nil {
					return strings.TrimSpace(s)
				}
			}
			if firstByte(first) == '{' {
				return lyricField(first)
			}
		}
	case '{':
		return lyricField(raw)
	}
	return string(trimmed)
}

func urlField(raw json.RawMessage) string {
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return strings.TrimSpace(obj.URL)
	}
	return ""
}

func lyricField(raw json.RawMessage) string {
	var obj struct {
		Lyric string `json:"lyric"`
		Lrc   string `json:"lrc"`
	}
	if json.Unmarshal(raw, &obj) != nil {
		return ""
	}
	if obj.Lyric != "" {
		return strings.TrimSpace(obj.Lyric)
	}
	return strings.TrimSpace(obj.Lrc)
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if firstByte(raw) == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		return ""
	}
	// Bare number: the literal text is already the id.
	return strings.TrimSpace(string(raw))
}

func trimJSON(body []byte) []byte {
	return []byte(strings.TrimSpace(string(body)))
}

func firstByte(raw []byte) byte {
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}
