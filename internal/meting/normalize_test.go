package meting

import "testing"

func TestNormalize(t *testing.T) {
	norm, err := NewNormalizer("https://api.example.com/meting/api")
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"https://cdn.example.com/a.mp3", "https://cdn.example.com/a.mp3"},
		{"http://cdn.example.com/a.mp3", "http://cdn.example.com/a.mp3"},
		{"//cdn.example.com/a.mp3", "https://cdn.example.com/a.mp3"},
		{"/track/42.mp3", "https://api.example.com/track/42.mp3"},
		{"track/42.mp3", "https://api.example.com/meting/track/42.mp3"},
	}
	for _, tc := range cases {
		if got := norm.Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeZeroValue(t *testing.T) {
	var norm Normalizer
	if got := norm.Normalize("/relative"); got != "/relative" {
		t.Fatalf("zero normalizer should pass input through, got %q", got)
	}
}
