package platform

import (
	"strings"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected ID
		ok       bool
	}{
		{
			name:     "Deezer track",
			url:      "https://www.deezer.com/track/65760860",
			expected: Deezer,
			ok:       true,
		},
		{
			name:     "Deezer album",
			url:      "https://deezer.com/album/302127",
			expected: Deezer,
			ok:       true,
		},
		{
			name:     "Deezer track with locale prefix",
			url:      "https://www.deezer.com/en/track/65760860",
			expected: Deezer,
			ok:       true,
		},
		{
			name:     "Google Music track",
			url:      "https://play.google.com/music/m/Txsffypukmmeg3iwl3w5a5s3vhy",
			expected: GoogleMusic,
			ok:       true,
		},
		{
			name:     "SoundCloud track",
			url:      "https://soundcloud.com/rick-astley-official/never-gonna-give-you-up-4",
			expected: SoundCloud,
			ok:       true,
		},
		{
			name:     "SoundCloud with www",
			url:      "https://www.soundcloud.com/artist/track",
			expected: SoundCloud,
			ok:       true,
		},
		{
			name: "Unsupported platform",
			url:  "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC",
			ok:   false,
		},
		{
			name: "Deezer without track or album path",
			url:  "https://www.deezer.com/profile/123",
			ok:   false,
		},
		{
			name: "Not a URL",
			url:  "deezer track please",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Match(tt.url)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.url, ok, tt.ok)
			}
			if ok && p.ID != tt.expected {
				t.Errorf("Match(%q) = %q, want %q", tt.url, p.ID, tt.expected)
			}
		})
	}
}

func TestAllIsPriorityOrdered(t *testing.T) {
	platforms := All()

	if len(platforms) != 3 {
		t.Fatalf("All() returned %d platforms, want 3", len(platforms))
	}

	for i, p := range platforms {
		if p.Priority != i {
			t.Errorf("All()[%d].Priority = %d, want %d", i, p.Priority, i)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	platforms := All()
	platforms[0].Label = "mutated"

	if All()[0].Label == "mutated" {
		t.Error("All() exposed the internal registry slice")
	}
}

func TestByKey(t *testing.T) {
	p, ok := ByKey("google")
	if !ok {
		t.Fatal("ByKey(google) not found")
	}
	if p.ID != GoogleMusic {
		t.Errorf("ByKey(google) = %q, want %q", p.ID, GoogleMusic)
	}

	if _, ok := ByKey("spotify"); ok {
		t.Error("ByKey(spotify) should not be found")
	}
}

func TestLabels(t *testing.T) {
	labels := strings.Join(Labels(), " | ")
	expected := "Deezer | Google Music | SoundCloud"
	if labels != expected {
		t.Errorf("Labels() joined = %q, want %q", labels, expected)
	}
}
