package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestExtractMissingFile(t *testing.T) {
	e := NewExtractor(zerolog.Nop())
	track := e.Extract(filepath.Join(t.TempDir(), "gone.mp3"))

	if track.Title != "gone" {
		t.Errorf("Title = %q, want filename stem %q", track.Title, "gone")
	}
	assertFallback(t, track)
}

func TestExtractUnreadableTags(t *testing.T) {
	e := NewExtractor(zerolog.Nop())

	// Not a real audio container in any supported format.
	for _, name := range []string{"noise.mp3", "noise.flac", "noise.wav"} {
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte("this is not audio"), 0644); err != nil {
			t.Fatal(err)
		}

		track := e.Extract(path)
		if track.Title != "noise" {
			t.Errorf("%s: Title = %q, want %q", name, track.Title, "noise")
		}
		assertFallback(t, track)
	}
}

// Every field of a fallback record must be populated; extraction never
// yields a partial record.
func assertFallback(t *testing.T, track Track) {
	t.Helper()
	if track.Artist != UnknownArtist {
		t.Errorf("Artist = %q, want %q", track.Artist, UnknownArtist)
	}
	if track.Album != UnknownAlbum {
		t.Errorf("Album = %q, want %q", track.Album, UnknownAlbum)
	}
	if track.Genre != UnknownGenre {
		t.Errorf("Genre = %q, want %q", track.Genre, UnknownGenre)
	}
	if track.Tempo != 0 {
		t.Errorf("Tempo = %d, want 0", track.Tempo)
	}
	if track.Date != "" || track.TrackNumber != "" {
		t.Errorf("Date/TrackNumber = %q/%q, want empty", track.Date, track.TrackNumber)
	}
	if track.SourcePath == "" {
		t.Error("SourcePath must be set")
	}
}

func TestParseTempo(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"120", 120},
		{"128.7", 128},
		{" 90 ", 90},
		{"0", 0},
		{"-5", 0},
		{"fast", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ParseTempo(tt.in); got != tt.want {
			t.Errorf("ParseTempo(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFallbackStemStripsOnlyExtension(t *testing.T) {
	track := Fallback("/music/T.N.T.mp3")
	if track.Title != "T.N.T" {
		t.Errorf("Title = %q, want %q", track.Title, "T.N.T")
	}
}
