package metadata

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog"
)

// Extractor reads tag metadata from audio files. It never fails outward:
// any read error, missing tag container, or unsupported format yields the
// fallback record instead.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor creates an extractor. Absorbed read errors are logged at
// debug level.
func NewExtractor(log zerolog.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract reads tags from the file at path and normalizes them into a
// Track. Files the tag reader cannot handle produce Fallback(path).
func (e *Extractor) Extract(path string) Track {
	track := Fallback(path)

	f, err := os.Open(path)
	if err != nil {
		e.log.Debug().Str("file", path).Err(err).Msg("metadata read skipped")
		return track
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		e.log.Debug().Str("file", path).Err(err).Msg("no readable tags, using fallback")
		return track
	}

	if v := strings.TrimSpace(m.Title()); v != "" {
		track.Title = v
	}
	if v := strings.TrimSpace(m.Artist()); v != "" {
		track.Artist = v
	}
	if v := strings.TrimSpace(m.Album()); v != "" {
		track.Album = v
	}
	if v := strings.TrimSpace(m.Genre()); v != "" {
		track.Genre = v
	}
	if y := m.Year(); y > 0 {
		track.Date = strconv.Itoa(y)
	}
	if n, _ := m.Track(); n > 0 {
		track.TrackNumber = strconv.Itoa(n)
	}
	track.Tempo = e.tempo(path, m)

	return track
}

// Fallback returns the record used when a file has no readable tags:
// the filename stem as title, Unknown* sentinels, and tempo 0.
func Fallback(path string) Track {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return Track{
		Title:      stem,
		Artist:     UnknownArtist,
		Album:      UnknownAlbum,
		Genre:      UnknownGenre,
		SourcePath: path,
	}
}

// tempo looks for a BPM value in the raw tag frames, falling back to the
// ID3v2 TBPM frame for MP3 files (the generic reader does not expose it).
func (e *Extractor) tempo(path string, m tag.Metadata) int {
	for key, v := range m.Raw() {
		switch strings.ToLower(key) {
		case "tbpm", "bpm", "tempo":
			if t := ParseTempo(rawString(v)); t > 0 {
				return t
			}
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		return e.mp3Tempo(path)
	}
	return 0
}

// ParseTempo converts a BPM tag value to a whole number of beats per
// minute. Fractional values truncate; anything unparseable is 0.
func ParseTempo(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}

// rawString reduces a raw frame value to a single string. Multi-valued
// tags reduce to their first element.
func rawString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case int:
		return strconv.Itoa(t)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
