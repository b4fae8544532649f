package metadata

import (
	"github.com/bogem/id3v2/v2"
)

// mp3Tempo reads the TBPM text frame from an MP3 file's ID3v2 tag.
// Returns 0 when the tag or frame is absent or unreadable.
func (e *Extractor) mp3Tempo(path string) int {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"TBPM"}})
	if err != nil {
		e.log.Debug().Str("file", path).Err(err).Msg("no ID3v2 tag, tempo unknown")
		return 0
	}
	defer t.Close()

	return ParseTempo(t.GetTextFrame("TBPM").Text)
}
