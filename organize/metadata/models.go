package metadata

// Fallback values substituted when a tag is absent or unreadable.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	UnknownGenre  = "Unknown"
)

// Track is the normalized metadata record for one audio file. Every field
// has a defined fallback; a Track produced by the extractor is always
// complete. SourcePath points at the original file location and is only
// valid until the file is moved.
type Track struct {
	Title       string
	Artist      string
	Album       string
	Genre       string
	Tempo       int // beats per minute, 0 when unknown
	Date        string
	TrackNumber string
	SourcePath  string
}
