package selection

import (
	"path/filepath"

	"tuneshelf/organize/metadata"
	"tuneshelf/organize/rules"
)

// Strategy decides which playlists a freshly shelved track belongs to.
// Implementations return playlist file paths; the caller records the
// membership. The organize pipeline depends only on this capability, not
// on an execution-mode flag.
type Strategy interface {
	Select(track metadata.Track, trackPath string) ([]string, error)
}

// Auto evaluates every configured smart playlist rule against the track,
// returning the matching playlist paths in configuration order.
type Auto struct {
	Playlists rules.Set
	Dir       string
}

// Select implements Strategy.
func (a *Auto) Select(track metadata.Track, _ string) ([]string, error) {
	var matched []string
	for _, sp := range a.Playlists {
		if sp.Rule.Matches(track) {
			matched = append(matched, filepath.Join(a.Dir, sp.Name))
		}
	}
	return matched, nil
}

// None selects nothing. Used when the user declines playlist updates.
type None struct{}

// Select implements Strategy.
func (None) Select(metadata.Track, string) ([]string, error) {
	return nil, nil
}
