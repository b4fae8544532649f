package naming

import (
	"fmt"
	"strings"

	"tuneshelf/organize/metadata"
)

// placeholders recognized in file naming patterns.
var placeholders = map[string]bool{
	"artist": true,
	"title":  true,
	"album":  true,
	"genre":  true,
	"track":  true,
}

// PatternError reports a naming pattern referencing an unrecognized
// placeholder. It indicates a configuration fault that will recur for
// every file, so callers should surface it instead of skipping the file.
type PatternError struct {
	Pattern     string
	Placeholder string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("naming pattern %q references unknown placeholder {%s}", e.Pattern, e.Placeholder)
}

// ValidatePattern checks a naming pattern without rendering it.
func ValidatePattern(pattern string) error {
	_, err := expand(pattern, nil)
	return err
}

// Synthesize renders the naming pattern for a track. The artist, title,
// and album values are cleaned for filesystem safety before substitution.
// The result carries no extension; callers append the source file's
// extension unchanged.
func Synthesize(t metadata.Track, pattern string) (string, error) {
	values := map[string]string{
		"artist": Clean(t.Artist),
		"title":  Clean(t.Title),
		"album":  Clean(t.Album),
		"genre":  t.Genre,
		"track":  t.TrackNumber,
	}
	return expand(pattern, values)
}

// Clean strips characters that are illegal in filenames on common
// platforms, collapses newlines to spaces, and trims. An empty result
// becomes "Unknown".
func Clean(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		case '\n', '\r':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return "Unknown"
	}
	return cleaned
}

// expand substitutes {placeholder} tokens with values. An unknown or
// unterminated placeholder is a PatternError.
func expand(pattern string, values map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] != '{' {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		end := strings.IndexByte(pattern[i:], '}')
		if end < 0 {
			return "", &PatternError{Pattern: pattern, Placeholder: pattern[i+1:]}
		}
		key := pattern[i+1 : i+end]
		if !placeholders[key] {
			return "", &PatternError{Pattern: pattern, Placeholder: key}
		}
		b.WriteString(values[key])
		i += end + 1
	}
	return b.String(), nil
}
