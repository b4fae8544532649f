package organize

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Scan walks each source directory and returns candidate audio files
// whose extension matches formats, case-insensitively. Missing or
// unreadable directories are logged and skipped, never fatal. The result
// is sorted per source directory so repeated runs visit files in a
// stable order.
func Scan(sources []string, formats []string, log zerolog.Logger) []string {
	extensions := make(map[string]bool, len(formats))
	for _, f := range formats {
		ext := strings.ToLower(strings.TrimSpace(f))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	var candidates []string
	for _, src := range sources {
		if _, err := os.Stat(src); err != nil {
			log.Warn().Str("dir", src).Err(err).Msg("source directory skipped")
			continue
		}

		var found []string
		err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("scan entry skipped")
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if extensions[strings.ToLower(filepath.Ext(path))] {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			log.Warn().Str("dir", src).Err(err).Msg("scan aborted for source directory")
		}
		sort.Strings(found)
		candidates = append(candidates, found...)
	}
	return candidates
}
