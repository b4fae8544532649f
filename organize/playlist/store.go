package playlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Store maintains append-only, deduplicating playlist files. Playlists
// are plain text, one absolute file path per line, UTF-8. The store never
// truncates or reorders an existing playlist.
type Store struct {
	backup   bool
	backedUp map[string]bool
	log      zerolog.Logger
}

// NewStore creates a store. When backup is set, each playlist is copied
// to a .bak sibling once per store lifetime before its first append.
func NewStore(backup bool, log zerolog.Logger) *Store {
	return &Store{
		backup:   backup,
		backedUp: make(map[string]bool),
		log:      log,
	}
}

// EnsureMembership appends absPath to the playlist unless it is already
// present. Parent directories are created as needed and the playlist file
// is created on first write. Calling twice with identical arguments
// leaves the file byte-identical to the first call.
func (s *Store) EnsureMembership(playlistPath, absPath string) (bool, error) {
	entries, err := readEntries(playlistPath)
	if err != nil {
		return false, fmt.Errorf("read playlist %s: %w", playlistPath, err)
	}
	if entries[absPath] {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(playlistPath), 0755); err != nil {
		return false, fmt.Errorf("create playlist directory for %s: %w", playlistPath, err)
	}

	if s.backup && !s.backedUp[playlistPath] {
		s.backedUp[playlistPath] = true
		if err := backupOnce(playlistPath); err != nil {
			s.log.Warn().Str("playlist", playlistPath).Err(err).Msg("playlist backup failed")
		}
	}

	f, err := os.OpenFile(playlistPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return false, fmt.Errorf("open playlist %s: %w", playlistPath, err)
	}
	if _, err := fmt.Fprintln(f, absPath); err != nil {
		f.Close()
		return false, fmt.Errorf("append to playlist %s: %w", playlistPath, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close playlist %s: %w", playlistPath, err)
	}
	return true, nil
}

// Discover returns the .m3u files directly under dir, sorted by name.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.m3u"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// CreateSamples touches an empty playlist file for each name that does
// not already exist under dir.
func CreateSamples(dir string, names []string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("create playlist %s: %w", path, err)
		}
		f.Close()
	}
	return nil
}

// readEntries loads the trimmed lines of a playlist into a membership
// set. A missing playlist is an empty set.
func readEntries(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, err
	}

	entries := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entries[line] = true
		}
	}
	return entries, scanner.Err()
}

// backupOnce copies an existing playlist to a .bak sibling. A missing
// playlist needs no backup.
func backupOnce(path string) error {
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer in.Close()

	out, err := os.Create(path + ".bak")
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
