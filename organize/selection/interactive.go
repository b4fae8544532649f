package selection

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"tuneshelf/organize/metadata"
	"tuneshelf/organize/playlist"
)

// Interactive prompts for an explicit playlist choice per track. The
// answer is a comma-separated list of indices into the discovered
// playlist list, "a" to delegate to the automatic strategy, or "n" (or an
// empty line) for none. Unparseable input is reported and treated as
// none; it never aborts the run.
type Interactive struct {
	Dir  string
	Auto *Auto
	In   io.Reader
	Out  io.Writer

	reader *bufio.Reader
}

// Select implements Strategy.
func (s *Interactive) Select(track metadata.Track, trackPath string) ([]string, error) {
	available, err := playlist.Discover(s.Dir)
	if err != nil {
		return nil, err
	}

	if len(available) == 0 {
		available, err = s.offerSamples()
		if err != nil || len(available) == 0 {
			return nil, err
		}
	}

	fmt.Fprintf(s.Out, "\nOrganized: %s - %s\n", track.Artist, track.Title)
	fmt.Fprintln(s.Out, "Available playlists:")
	for i, p := range available {
		fmt.Fprintf(s.Out, "  %d. %s\n", i+1, filepath.Base(p))
	}
	fmt.Fprintln(s.Out, "  a. add to all matching smart playlists")
	fmt.Fprintln(s.Out, "  n. don't add to any playlists")
	fmt.Fprint(s.Out, "Select playlists (comma-separated numbers, 'a' for auto, 'n' for none): ")

	answer, err := s.readLine()
	if err != nil {
		return nil, err
	}

	switch answer {
	case "a":
		return s.Auto.Select(track, trackPath)
	case "n", "":
		return nil, nil
	}

	var selected []string
	for _, field := range strings.Split(answer, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			fmt.Fprintln(s.Out, "Invalid input, skipping playlist updates.")
			return nil, nil
		}
		if idx >= 1 && idx <= len(available) {
			selected = append(selected, available[idx-1])
		}
	}
	return selected, nil
}

// offerSamples is shown when the playlists directory has no .m3u files
// yet: it offers to create one empty playlist per configured smart
// playlist and re-discovers.
func (s *Interactive) offerSamples() ([]string, error) {
	fmt.Fprintln(s.Out, "No playlists found in", s.Dir)
	fmt.Fprint(s.Out, "Create the configured smart playlists? (y/N): ")

	answer, err := s.readLine()
	if err != nil || answer != "y" {
		return nil, err
	}

	names := make([]string, 0, len(s.Auto.Playlists))
	for _, sp := range s.Auto.Playlists {
		names = append(names, sp.Name)
	}
	if err := playlist.CreateSamples(s.Dir, names); err != nil {
		return nil, err
	}
	return playlist.Discover(s.Dir)
}

func (s *Interactive) readLine() (string, error) {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}
	line, err := s.reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
