package organize

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"tuneshelf/config"
	"tuneshelf/organize/rules"
	"tuneshelf/organize/selection"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.MusicRoot = t.TempDir()
	cfg.AllSongsDir = "All Songs"
	cfg.PlaylistsDir = "playlists"
	cfg.SmartPlaylists = rules.Set{
		{Name: "Chill.m3u", Rule: rules.Rule{Predicates: []rules.Predicate{{Kind: rules.KindTempoMax, Tempo: 90}}}},
		{Name: "Rock.m3u", Rule: rules.Rule{Predicates: []rules.Predicate{{Kind: rules.KindGenreAny, Genres: []string{"rock"}}}}},
	}
	return cfg
}

func autoStrategy(cfg *config.Config) selection.Strategy {
	return &selection.Auto{Playlists: cfg.SmartPlaylists, Dir: cfg.PlaylistsPath()}
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("untagged pseudo-audio"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func libraryFiles(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(cfg.LibraryDir(), "*.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

// Two files with identical synthesized names must both survive, neither
// overwritten.
func TestRunResolvesDestinationCollisions(t *testing.T) {
	cfg := testConfig(t)
	src := t.TempDir()
	a := writeSource(t, filepath.Join(src, "one"), "song.mp3")
	b := writeSource(t, filepath.Join(src, "two"), "song.mp3")

	org := New(cfg, autoStrategy(cfg), nil, zerolog.Nop())
	summary, err := org.Run(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Moved != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 moved, 0 failed", summary)
	}

	got := libraryFiles(t, cfg)
	if len(got) != 2 {
		t.Fatalf("library has %d files, want 2: %v", len(got), got)
	}
	names := []string{filepath.Base(got[0]), filepath.Base(got[1])}
	wantFirst, wantSecond := "Unknown Artist - song.mp3", "Unknown Artist - song (1).mp3"
	if !(contains(names, wantFirst) && contains(names, wantSecond)) {
		t.Errorf("library files = %v, want %q and %q", names, wantFirst, wantSecond)
	}

	for _, source := range []string{a, b} {
		if _, err := os.Stat(source); !os.IsNotExist(err) {
			t.Errorf("source %s still present after organize", source)
		}
	}
}

func TestRunClassifiesIntoSmartPlaylists(t *testing.T) {
	cfg := testConfig(t)
	src := t.TempDir()
	// Untagged file: fallback metadata, tempo 0, genre "Unknown". It must
	// land in Chill (max_tempo passes for unknown tempo) but not Rock.
	a := writeSource(t, src, "ambient.mp3")

	org := New(cfg, autoStrategy(cfg), nil, zerolog.Nop())
	summary, err := org.Run(context.Background(), []string{a})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.PlaylistAdds != 1 {
		t.Errorf("PlaylistAdds = %d, want 1", summary.PlaylistAdds)
	}

	chill := filepath.Join(cfg.PlaylistsPath(), "Chill.m3u")
	data, err := os.ReadFile(chill)
	if err != nil {
		t.Fatalf("Chill.m3u not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("Chill.m3u has %d entries, want 1: %q", len(lines), data)
	}
	if !filepath.IsAbs(lines[0]) {
		t.Errorf("playlist entry %q must be an absolute path", lines[0])
	}
	if _, err := os.Stat(lines[0]); err != nil {
		t.Errorf("playlist entry does not point at the shelved file: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.PlaylistsPath(), "Rock.m3u")); !os.IsNotExist(err) {
		t.Error("Rock.m3u should not have been created for a non-matching track")
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	cfg := testConfig(t)
	src := t.TempDir()
	good := writeSource(t, src, "keeper.mp3")
	missing := filepath.Join(src, "vanished.mp3")

	org := New(cfg, autoStrategy(cfg), nil, zerolog.Nop())
	summary, err := org.Run(context.Background(), []string{missing, good})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if summary.Moved != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 1 moved, 1 failed", summary)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Path != missing {
		t.Errorf("failures = %+v, want the missing file recorded", summary.Failures)
	}
	if got := libraryFiles(t, cfg); len(got) != 1 {
		t.Errorf("library has %d files, want the good file moved", len(got))
	}
}

func TestRunRejectsBadPatternBeforeMoving(t *testing.T) {
	cfg := testConfig(t)
	cfg.FileNaming = "{artist} - {bogus}"
	src := t.TempDir()
	a := writeSource(t, src, "song.mp3")

	org := New(cfg, autoStrategy(cfg), nil, zerolog.Nop())
	if _, err := org.Run(context.Background(), []string{a}); err == nil {
		t.Fatal("expected configuration error for unknown placeholder")
	}

	if _, err := os.Stat(a); err != nil {
		t.Errorf("source must be untouched after a configuration error: %v", err)
	}
}

// Re-running over an already-organized library must not duplicate
// playlist entries.
func TestRunIdempotentPlaylistMembership(t *testing.T) {
	cfg := testConfig(t)
	src := t.TempDir()
	a := writeSource(t, src, "loop.mp3")

	org := New(cfg, autoStrategy(cfg), nil, zerolog.Nop())
	if _, err := org.Run(context.Background(), []string{a}); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}

	chill := filepath.Join(cfg.PlaylistsPath(), "Chill.m3u")
	first, err := os.ReadFile(chill)
	if err != nil {
		t.Fatal(err)
	}

	// Same track surfaces again from a source dir; it collides, moves
	// under a counter name, and gains its own playlist entry — but the
	// original entry stays single.
	shelved := libraryFiles(t, cfg)[0]
	strategy := autoStrategy(cfg)
	track := org.extractor.Extract(shelved)
	selected, err := strategy.Select(track, shelved)
	if err != nil {
		t.Fatal(err)
	}
	for _, pl := range selected {
		if added, err := org.store.EnsureMembership(pl, shelved); err != nil {
			t.Fatal(err)
		} else if added {
			t.Error("re-adding the same path must be a no-op")
		}
	}

	second, err := os.ReadFile(chill)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("playlist changed across idempotent membership calls")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
