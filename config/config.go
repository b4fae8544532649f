package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tuneshelf/organize/naming"
	"tuneshelf/organize/rules"
)

// ConfigError represents a configuration error. Configuration faults are
// fatal at startup: they would recur for every file in a run.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Config is the persisted configuration document.
type Config struct {
	MusicRoot        string    `yaml:"music_root"`
	AllSongsDir      string    `yaml:"all_songs_dir"`
	PlaylistsDir     string    `yaml:"playlists_dir"`
	SourceDirs       []string  `yaml:"source_dirs"`
	SupportedFormats []string  `yaml:"supported_formats"`
	SmartPlaylists   rules.Set `yaml:"smart_playlists"`
	FileNaming       string    `yaml:"file_naming"`

	// Reserved: accepted and persisted, not acted on by the pipeline.
	AutoImport bool `yaml:"auto_import"`

	BackupPlaylists *bool `yaml:"backup_playlists"`
}

// Default returns a configuration with every key at its default value.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults backfills every missing key with its default value.
func (c *Config) SetDefaults() {
	if c.MusicRoot == "" {
		c.MusicRoot = "~/Music"
	}
	if c.AllSongsDir == "" {
		c.AllSongsDir = "All Songs"
	}
	if c.PlaylistsDir == "" {
		c.PlaylistsDir = "."
	}
	if len(c.SourceDirs) == 0 {
		c.SourceDirs = []string{"~/Downloads", "~/Desktop"}
	}
	if len(c.SupportedFormats) == 0 {
		c.SupportedFormats = []string{".flac", ".mp3", ".wav", ".m4a", ".aac"}
	}
	if len(c.SmartPlaylists) == 0 {
		c.SmartPlaylists = defaultSmartPlaylists()
	}
	if c.FileNaming == "" {
		c.FileNaming = "{artist} - {title}"
	}
	if c.BackupPlaylists == nil {
		v := true
		c.BackupPlaylists = &v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := naming.ValidatePattern(c.FileNaming); err != nil {
		return &ConfigError{Message: fmt.Sprintf("file_naming: %v", err)}
	}
	if strings.TrimSpace(c.MusicRoot) == "" {
		return &ConfigError{Message: "music_root must not be empty"}
	}
	for _, sp := range c.SmartPlaylists {
		if strings.TrimSpace(sp.Name) == "" {
			return &ConfigError{Message: "smart playlist names must not be empty"}
		}
	}
	return nil
}

// BackupEnabled reports whether playlists are backed up before the first
// append of a run.
func (c *Config) BackupEnabled() bool {
	return c.BackupPlaylists != nil && *c.BackupPlaylists
}

// MusicRootPath returns the expanded music root.
func (c *Config) MusicRootPath() string {
	return ExpandUser(c.MusicRoot)
}

// LibraryDir returns the canonical single-folder library directory.
func (c *Config) LibraryDir() string {
	return filepath.Join(c.MusicRootPath(), c.AllSongsDir)
}

// PlaylistsPath returns the playlists directory.
func (c *Config) PlaylistsPath() string {
	return filepath.Join(c.MusicRootPath(), c.PlaylistsDir)
}

// ExpandedSourceDirs returns the configured source directories with ~
// expanded.
func (c *Config) ExpandedSourceDirs() []string {
	out := make([]string, 0, len(c.SourceDirs))
	for _, d := range c.SourceDirs {
		out = append(out, ExpandUser(d))
	}
	return out
}

// ExpandUser replaces a leading ~ with the current user's home directory.
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func defaultSmartPlaylists() rules.Set {
	genres := func(terms ...string) rules.Rule {
		return rules.Rule{Predicates: []rules.Predicate{{Kind: rules.KindGenreAny, Genres: terms}}}
	}
	return rules.Set{
		{Name: "High Energy.m3u", Rule: rules.Rule{Predicates: []rules.Predicate{{Kind: rules.KindTempoMin, Tempo: 120}}}},
		{Name: "Chill.m3u", Rule: rules.Rule{Predicates: []rules.Predicate{{Kind: rules.KindTempoMax, Tempo: 90}}}},
		{Name: "Rock.m3u", Rule: genres("rock", "alternative", "indie")},
		{Name: "Jazz.m3u", Rule: genres("jazz", "blues", "swing")},
		{Name: "Classical.m3u", Rule: genres("classical", "orchestral", "symphony")},
		{Name: "Electronic.m3u", Rule: genres("electronic", "edm", "dubstep", "house", "techno")},
		{Name: "Hip-Hop.m3u", Rule: genres("hip-hop", "rap", "trap")},
	}
}
