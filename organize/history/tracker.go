package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Tracker persists run history as one JSON file per run under a
// directory, keeping the newest retention runs. Retention 0 keeps
// everything.
type Tracker struct {
	dir       string
	retention int
	current   *Run
	log       zerolog.Logger
}

// NewTracker creates a tracker, ensuring the history directory exists.
func NewTracker(dir string, retention int, log zerolog.Logger) (*Tracker, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	if retention < 0 {
		retention = 0
	}
	return &Tracker{dir: dir, retention: retention, log: log}, nil
}

// StartRun begins a new run record and returns it for the caller to fill
// in as the run progresses.
func (t *Tracker) StartRun() *Run {
	t.current = &Run{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	return t.current
}

// CompleteRun stamps the current run as completed, writes it to disk, and
// prunes history beyond the retention limit.
func (t *Tracker) CompleteRun() error {
	if t.current == nil {
		return nil
	}
	now := time.Now()
	t.current.CompletedAt = &now

	data, err := json.MarshalIndent(t.current, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run history: %w", err)
	}
	path := filepath.Join(t.dir, "run_"+t.current.RunID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run history: %w", err)
	}

	t.current = nil
	t.prune()
	return nil
}

// prune removes the oldest run files beyond the retention limit.
func (t *Tracker) prune() {
	if t.retention == 0 {
		return
	}
	matches, err := filepath.Glob(filepath.Join(t.dir, "run_*.json"))
	if err != nil || len(matches) <= t.retention {
		return
	}

	type runFile struct {
		path string
		mod  time.Time
	}
	files := make([]runFile, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		files = append(files, runFile{path: m, mod: info.ModTime()})
	}
	if len(files) <= t.retention {
		return
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod.Before(files[j].mod) })

	for _, f := range files[:len(files)-t.retention] {
		if err := os.Remove(f.path); err != nil {
			t.log.Warn().Str("file", f.path).Err(err).Msg("history prune failed")
		}
	}
}
