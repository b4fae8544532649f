package organize

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"tuneshelf/config"
	"tuneshelf/organize/history"
	"tuneshelf/organize/library"
	"tuneshelf/organize/metadata"
	"tuneshelf/organize/naming"
	"tuneshelf/organize/playlist"
	"tuneshelf/organize/selection"
)

// Summary tallies one organize run.
type Summary struct {
	Found        int
	Moved        int
	Failed       int
	PlaylistAdds int
	Failures     []history.FileFailure
}

// Organizer runs the organize pipeline: extract, synthesize, resolve,
// move, classify, record — each candidate processed to completion before
// the next. Per-file failures are tallied and never abort the run.
type Organizer struct {
	cfg       *config.Config
	extractor *metadata.Extractor
	mover     *library.Mover
	store     *playlist.Store
	strategy  selection.Strategy
	tracker   *history.Tracker
	log       zerolog.Logger
}

// New wires an organizer from its collaborators. tracker may be nil to
// disable run history.
func New(cfg *config.Config, strategy selection.Strategy, tracker *history.Tracker, log zerolog.Logger) *Organizer {
	return &Organizer{
		cfg:       cfg,
		extractor: metadata.NewExtractor(log),
		mover:     library.NewMover(log),
		store:     playlist.NewStore(cfg.BackupEnabled(), log),
		strategy:  strategy,
		tracker:   tracker,
		log:       log,
	}
}

// Run processes the candidate files sequentially. A configuration fault
// (such as a naming pattern with an unknown placeholder) aborts before
// any file is touched; everything else is per-file and tallied.
func (o *Organizer) Run(ctx context.Context, candidates []string) (*Summary, error) {
	if err := naming.ValidatePattern(o.cfg.FileNaming); err != nil {
		return nil, err
	}

	libraryDir := o.cfg.LibraryDir()
	lock, err := library.NewDirLock(libraryDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(o.cfg.PlaylistsPath(), 0755); err != nil {
		return nil, err
	}

	summary := &Summary{Found: len(candidates)}
	var run *history.Run
	if o.tracker != nil {
		run = o.tracker.StartRun()
		run.Found = len(candidates)
	}

	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			o.finishRun(run, summary)
			return summary, err
		}

		track := o.extractor.Extract(path)
		dest, err := o.place(track, libraryDir, lock)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, history.FileFailure{Path: path, Error: err.Error()})
			o.log.Error().Str("file", path).Err(err).Msg("organize failed")
			continue
		}

		summary.Moved++
		o.log.Info().Str("from", filepath.Base(path)).Str("to", filepath.Base(dest)).Msg("moved")

		summary.PlaylistAdds += o.classify(track, dest)
	}

	o.finishRun(run, summary)
	return summary, nil
}

// place synthesizes the canonical filename, resolves collisions, and
// moves the file. The directory lock is held across resolve and move so
// the uniqueness guarantee survives concurrent writers.
func (o *Organizer) place(track metadata.Track, libraryDir string, lock *library.DirLock) (string, error) {
	name, err := naming.Synthesize(track, o.cfg.FileNaming)
	if err != nil {
		return "", err
	}
	desired := filepath.Join(libraryDir, name+filepath.Ext(track.SourcePath))

	if err := lock.Lock(); err != nil {
		return "", err
	}
	defer lock.Unlock()

	dest, err := naming.Resolve(desired)
	if err != nil {
		return "", err
	}
	if err := o.mover.Move(track.SourcePath, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// classify records playlist membership for a shelved track. Playlist
// errors are logged and skipped; classification never fails a file that
// already moved.
func (o *Organizer) classify(track metadata.Track, dest string) int {
	abs, err := filepath.Abs(dest)
	if err != nil {
		o.log.Warn().Str("file", dest).Err(err).Msg("cannot resolve absolute path, playlists skipped")
		return 0
	}

	selected, err := o.strategy.Select(track, abs)
	if err != nil {
		o.log.Warn().Str("file", abs).Err(err).Msg("playlist selection failed")
		return 0
	}

	added := 0
	for _, pl := range selected {
		wasAdded, err := o.store.EnsureMembership(pl, abs)
		if err != nil {
			o.log.Warn().Str("playlist", pl).Err(err).Msg("playlist update failed")
			continue
		}
		if wasAdded {
			added++
			o.log.Info().Str("playlist", filepath.Base(pl)).Str("file", filepath.Base(abs)).Msg("added to playlist")
		}
	}
	return added
}

func (o *Organizer) finishRun(run *history.Run, summary *Summary) {
	if o.tracker == nil || run == nil {
		return
	}
	run.Moved = summary.Moved
	run.Failed = summary.Failed
	run.PlaylistAdds = summary.PlaylistAdds
	run.Failures = summary.Failures
	if err := o.tracker.CompleteRun(); err != nil {
		o.log.Warn().Err(err).Msg("run history not recorded")
	}
}
