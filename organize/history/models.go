package history

import "time"

// Run is the persisted record of one organize run.
type Run struct {
	RunID        string        `json:"run_id"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	Found        int           `json:"found"`
	Moved        int           `json:"moved"`
	Failed       int           `json:"failed"`
	PlaylistAdds int           `json:"playlist_adds"`
	Failures     []FileFailure `json:"failures,omitempty"`
}

// FileFailure records one file the run could not process.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
