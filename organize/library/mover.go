package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// MoveError reports a failed relocation together with the offending path.
type MoveError struct {
	Path string
	Op   string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Mover relocates files into the library directory. It is the only
// component that mutates the scanned filesystem state.
type Mover struct {
	log zerolog.Logger
}

// NewMover creates a mover.
func NewMover(log zerolog.Logger) *Mover {
	return &Mover{log: log}
}

// Move relocates src to dst. A rename is attempted first; when the
// destination is on another volume the file is copied and the source
// deleted afterwards. The source is never deleted without a confirmed
// write at the destination.
func (m *Mover) Move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &MoveError{Path: dst, Op: "create directory for", Err: err}
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if _, statErr := os.Stat(src); statErr != nil {
		// Rename cannot have failed on volume boundaries if the source
		// itself is unreadable; report that instead of copying.
		return &MoveError{Path: src, Op: "rename", Err: err}
	}

	m.log.Debug().Str("from", src).Str("to", dst).Msg("rename failed, copying across volumes")

	if err := copyFile(src, dst); err != nil {
		// Drop the partial copy so the resolver never sees it.
		os.Remove(dst)
		return err
	}
	if err := os.Remove(src); err != nil {
		return &MoveError{Path: src, Op: "remove", Err: err}
	}
	return nil
}

// copyFile copies src to dst, syncing before the destination is
// considered written. dst must not exist.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &MoveError{Path: src, Op: "open", Err: err}
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return &MoveError{Path: src, Op: "stat", Err: err}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return &MoveError{Path: dst, Op: "create", Err: err}
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return &MoveError{Path: dst, Op: "write", Err: err}
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return &MoveError{Path: dst, Op: "sync", Err: err}
	}
	if err := out.Close(); err != nil {
		return &MoveError{Path: dst, Op: "close", Err: err}
	}
	return nil
}
