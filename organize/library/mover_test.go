package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestMoveRelocatesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "incoming", "song.mp3")
	dst := filepath.Join(dir, "library", "Artist - Song.mp3")
	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("audio bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewMover(zerolog.Nop())
	if err := m.Move(src, dst); err != nil {
		t.Fatalf("Move() error: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if string(data) != "audio bytes" {
		t.Errorf("destination contents = %q", data)
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gone.mp3")
	dst := filepath.Join(dir, "library", "gone.mp3")

	m := NewMover(zerolog.Nop())
	err := m.Move(src, dst)
	if err == nil {
		t.Fatal("expected error for missing source")
	}

	var moveErr *MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("expected *MoveError, got %T", err)
	}
	if moveErr.Path != src {
		t.Errorf("MoveError.Path = %q, want offending path %q", moveErr.Path, src)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Error("destination must not exist after a failed move")
	}
}

func TestCopyFilePreservesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "song.flac")
	dst := filepath.Join(dir, "copy.flac")
	if err := os.WriteFile(src, []byte("flac data"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile() error: %v", err)
	}

	// The copy step alone never touches the source; deletion happens only
	// after the destination write is confirmed.
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source missing after copy: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "flac data" {
		t.Errorf("copy contents = %q", data)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("copy mode = %v, want source mode 0600", info.Mode().Perm())
	}
}

func TestCopyFileRefusesExistingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.mp3")
	dst := filepath.Join(dir, "b.mp3")
	for _, p := range []string{src, dst} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := copyFile(src, dst); err == nil {
		t.Error("expected error: destination already exists")
	}
}

func TestDirLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "library")

	lock, err := NewDirLock(dir)
	if err != nil {
		t.Fatalf("NewDirLock() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("library directory not created: %v", err)
	}

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock() error: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
}
