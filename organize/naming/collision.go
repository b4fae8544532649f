package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns desired unchanged when no file exists there, otherwise
// the first "name (N).ext" candidate in the same directory that does not
// exist, counting from 1 and never skipping or reusing a counter value.
//
// The check-then-decide sequence assumes exclusive access to the
// destination directory; concurrent callers must hold a directory-scoped
// lock across Resolve and the following move.
func Resolve(desired string) (string, error) {
	if free, err := pathFree(desired); err != nil {
		return "", err
	} else if free {
		return desired, nil
	}

	dir := filepath.Dir(desired)
	ext := filepath.Ext(desired)
	stem := strings.TrimSuffix(filepath.Base(desired), ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		free, err := pathFree(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
}

func pathFree(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}
