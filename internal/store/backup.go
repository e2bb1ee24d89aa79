package store

import (
	"fmt"
	"io"
	"os"
)

// Backup copies the database file to <path>.bak before an apply run.
// An existing backup is overwritten: the previous run already committed,
// so the fresher copy is the one worth keeping.
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	backup := path + ".bak"
	dst, err := os.Create(backup)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("backup copy failed: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return backup, nil
}
