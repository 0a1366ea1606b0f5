// Package fileutil writes files so readers never observe partial content.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFileAtomic writes data to a temporary sibling of path and renames it
// into place with the given mode.
func WriteFileAtomic(fsys afero.Fs, path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := verify(fsys, tmpName, data); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	committed = true
	return nil
}

// verify re-reads path and compares its size and SHA256 against want.
func verify(fsys afero.Fs, path string, want []byte) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("reopen %s: %w", path, err)
	}
	defer f.Close()

	hasher := sha256.New()
	written, err := io.Copy(hasher, f)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}
	if written != int64(len(want)) {
		return fmt.Errorf("write size mismatch: expected %d bytes, found %d bytes", len(want), written)
	}
	expected := sha256.Sum256(want)
	if !bytes.Equal(hasher.Sum(nil), expected[:]) {
		return fmt.Errorf("write hash mismatch: file corrupted during write")
	}
	return nil
}
