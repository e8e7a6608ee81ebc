package memobench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateOutputPath validates a target file path for a report or log file.
// Behavior:
//   - Empty or whitespace-only raw => returns "", nil (output OFF).
//   - Returns the absolute, symlink-resolved path on success.
//   - Fails if the parent directory does not exist, is not a directory,
//     or is not writable (detected by a create+remove probe).
//
// It does not create directories.
func ValidateOutputPath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	abs, err := filepath.Abs(filepath.Clean(raw))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("eval symlinks: %w", err)
		}
		// the leaf may be new, resolve the parent only
		parentResolved, perr := filepath.EvalSymlinks(filepath.Dir(abs))
		if perr != nil {
			return "", fmt.Errorf("resolve parent symlinks: %w", perr)
		}
		resolved = filepath.Join(parentResolved, filepath.Base(abs))
	}

	parent := filepath.Dir(resolved)

	info, err := os.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("parent folder does not exist: %s", parent)
		}
		return "", fmt.Errorf("stat parent folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("parent path is not a folder: %s", parent)
	}

	if err := probeWritable(parent); err != nil {
		return "", err
	}
	return resolved, nil
}

// probeWritable creates and removes a temp file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, "memobench-probe-*")
	if err != nil {
		return fmt.Errorf("parent folder not writable: %s: %w", dir, err)
	}

	name := f.Name()
	if cerr := f.Close(); cerr != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close probe file: %w", cerr)
	}
	if rerr := os.Remove(name); rerr != nil {
		return fmt.Errorf("remove probe file: %w", rerr)
	}
	return nil
}

// writeFileAtomic writes through a temp file in the target folder and renames
// it over path once write and fsync succeeded.
func writeFileAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "memobench-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		// cleanup if still present
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
