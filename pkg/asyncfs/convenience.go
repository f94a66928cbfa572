package asyncfs

import (
	"fmt"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/filesystem"
)

// Direct, synchronous helpers for callers that do not need the task
// engine. They answer against the same filesystem abstraction the
// engine uses.

// Exists reports whether name exists on fsys.
func Exists(fsys filesystem.StatFS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// FileSize returns the size of name in bytes.
func FileSize(fsys filesystem.StatFS, name string) (uint64, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get file size: %w", err)
	}
	return uint64(info.Size()), nil
}

// IsDir reports whether name is a directory.
func IsDir(fsys filesystem.StatFS, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return info.IsDir(), nil
}

// IsFile reports whether name is a regular file.
func IsFile(fsys filesystem.StatFS, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// ListNames returns the names of dir's immediate children.
func ListNames(fsys filesystem.FullFileSystem, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}
