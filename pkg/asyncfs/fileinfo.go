package asyncfs

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/bookmark"
	"github.com/arthur-debert/asyncfs/pkg/asyncfs/filesystem"
)

// FileInfo is an immutable metadata snapshot of one filesystem entry,
// taken at the moment of the Stat call. There is no liveness guarantee
// afterward.
type FileInfo struct {
	Path        string
	Name        string
	Size        uint64
	IsDirectory bool
	IsFile      bool
	Modified    time.Time // zero when unavailable
	Created     time.Time // zero; creation time is not portably exposed
	ReadOnly    bool
	Extension   string // without the dot, empty for none
}

// StatFileInfo takes a FileInfo snapshot of name on fsys.
func StatFileInfo(fsys filesystem.StatFS, name string) (FileInfo, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	base := path.Base(name)
	ext := ""
	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		ext = base[i+1:]
	}

	return FileInfo{
		Path:        name,
		Name:        base,
		Size:        uint64(info.Size()),
		IsDirectory: info.IsDir(),
		IsFile:      info.Mode().IsRegular(),
		Modified:    info.ModTime(),
		ReadOnly:    info.Mode().Perm()&0200 == 0,
		Extension:   ext,
	}, nil
}

// Entry converts the snapshot into a bookmark record.
func (fi FileInfo) Entry() bookmark.Entry {
	return bookmark.NewEntry(fi.Path, fi.Name, "", nil, fi.IsDirectory)
}
