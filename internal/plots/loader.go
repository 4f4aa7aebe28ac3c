package plots

import (
	"github.com/banshee-data/datplot/internal/datafile"
	"github.com/banshee-data/datplot/internal/fsutil"
)

// Loader reads data files by path.
type Loader interface {
	Load(path string) (*datafile.Table, error)
}

// FileLoader loads tables from a FileSystem. Each path is read once per
// loader, so a file named twice on the command line costs one read.
type FileLoader struct {
	fs     fsutil.FileSystem
	tables map[string]*datafile.Table
}

// NewFileLoader returns a loader reading from fsys.
func NewFileLoader(fsys fsutil.FileSystem) *FileLoader {
	return &FileLoader{fs: fsys, tables: make(map[string]*datafile.Table)}
}

// Load implements Loader.
func (l *FileLoader) Load(path string) (*datafile.Table, error) {
	if t, ok := l.tables[path]; ok {
		return t, nil
	}
	t, err := datafile.Load(l.fs, path)
	if err != nil {
		return nil, err
	}
	diagf("loaded %s: %d rows, %d columns", path, t.Len(), t.Width())
	l.tables[path] = t
	return t, nil
}
