package graphindex

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS is an in-memory WritableFileSystem for tests
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Optional injected failures
	ReadDirError  error
	ReadFileError error
}

var _ WritableFileSystem = (*MemFS)(nil)

// NewMemFS creates an empty in-memory file system
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// ReadDir lists direct children of name, sorted by name
func (m *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if m.ReadDirError != nil {
		return nil, m.ReadDirError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := filepath.Clean(name)
	if !m.dirs[dir] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry
	for path, data := range m.files {
		if filepath.Dir(path) == dir {
			entries = append(entries, memEntry{name: filepath.Base(path), size: int64(len(data))})
		}
	}
	for path := range m.dirs {
		if path != dir && filepath.Dir(path) == dir {
			entries = append(entries, memEntry{name: filepath.Base(path), dir: true})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// ReadFile returns a copy of the file contents
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	if m.ReadFileError != nil {
		return nil, m.ReadFileError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// WriteFile stores data; the parent directory must exist
func (m *MemFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := filepath.Clean(name)
	if !m.dirs[filepath.Dir(path)] {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

// Rename moves a file
func (m *MemFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, dst := filepath.Clean(oldpath), filepath.Clean(newpath)
	data, ok := m.files[src]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	if !m.dirs[filepath.Dir(dst)] {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrNotExist}
	}
	delete(m.files, src)
	m.files[dst] = data
	return nil
}

// Remove deletes a file or an empty directory
func (m *MemFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := filepath.Clean(name)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		prefix := path + string(filepath.Separator)
		for p := range m.files {
			if strings.HasPrefix(p, prefix) {
				return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrExist}
			}
		}
		for p := range m.dirs {
			if strings.HasPrefix(p, prefix) {
				return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrExist}
			}
		}
		delete(m.dirs, path)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// RemoveAll deletes path and everything beneath it
func (m *MemFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	root := filepath.Clean(path)
	prefix := root + string(filepath.Separator)
	for p := range m.files {
		if p == root || strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	for p := range m.dirs {
		if p == root || strings.HasPrefix(p, prefix) {
			delete(m.dirs, p)
		}
	}
	return nil
}

// MkdirAll creates path and any missing parents
func (m *MemFS) MkdirAll(path string, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for dir := filepath.Clean(path); ; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	return nil
}

type memEntry struct {
	name string
	dir  bool
	size int64
}

func (e memEntry) Name() string { return e.name }
func (e memEntry) IsDir() bool  { return e.dir }

func (e memEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}

func (e memEntry) Info() (fs.FileInfo, error) { return memInfo{e}, nil }

type memInfo struct{ e memEntry }

func (i memInfo) Name() string       { return i.e.name }
func (i memInfo) Size() int64        { return i.e.size }
func (i memInfo) Mode() fs.FileMode  { return i.e.Type() }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.e.dir }
func (i memInfo) Sys() any           { return nil }
