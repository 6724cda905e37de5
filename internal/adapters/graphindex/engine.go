// Package graphindex is the filesystem-backed adjacency index. Each parent
// placement owns a directory holding one small JSON reference per child, so
// "what lives here" is answered without loading item files.
//
// The index is a derived cache of item placements. Writes are serialized
// per process with an advisory lock and land atomically per file, but a
// multi-file update (a move touches two directories) is not transactional:
// concurrent writers get last-write-wins, and CheckIndex/Reindex repair
// any drift from the authoritative item records.
package graphindex

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"locus/internal/domain"
	"locus/internal/logging"
	"locus/internal/ports"
)

// Engine answers placement queries from the index directory tree
type Engine struct {
	root string
	fs   FileSystem
	log  *slog.Logger
}

var _ ports.GraphIndex = (*Engine)(nil)

// NewEngine creates an engine reading the index under root from disk
func NewEngine(root string) *Engine {
	return NewEngineWithFS(root, OSFileSystem{})
}

// NewEngineWithFS creates an engine over any FileSystem
func NewEngineWithFS(root string, fsys FileSystem) *Engine {
	return &Engine{
		root: root,
		fs:   fsys,
		log:  logging.ForComponent(logging.CompIndex),
	}
}

// Root returns the index root directory
func (e *Engine) Root() string { return e.root }

// Query returns the references at every placement r covers, unordered.
// A placement with no directory contributes nothing; a corrupt reference
// file fails the whole query. Ranges wider than domain.MaxRangeSpan are
// refused before any directory is read.
func (e *Engine) Query(r domain.PlacementRange) ([]domain.EdgeRef, error) {
	if err := domain.CheckSpan(r); err != nil {
		return nil, err
	}
	switch r := r.(type) {
	case domain.SingleRange:
		return e.readDir(r.At)
	case domain.DateRange:
		var out []domain.EdgeRef
		for day := r.From; !day.After(r.To); day = day.AddDays(1) {
			refs, err := e.readDir(domain.AtDate(day))
			if err != nil {
				return nil, err
			}
			out = append(out, refs...)
		}
		return out, nil
	case domain.NumericRange:
		var out []domain.EdgeRef
		for n := r.From; n <= r.To; n++ {
			refs, err := e.readDir(r.Parent.Child(n))
			if err != nil {
				return nil, err
			}
			out = append(out, refs...)
		}
		return out, nil
	case nil:
		return nil, errors.New("nil placement range")
	default:
		return nil, fmt.Errorf("unsupported placement range %T", r)
	}
}

func (e *Engine) readDir(at domain.Placement) ([]domain.EdgeRef, error) {
	if at.IsZero() {
		return nil, errors.New("query on an empty placement")
	}
	dir := Dir(e.root, at)
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read index directory %s: %w", dir, err)
	}

	refs := make([]domain.EdgeRef, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		// Subdirectories are nested sections; dotfiles are locks and temp files
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if !strings.HasSuffix(name, refExt) {
			return nil, &CorruptRefError{Path: path, Reason: "unexpected file in index directory"}
		}
		data, err := e.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read index entry %s: %w", path, err)
		}
		ref, err := decodeRef(path, name, at, data)
		if err != nil {
			e.log.Error("corrupt index entry", "path", path, "error", err)
			return nil, err
		}
		refs = append(refs, ref)
	}
	e.log.Debug("index read", "placement", at.String(), "refs", len(refs))
	return refs, nil
}
