package graphindex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"locus/internal/domain"
	"locus/internal/logging"
	"locus/internal/ports"
)

const (
	defaultLockTimeout   = 5 * time.Second
	defaultRetryInterval = 20 * time.Millisecond
)

// ErrLockTimeout is returned when another writer holds the index lock
var ErrLockTimeout = errors.New("timed out waiting for index lock")

// Writer maintains reference files as items are saved, moved and deleted
type Writer struct {
	root        string
	fs          WritableFileSystem
	locks       LockFactory
	lockTimeout time.Duration
	log         *slog.Logger
}

var _ ports.IndexWriter = (*Writer)(nil)

// NewWriter creates a writer on disk, locked with flock
func NewWriter(root string) *Writer {
	return NewWriterWithFS(root, OSFileSystem{}, FlockFactory{})
}

// NewWriterWithFS creates a writer over any file system and lock factory
func NewWriterWithFS(root string, fsys WritableFileSystem, locks LockFactory) *Writer {
	return &Writer{
		root:        root,
		fs:          fsys,
		locks:       locks,
		lockTimeout: defaultLockTimeout,
		log:         logging.ForComponent(logging.CompIndex),
	}
}

// Put writes (or overwrites) the reference for ref.ItemID under at
func (w *Writer) Put(at domain.Placement, ref domain.EdgeRef) error {
	data, err := encodeRef(at, ref)
	if err != nil {
		return err
	}
	return w.withLock(func() error {
		dir := Dir(w.root, at)
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
		path := RefPath(w.root, at, ref.ItemID)
		tmp := filepath.Join(dir, "."+ref.ItemID.String()+".tmp")
		if err := w.fs.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("failed to write index entry: %w", err)
		}
		if err := w.fs.Rename(tmp, path); err != nil {
			_ = w.fs.Remove(tmp)
			return fmt.Errorf("failed to commit index entry: %w", err)
		}
		w.log.Debug("index put", "placement", at.String(), "item", ref.ItemID.String(), "rank", ref.Rank.String())
		return nil
	})
}

// Remove deletes the reference for id under at. A missing reference is not
// an error.
func (w *Writer) Remove(at domain.Placement, id domain.ItemID) error {
	return w.withLock(func() error {
		path := RefPath(w.root, at, id)
		if err := w.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove index entry: %w", err)
		}
		w.log.Debug("index remove", "placement", at.String(), "item", id.String())
		return nil
	})
}

// Reset deletes every namespace, leaving an empty index
func (w *Writer) Reset() error {
	return w.withLock(func() error {
		for _, ns := range []string{dateNamespace, itemNamespace, permanentNamespace} {
			if err := w.fs.RemoveAll(filepath.Join(w.root, ns)); err != nil {
				return fmt.Errorf("failed to reset %s namespace: %w", ns, err)
			}
		}
		w.log.Info("index reset", "root", w.root)
		return nil
	})
}

func (w *Writer) withLock(fn func() error) error {
	if err := w.fs.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("failed to create index root: %w", err)
	}
	lock := w.locks.New(filepath.Join(w.root, lockFileName))

	ctx, cancel := context.WithTimeout(context.Background(), w.lockTimeout)
	defer cancel()
	ok, err := lock.TryLockContext(ctx, defaultRetryInterval)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to lock index: %w", err)
	}
	if !ok {
		return ErrLockTimeout
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.log.Warn("failed to unlock index", "error", err)
		}
	}()
	return fn()
}
