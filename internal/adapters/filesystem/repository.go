package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"locus/internal/config"
	"locus/internal/domain"
	"locus/internal/logging"
	"locus/internal/ports"
)

const itemExt = ".md"

// Repository implements ports.ItemRepository with one markdown file per item
type Repository struct {
	dir string
	log *slog.Logger
}

var _ ports.ItemRepository = (*Repository)(nil)

// NewRepository creates a repository storing items under dir
func NewRepository(dir string) *Repository {
	return &Repository{
		dir: config.ExpandHome(dir),
		log: logging.ForComponent(logging.CompStore),
	}
}

// Path returns the file backing an item
func (r *Repository) Path(id domain.ItemID) string {
	return filepath.Join(r.dir, id.String()+itemExt)
}

// Load reads an item, returning nil, nil when it does not exist
func (r *Repository) Load(id domain.ItemID) (*domain.Item, error) {
	path := r.Path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read item: %w", err)
	}
	item, err := UnmarshalItem(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if item.ID != id {
		return nil, fmt.Errorf("failed to parse %s: id %s does not match file name", path, item.ID)
	}
	return &item, nil
}

// Save writes an item atomically (temp file + rename)
func (r *Repository) Save(item domain.Item) error {
	data, err := MarshalItem(item)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create items directory: %w", err)
	}

	path := r.Path(item.ID)
	tmp := filepath.Join(r.dir, "."+item.ID.String()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write item: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save item: %w", err)
	}
	r.log.Debug("item saved", "id", item.ID.String(), "placement", item.Placement.String())
	return nil
}

// Delete removes an item file. Deleting a missing item is not an error.
func (r *Repository) Delete(id domain.ItemID) error {
	if err := os.Remove(r.Path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	r.log.Debug("item deleted", "id", id.String())
	return nil
}

// List loads every item. Unparsable files fail the listing so a broken
// item is never silently left out of a reindex.
func (r *Repository) List() ([]domain.Item, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read items directory: %w", err)
	}

	var items []domain.Item
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, itemExt) {
			continue
		}
		id, err := domain.ParseItemID(strings.TrimSuffix(name, itemExt))
		if err != nil {
			r.log.Warn("skipping file with non-ID name", "file", name)
			continue
		}
		item, err := r.Load(id)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items = append(items, *item)
		}
	}
	domain.SortItems(items)
	return items, nil
}
