package ports

import "locus/internal/domain"

// ItemRepository stores items. An item's own Placement and Rank are the
// authoritative record; the adjacency index is derived from them.
type ItemRepository interface {
	// Load returns nil, nil when the item does not exist
	Load(id domain.ItemID) (*domain.Item, error)
	Save(item domain.Item) error
	Delete(id domain.ItemID) error
	List() ([]domain.Item, error)

	// Path returns the file backing an item, for opening in an editor
	Path(id domain.ItemID) string
}

// AliasRepository stores aliases keyed by their normalized key
type AliasRepository interface {
	// Load returns nil, nil when no alias has the key
	Load(key string) (*domain.Alias, error)
	// List returns every alias ordered by key
	List() ([]domain.Alias, error)
	Save(alias domain.Alias) error
	Delete(key string) error
	DeleteForItem(id domain.ItemID) (int, error)
}
