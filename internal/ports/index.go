package ports

import "locus/internal/domain"

// GraphIndex answers "what lives at or under this placement" from the
// adjacency index without loading items. Results are unordered; callers sort.
type GraphIndex interface {
	Query(r domain.PlacementRange) ([]domain.EdgeRef, error)
}

// IndexWriter keeps the adjacency index in lockstep with item state. Every
// save, move and delete of an item goes through it.
type IndexWriter interface {
	Put(at domain.Placement, ref domain.EdgeRef) error
	Remove(at domain.Placement, id domain.ItemID) error
	// Reset drops the whole index, ahead of a rebuild
	Reset() error
}
