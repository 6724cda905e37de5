package application

import "locus/internal/domain"

// Re-export domain types for use by adapters
type (
	Item           = domain.Item
	ItemID         = domain.ItemID
	Alias          = domain.Alias
	EdgeRef        = domain.EdgeRef
	Placement      = domain.Placement
	PlacementRange = domain.PlacementRange
)

// ParsePlacement parses the canonical text form of a placement
func ParsePlacement(s string) (Placement, error) {
	return domain.ParsePlacement(s)
}
