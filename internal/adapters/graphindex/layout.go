package graphindex

import (
	"path/filepath"
	"strconv"

	"locus/internal/domain"
)

// Namespace directory names under the index root
const (
	dateNamespace      = "date"
	itemNamespace      = "item"
	permanentNamespace = "permanent"
	lockFileName       = ".lock"
)

// Dir is the adjacency directory holding the children placed at p:
//
//	<root>/date/2025-12-01/1/2
//	<root>/item/<uuid>/3
//	<root>/permanent
func Dir(root string, p domain.Placement) string {
	parts := []string{root}
	switch h := p.Head().(type) {
	case domain.DateHead:
		parts = append(parts, dateNamespace, h.Day.String())
	case domain.ItemHead:
		parts = append(parts, itemNamespace, h.ID.String())
	default:
		parts = append(parts, permanentNamespace)
	}
	for _, n := range p.Section() {
		parts = append(parts, strconv.Itoa(n))
	}
	return filepath.Join(parts...)
}

// RefPath is the reference file for child id under placement p
func RefPath(root string, p domain.Placement, id domain.ItemID) string {
	return filepath.Join(Dir(root, p), id.String()+refExt)
}
