package commands

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"locus/internal/application"
	"locus/internal/domain"
	"locus/internal/ports"
)

// ListResult contains the items found at a range, in rank order
type ListResult struct {
	Range domain.PlacementRange
	Items []domain.Item
}

// ListCommand lists the items placed within a range expression
type ListCommand struct {
	resolver *application.PathResolver
	index    ports.GraphIndex
	items    ports.ItemRepository
	Cwd      domain.Placement
	Expr     string
}

// NewListCommand creates a new ListCommand. An empty expr lists Cwd.
func NewListCommand(resolver *application.PathResolver, index ports.GraphIndex, items ports.ItemRepository, cwd domain.Placement, expr string) *ListCommand {
	return &ListCommand{
		resolver: resolver,
		index:    index,
		items:    items,
		Cwd:      cwd,
		Expr:     expr,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	expr := c.Expr
	if expr == "" {
		expr = "."
	}
	r, err := c.resolver.ResolveRange(c.Cwd, expr)
	if err != nil {
		return nil, err
	}

	items, err := hydrate(ctx, c.index, c.items, r)
	if err != nil {
		return nil, err
	}
	return &ListResult{Range: r, Items: items}, nil
}

// hydrate queries the index for r and loads each referenced item, ordered
// by placement within r and then by rank. A ref whose item is missing or
// placed elsewhere means the index has drifted.
func hydrate(ctx context.Context, index ports.GraphIndex, repo ports.ItemRepository, r domain.PlacementRange) ([]domain.Item, error) {
	refs, err := index.Query(r)
	if err != nil {
		return nil, err
	}
	covered := domain.Expand(r)

	items := make([]domain.Item, 0, len(refs))
	pos := make(map[domain.ItemID]int, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, err := repo.Load(ref.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load item %s: %w", ref.ItemID, err)
		}
		if item == nil {
			return nil, fmt.Errorf("%w: index references missing item %s", domain.ErrIndexCorrupt, ref.ItemID)
		}
		i := placementIndex(item.Placement, covered)
		if i < 0 {
			return nil, fmt.Errorf("%w: item %s is indexed under %s but placed at %s", domain.ErrIndexCorrupt, ref.ItemID, r, item.Placement)
		}
		pos[item.ID] = i
		items = append(items, *item)
	}

	domain.SortItems(items)
	slices.SortStableFunc(items, func(a, b domain.Item) int {
		return cmp.Compare(pos[a.ID], pos[b.ID])
	})
	return items, nil
}

func placementIndex(p domain.Placement, covered []domain.Placement) int {
	return slices.IndexFunc(covered, p.Equal)
}
