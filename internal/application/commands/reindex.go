package commands

import (
	"context"
	"errors"
	"fmt"

	"locus/internal/domain"
	"locus/internal/ports"
)

// ReindexResult contains the outcome of a rebuild
type ReindexResult struct {
	Indexed int
	Message string
}

// ReindexCommand rebuilds the adjacency index from the stored items
type ReindexCommand struct {
	items  ports.ItemRepository
	writer ports.IndexWriter
}

// NewReindexCommand creates a new ReindexCommand
func NewReindexCommand(items ports.ItemRepository, writer ports.IndexWriter) *ReindexCommand {
	return &ReindexCommand{items: items, writer: writer}
}

// Execute runs the reindex command
func (c *ReindexCommand) Execute(ctx context.Context) (*ReindexResult, error) {
	all, err := c.items.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	if err := c.writer.Reset(); err != nil {
		return nil, err
	}
	for i, item := range all {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reindex interrupted after %d of %d items: %w", i, len(all), err)
		}
		if err := c.writer.Put(item.Placement, item.Ref()); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", item.ID, err)
		}
	}
	return &ReindexResult{
		Indexed: len(all),
		Message: fmt.Sprintf("Indexed %d item(s)", len(all)),
	}, nil
}

// ProblemKind classifies an index inconsistency
type ProblemKind string

const (
	ProblemMissing      ProblemKind = "missing"
	ProblemRankMismatch ProblemKind = "rank-mismatch"
	ProblemStale        ProblemKind = "stale"
	ProblemCorrupt      ProblemKind = "corrupt"
)

// IndexProblem is one disagreement between the index and item state
type IndexProblem struct {
	Kind      ProblemKind
	Placement domain.Placement
	ItemID    domain.ItemID
	Detail    string
}

// CheckIndexCommand compares the index against the stored items. It looks
// at every placement some item occupies; refs in directories no item
// occupies are not found.
type CheckIndexCommand struct {
	items ports.ItemRepository
	index ports.GraphIndex
}

// NewCheckIndexCommand creates a new CheckIndexCommand
func NewCheckIndexCommand(items ports.ItemRepository, index ports.GraphIndex) *CheckIndexCommand {
	return &CheckIndexCommand{items: items, index: index}
}

// Execute runs the check and returns problems in placement order
func (c *CheckIndexCommand) Execute(ctx context.Context) ([]IndexProblem, error) {
	all, err := c.items.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	byID := make(map[domain.ItemID]domain.Item, len(all))
	var placements []domain.Placement
	seen := make(map[string]bool)
	for _, item := range all {
		byID[item.ID] = item
		key := item.Placement.String()
		if !seen[key] {
			seen[key] = true
			placements = append(placements, item.Placement)
		}
	}

	var problems []IndexProblem
	for _, at := range placements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		refs, err := c.index.Query(domain.Single(at))
		if err != nil {
			if errors.Is(err, domain.ErrIndexCorrupt) {
				problems = append(problems, IndexProblem{Kind: ProblemCorrupt, Placement: at, Detail: err.Error()})
				continue
			}
			return nil, err
		}

		indexed := make(map[domain.ItemID]domain.Rank, len(refs))
		for _, ref := range refs {
			indexed[ref.ItemID] = ref.Rank
			item, ok := byID[ref.ItemID]
			switch {
			case !ok:
				problems = append(problems, IndexProblem{Kind: ProblemStale, Placement: at, ItemID: ref.ItemID, Detail: "item does not exist"})
			case !item.Placement.Equal(at):
				problems = append(problems, IndexProblem{Kind: ProblemStale, Placement: at, ItemID: ref.ItemID, Detail: "item is placed at " + item.Placement.String()})
			case item.Rank != ref.Rank:
				problems = append(problems, IndexProblem{Kind: ProblemRankMismatch, Placement: at, ItemID: ref.ItemID, Detail: fmt.Sprintf("index has %s, item has %s", ref.Rank, item.Rank)})
			}
		}
		for _, item := range all {
			if !item.Placement.Equal(at) {
				continue
			}
			if _, ok := indexed[item.ID]; !ok {
				problems = append(problems, IndexProblem{Kind: ProblemMissing, Placement: at, ItemID: item.ID, Detail: "no index entry"})
			}
		}
	}
	return problems, nil
}
