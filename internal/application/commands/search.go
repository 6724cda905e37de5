package commands

import (
	"context"
	"fmt"

	"github.com/sahilm/fuzzy"

	"locus/internal/domain"
	"locus/internal/ports"
)

// SearchResult is an item with its match score
type SearchResult struct {
	Item  domain.Item
	Score int
}

// SearchCommand fuzzy-matches item titles
type SearchCommand struct {
	items ports.ItemRepository
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(items ports.ItemRepository, query string) *SearchCommand {
	return &SearchCommand{
		items: items,
		Query: query,
		Limit: 20,
	}
}

// titleSource adapts items to fuzzy.Source
type titleSource []domain.Item

func (s titleSource) String(i int) string { return s[i].Title }
func (s titleSource) Len() int            { return len(s) }

// Execute runs the search command and returns the best matches first
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}
	all, err := c.items.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(c.Query, titleSource(all))
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		if c.Limit > 0 && len(results) == c.Limit {
			break
		}
		results = append(results, SearchResult{Item: all[m.Index], Score: m.Score})
	}
	return results, nil
}
