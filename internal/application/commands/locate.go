package commands

import (
	"context"
	"fmt"
	"slices"

	"locus/internal/alias"
	"locus/internal/application"
	"locus/internal/domain"
	"locus/internal/ports"
)

// LocateResult identifies the item that user text refers to
type LocateResult struct {
	ItemID domain.ItemID
	// Key is the alias key that matched; empty when Input was an item ID
	Key      string
	Priority bool
}

// LocateCommand finds an item from an ID, alias or alias prefix. Aliases of
// items placed on days near Today are tried before all others, so a short
// prefix picks today's "proj" over an old "project".
type LocateCommand struct {
	index   ports.GraphIndex
	aliases ports.AliasRepository
	Input   string
	Today   domain.CalendarDay
	Window  int
}

// NewLocateCommand creates a new LocateCommand. window is the number of
// days on either side of today that count as near.
func NewLocateCommand(index ports.GraphIndex, aliases ports.AliasRepository, input string, today domain.CalendarDay, window int) *LocateCommand {
	return &LocateCommand{
		index:   index,
		aliases: aliases,
		Input:   input,
		Today:   today,
		Window:  window,
	}
}

// Validate checks the command's inputs
func (c *LocateCommand) Validate() error {
	if err := application.ValidateRequired("alias", c.Input); err != nil {
		return err
	}
	if c.Window < 0 {
		return &application.ValidationError{Field: "window", Message: "window must not be negative"}
	}
	return nil
}

// Execute runs the locate command
func (c *LocateCommand) Execute(ctx context.Context) (*LocateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if id, err := domain.ParseItemID(c.Input); err == nil {
		return &LocateResult{ItemID: id}, nil
	}

	all, err := c.aliases.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	priority, err := c.priorityKeys(ctx, all)
	if err != nil {
		return nil, err
	}

	keys := application.AliasKeys(all)
	m := alias.Resolve(c.Input, priority, keys)
	switch m.Outcome {
	case alias.Single:
		for _, a := range all {
			if a.Key == m.Key {
				return &LocateResult{ItemID: a.ItemID, Key: a.Key, Priority: slices.Contains(priority, m.Key)}, nil
			}
		}
		return nil, &application.NotFoundError{Kind: "alias", Key: c.Input}
	case alias.Ambiguous:
		return nil, &application.AmbiguousError{Input: c.Input, Candidates: m.Candidates}
	default:
		return nil, &application.NotFoundError{Kind: "alias", Key: c.Input, Suggestions: application.Suggest(c.Input, keys)}
	}
}

// priorityKeys returns the alias keys of items the index places on days
// within Window of Today
func (c *LocateCommand) priorityKeys(ctx context.Context, all []domain.Alias) ([]string, error) {
	if c.Today.IsZero() {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	near, err := domain.NewDateRange(c.Today.AddDays(-c.Window), c.Today.AddDays(c.Window))
	if err != nil {
		return nil, err
	}
	refs, err := c.index.Query(near)
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby items: %w", err)
	}

	nearby := make(map[domain.ItemID]bool, len(refs))
	for _, ref := range refs {
		nearby[ref.ItemID] = true
	}
	var keys []string
	for _, a := range all {
		if nearby[a.ItemID] {
			keys = append(keys, a.Key)
		}
	}
	return keys, nil
}
