package commands

import (
	"context"
	"fmt"

	"locus/internal/application"
	"locus/internal/domain"
	"locus/internal/ports"
)

// DeleteItemResult contains the result of deleting an item
type DeleteItemResult struct {
	Item           *domain.Item
	AliasesRemoved int
	Message        string
}

// DeleteItemCommand removes an item, its index entry and its aliases. Items
// that still own children are refused.
type DeleteItemCommand struct {
	items   ports.ItemRepository
	aliases ports.AliasRepository
	writer  ports.IndexWriter
	ItemID  domain.ItemID
}

// NewDeleteItemCommand creates a new DeleteItemCommand
func NewDeleteItemCommand(items ports.ItemRepository, aliases ports.AliasRepository, writer ports.IndexWriter, id domain.ItemID) *DeleteItemCommand {
	return &DeleteItemCommand{
		items:   items,
		aliases: aliases,
		writer:  writer,
		ItemID:  id,
	}
}

// Execute runs the delete command
func (c *DeleteItemCommand) Execute(ctx context.Context) (*DeleteItemResult, error) {
	if c.ItemID == "" {
		return nil, &application.ValidationError{Field: "itemID", Message: "item ID is required"}
	}

	item, err := c.items.Load(c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, &application.NotFoundError{Kind: "item", Key: c.ItemID.String()}
	}

	all, err := c.items.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	children := 0
	for _, other := range all {
		if h, ok := other.Placement.Head().(domain.ItemHead); ok && h.ID == c.ItemID {
			children++
		}
	}
	if children > 0 {
		return nil, fmt.Errorf("%w: %s still holds %d item(s)", application.ErrInvalidOperation, item.ID.Short(), children)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.writer.Remove(item.Placement, item.ID); err != nil {
		return nil, fmt.Errorf("failed to remove index entry: %w", err)
	}
	if err := c.items.Delete(item.ID); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := c.aliases.DeleteForItem(item.ID)
	if err != nil {
		return nil, fmt.Errorf("item deleted but aliases remain: %w", err)
	}

	return &DeleteItemResult{
		Item:           item,
		AliasesRemoved: n,
		Message:        fmt.Sprintf("Deleted %s (%s)", item.ID.Short(), item.Title),
	}, nil
}
