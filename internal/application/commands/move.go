package commands

import (
	"context"
	"fmt"
	"time"

	"locus/internal/application"
	"locus/internal/domain"
	"locus/internal/ports"
)

// MoveItemResult contains the result of moving an item
type MoveItemResult struct {
	From      domain.Placement
	MovedItem *domain.Item
	Message   string
}

// MoveItemCommand relocates an item to a new placement
type MoveItemCommand struct {
	items       ports.ItemRepository
	index       ports.GraphIndex
	writer      ports.IndexWriter
	ItemID      domain.ItemID
	Destination domain.Placement
	First       bool
	Now         time.Time
}

// NewMoveItemCommand creates a new MoveItemCommand
func NewMoveItemCommand(items ports.ItemRepository, index ports.GraphIndex, writer ports.IndexWriter, id domain.ItemID, dest domain.Placement) *MoveItemCommand {
	return &MoveItemCommand{
		items:       items,
		index:       index,
		writer:      writer,
		ItemID:      id,
		Destination: dest,
	}
}

// Validate checks if the move operation is valid
func (c *MoveItemCommand) Validate() error {
	if c.ItemID == "" {
		return &application.ValidationError{
			Field:   "itemID",
			Message: "item ID is required",
		}
	}
	return application.ValidateSectionParent("destination", c.Destination, c.ItemID)
}

// Execute runs the move command
func (c *MoveItemCommand) Execute(ctx context.Context) (*MoveItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	item, err := c.items.Load(c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, &application.NotFoundError{Kind: "item", Key: c.ItemID.String()}
	}
	if err := c.checkNoCycle(ctx); err != nil {
		return nil, err
	}

	from := item.Placement
	if from.Equal(c.Destination) && !c.First {
		return &MoveItemResult{From: from, MovedItem: item, Message: "Already there"}, nil
	}

	rank, err := siblingRank(c.index, c.Destination, c.First)
	if err != nil {
		return nil, err
	}

	moved := domain.Relocate(*item, c.Destination, rank)
	moved.UpdatedAt = c.Now
	if moved.UpdatedAt.IsZero() {
		moved.UpdatedAt = time.Now()
	}

	if err := c.items.Save(moved); err != nil {
		return nil, fmt.Errorf("failed to move item: %w", err)
	}
	if err := c.writer.Remove(from, moved.ID); err != nil {
		return nil, fmt.Errorf("item moved but old index entry remains (run reindex): %w", err)
	}
	if err := c.writer.Put(moved.Placement, moved.Ref()); err != nil {
		return nil, fmt.Errorf("item moved but not indexed (run reindex): %w", err)
	}

	return &MoveItemResult{
		From:      from,
		MovedItem: &moved,
		Message:   fmt.Sprintf("Moved %s from %s to %s", moved.ID.Short(), from, moved.Placement),
	}, nil
}

// checkNoCycle walks the ownership chain above the destination and rejects
// a move that would place the item beneath itself
func (c *MoveItemCommand) checkNoCycle(ctx context.Context) error {
	seen := make(map[domain.ItemID]bool)
	at := c.Destination
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, ok := at.Head().(domain.ItemHead)
		if !ok {
			return nil
		}
		if h.ID == c.ItemID {
			return &application.MoveError{
				SourceID: c.ItemID.String(),
				DestID:   c.Destination.String(),
				Reason:   "destination is inside the item being moved",
			}
		}
		if seen[h.ID] {
			return fmt.Errorf("%w: ownership loop at %s", domain.ErrIndexCorrupt, h.ID)
		}
		seen[h.ID] = true

		owner, err := c.items.Load(h.ID)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", h.ID, err)
		}
		if owner == nil {
			return &application.NotFoundError{Kind: "item", Key: h.ID.String()}
		}
		at = owner.Placement
	}
}
