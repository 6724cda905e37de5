package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"locus/internal/application"
	"locus/internal/domain"
	"locus/internal/ports"
)

// UpdateItemResult contains the item after an update
type UpdateItemResult struct {
	Item    *domain.Item
	Message string
}

// RetitleCommand changes an item's title
type RetitleCommand struct {
	items    ports.ItemRepository
	ItemID   domain.ItemID
	NewTitle string
	Now      time.Time
}

// NewRetitleCommand creates a new RetitleCommand
func NewRetitleCommand(items ports.ItemRepository, id domain.ItemID, title string) *RetitleCommand {
	return &RetitleCommand{items: items, ItemID: id, NewTitle: title}
}

// Validate checks if the retitle operation is valid
func (c *RetitleCommand) Validate() error {
	if c.ItemID == "" {
		return &application.ValidationError{Field: "itemID", Message: "item ID is required"}
	}
	return application.ValidateRequired("title", c.NewTitle)
}

// Execute runs the retitle command
func (c *RetitleCommand) Execute(ctx context.Context) (*UpdateItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(c.NewTitle)
	return updateItem(ctx, c.items, c.ItemID, c.Now, func(item domain.Item) domain.Item {
		return domain.Retitle(item, title)
	}, fmt.Sprintf("Retitled to %q", title))
}

// SetStatusCommand marks a task open or done
type SetStatusCommand struct {
	items  ports.ItemRepository
	ItemID domain.ItemID
	Status domain.TaskStatus
	Now    time.Time
}

// NewSetStatusCommand creates a new SetStatusCommand
func NewSetStatusCommand(items ports.ItemRepository, id domain.ItemID, status domain.TaskStatus) *SetStatusCommand {
	return &SetStatusCommand{items: items, ItemID: id, Status: status}
}

// Validate checks if the status change is valid
func (c *SetStatusCommand) Validate() error {
	if c.ItemID == "" {
		return &application.ValidationError{Field: "itemID", Message: "item ID is required"}
	}
	if c.Status != domain.StatusOpen && c.Status != domain.StatusDone {
		return &application.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
	}
	return nil
}

// Execute runs the status command. Only tasks carry a status.
func (c *SetStatusCommand) Execute(ctx context.Context) (*UpdateItemResult, error) {
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
	if item.Kind != domain.KindTask {
		return nil, fmt.Errorf("%w: %s is a %s, not a task", application.ErrInvalidOperation, item.ID.Short(), item.Kind)
	}
	return updateItem(ctx, c.items, c.ItemID, c.Now, func(item domain.Item) domain.Item {
		return domain.SetStatus(item, c.Status)
	}, fmt.Sprintf("Marked %s", c.Status))
}

// updateItem loads, transforms and saves an item. Placement and rank are
// untouched, so the index needs no change.
func updateItem(ctx context.Context, items ports.ItemRepository, id domain.ItemID, now time.Time, fn func(domain.Item) domain.Item, msg string) (*UpdateItemResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := items.Load(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, &application.NotFoundError{Kind: "item", Key: id.String()}
	}

	updated := fn(*item)
	if now.IsZero() {
		now = time.Now()
	}
	updated.UpdatedAt = now
	if err := items.Save(updated); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	return &UpdateItemResult{Item: &updated, Message: msg}, nil
}
