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

// CreateItemResult contains the result of creating an item
type CreateItemResult struct {
	Item    *domain.Item
	Alias   *domain.Alias
	Message string
}

// CreateItemCommand creates an item at a placement, after its last sibling
type CreateItemCommand struct {
	items     ports.ItemRepository
	aliases   ports.AliasRepository
	index     ports.GraphIndex
	writer    ports.IndexWriter
	Placement domain.Placement
	Title     string
	Body      string
	Kind      domain.ItemKind
	Alias     string
	First     bool
	Now       time.Time
}

// NewCreateItemCommand creates a new CreateItemCommand
func NewCreateItemCommand(items ports.ItemRepository, aliases ports.AliasRepository, index ports.GraphIndex, writer ports.IndexWriter, at domain.Placement, title string) *CreateItemCommand {
	return &CreateItemCommand{
		items:     items,
		aliases:   aliases,
		index:     index,
		writer:    writer,
		Placement: at,
		Title:     title,
		Kind:      domain.KindNote,
	}
}

// Validate checks if the create operation is valid
func (c *CreateItemCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	if err := application.ValidateSectionParent("placement", c.Placement, ""); err != nil {
		return err
	}
	if c.Kind != domain.KindNote && c.Kind != domain.KindTask {
		return &application.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", c.Kind)}
	}
	return nil
}

// Execute runs the create command. The item file is written first as the
// authoritative record, then the index entry, then the alias.
func (c *CreateItemCommand) Execute(ctx context.Context) (*CreateItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if h, ok := c.Placement.Head().(domain.ItemHead); ok {
		parent, err := c.items.Load(h.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent: %w", err)
		}
		if parent == nil {
			return nil, &application.NotFoundError{Kind: "item", Key: h.ID.String()}
		}
	}

	id := domain.NewItemID()
	var newAlias *domain.Alias
	if strings.TrimSpace(c.Alias) != "" {
		a, err := checkAliasFree(c.aliases, c.Alias, id)
		if err != nil {
			return nil, err
		}
		newAlias = &a
	}

	rank, err := siblingRank(c.index, c.Placement, c.First)
	if err != nil {
		return nil, err
	}

	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	item := domain.Item{
		ID:        id,
		Kind:      c.Kind,
		Title:     strings.TrimSpace(c.Title),
		Body:      c.Body,
		Placement: c.Placement,
		Rank:      rank,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if item.Kind == domain.KindTask {
		item.Status = domain.StatusOpen
	}

	if err := c.items.Save(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	if err := c.writer.Put(item.Placement, item.Ref()); err != nil {
		return nil, fmt.Errorf("item saved but not indexed (run reindex): %w", err)
	}
	if newAlias != nil {
		if err := c.aliases.Save(*newAlias); err != nil {
			return nil, fmt.Errorf("failed to save alias: %w", err)
		}
	}

	return &CreateItemResult{
		Item:    &item,
		Alias:   newAlias,
		Message: fmt.Sprintf("Created %s at %s", item.ID.Short(), item.Placement),
	}, nil
}

// checkAliasFree builds the alias for raw and rejects a key already taken by
// a different item
func checkAliasFree(aliases ports.AliasRepository, raw string, id domain.ItemID) (domain.Alias, error) {
	a, err := domain.NewAlias(raw, id)
	if err != nil {
		return domain.Alias{}, &application.ValidationError{Field: "alias", Message: err.Error()}
	}
	existing, err := aliases.Load(a.Key)
	if err != nil {
		return domain.Alias{}, fmt.Errorf("failed to look up alias: %w", err)
	}
	if existing != nil && existing.ItemID != id {
		return domain.Alias{}, &application.ValidationError{
			Field:   "alias",
			Message: fmt.Sprintf("%q is already used by %s", existing.Raw, existing.ItemID.Short()),
		}
	}
	return a, nil
}
