package commands

import (
	"context"
	"fmt"

	"locus/internal/alias"
	"locus/internal/application"
	"locus/internal/domain"
	"locus/internal/ports"
)

// AddAliasCommand names an item
type AddAliasCommand struct {
	items   ports.ItemRepository
	aliases ports.AliasRepository
	ItemID  domain.ItemID
	Raw     string
}

// NewAddAliasCommand creates a new AddAliasCommand
func NewAddAliasCommand(items ports.ItemRepository, aliases ports.AliasRepository, id domain.ItemID, raw string) *AddAliasCommand {
	return &AddAliasCommand{items: items, aliases: aliases, ItemID: id, Raw: raw}
}

// Execute runs the add alias command. Re-adding an alias to the same item
// updates its display text.
func (c *AddAliasCommand) Execute(ctx context.Context) (*domain.Alias, error) {
	if err := application.ValidateRequired("alias", c.Raw); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := c.items.Load(c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	if item == nil {
		return nil, &application.NotFoundError{Kind: "item", Key: c.ItemID.String()}
	}

	a, err := checkAliasFree(c.aliases, c.Raw, c.ItemID)
	if err != nil {
		return nil, err
	}
	if err := c.aliases.Save(a); err != nil {
		return nil, fmt.Errorf("failed to save alias: %w", err)
	}
	return &a, nil
}

// RemoveAliasCommand deletes an alias by its exact (normalized) name
type RemoveAliasCommand struct {
	aliases ports.AliasRepository
	Raw     string
}

// NewRemoveAliasCommand creates a new RemoveAliasCommand
func NewRemoveAliasCommand(aliases ports.AliasRepository, raw string) *RemoveAliasCommand {
	return &RemoveAliasCommand{aliases: aliases, Raw: raw}
}

// Execute runs the remove alias command
func (c *RemoveAliasCommand) Execute(ctx context.Context) (*domain.Alias, error) {
	key := alias.Normalize(c.Raw)
	if key == "" {
		return nil, &application.ValidationError{Field: "alias", Message: "alias is required"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	existing, err := c.aliases.Load(key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up alias: %w", err)
	}
	if existing == nil {
		return nil, &application.NotFoundError{Kind: "alias", Key: c.Raw}
	}
	if err := c.aliases.Delete(key); err != nil {
		return nil, fmt.Errorf("failed to delete alias: %w", err)
	}
	return existing, nil
}

// AliasPrefix pairs an alias with the shortest prefix that selects it
type AliasPrefix struct {
	Alias  domain.Alias
	Prefix string
}

// PrefixesCommand lists every alias with its shortest unique prefix
type PrefixesCommand struct {
	aliases ports.AliasRepository
}

// NewPrefixesCommand creates a new PrefixesCommand
func NewPrefixesCommand(aliases ports.AliasRepository) *PrefixesCommand {
	return &PrefixesCommand{aliases: aliases}
}

// Execute runs the prefixes command, ordered by key
func (c *PrefixesCommand) Execute(ctx context.Context) ([]AliasPrefix, error) {
	all, err := c.aliases.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys := application.AliasKeys(all)

	out := make([]AliasPrefix, 0, len(all))
	for _, a := range all {
		out = append(out, AliasPrefix{Alias: a, Prefix: alias.ShortestUniquePrefix(a.Key, keys)})
	}
	return out, nil
}
