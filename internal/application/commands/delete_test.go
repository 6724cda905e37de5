package commands

import (
	"errors"
	"testing"

	"locus/internal/application"
	"locus/internal/domain"
)

func TestDeleteItemCommand(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, domain.AtDate(f.today), "scratch", "scratch")
	if _, err := NewAddAliasCommand(f.items, f.aliases, item.ID, "tmp").Execute(f.ctx); err != nil {
		t.Fatalf("add alias: %v", err)
	}

	res, err := NewDeleteItemCommand(f.items, f.aliases, f.writer, item.ID).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.AliasesRemoved != 2 {
		t.Errorf("AliasesRemoved = %d, want 2", res.AliasesRemoved)
	}

	if got, _ := f.items.Load(item.ID); got != nil {
		t.Error("item still stored")
	}
	refs, err := f.index.Query(domain.Single(domain.AtDate(f.today)))
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("index still holds %v", refs)
	}
	if all, _ := f.aliases.List(); len(all) != 0 {
		t.Errorf("aliases remain: %v", all)
	}
}

func TestDeleteItemCommand_RefusesOwner(t *testing.T) {
	f := newFixture(t)
	parent := f.create(t, domain.Permanent(), "parent", "")
	f.create(t, domain.UnderItem(parent.ID).Child(3), "child", "")

	_, err := NewDeleteItemCommand(f.items, f.aliases, f.writer, parent.ID).Execute(f.ctx)
	if !errors.Is(err, application.ErrInvalidOperation) {
		t.Fatalf("Execute() error = %v, want ErrInvalidOperation", err)
	}
	if got, _ := f.items.Load(parent.ID); got == nil {
		t.Error("refused delete removed the item")
	}
}

func TestDeleteItemCommand_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := NewDeleteItemCommand(f.items, f.aliases, f.writer, domain.NewItemID()).Execute(f.ctx)
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("Execute() error = %v, want ErrNotFound", err)
	}
}
