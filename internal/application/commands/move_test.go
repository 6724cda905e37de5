package commands

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"locus/internal/application"
	"locus/internal/domain"
)

func TestMoveItemCommand(t *testing.T) {
	f := newFixture(t)
	proj := f.create(t, domain.Permanent(), "Project", "proj")
	task := f.create(t, domain.AtDate(f.today), "write report", "")
	f.create(t, domain.UnderItem(proj.ID), "existing", "")

	dest := domain.UnderItem(proj.ID)
	res, err := NewMoveItemCommand(f.items, f.index, f.writer, task.ID, dest).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !res.From.Equal(domain.AtDate(f.today)) {
		t.Errorf("From = %s, want %s", res.From, domain.AtDate(f.today))
	}
	if !res.MovedItem.Placement.Equal(dest) {
		t.Errorf("Placement = %s, want %s", res.MovedItem.Placement, dest)
	}

	stored, _ := f.items.Load(task.ID)
	if stored == nil || !stored.Placement.Equal(dest) {
		t.Fatalf("stored item not moved: %+v", stored)
	}

	old, err := f.index.Query(domain.Single(domain.AtDate(f.today)))
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(old) != 0 {
		t.Errorf("old placement still indexed: %v", old)
	}
	got, err := f.index.Query(domain.Single(dest))
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("destination refs = %v, want 2", got)
	}

	list, err := NewListCommand(f.resolver, f.index, f.items, domain.Permanent(), "proj").Execute(f.ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if diff := cmp.Diff([]string{"existing", "write report"}, titles(list.Items)); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveItemCommand_First(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, domain.Permanent(), "a", "")
	b := f.create(t, domain.Permanent(), "b", "")

	cmd := NewMoveItemCommand(f.items, f.index, f.writer, b.ID, domain.Permanent())
	cmd.First = true
	res, err := cmd.Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.MovedItem.Rank.Compare(a.Rank) >= 0 {
		t.Errorf("rank %s should sort before %s", res.MovedItem.Rank, a.Rank)
	}
	refs, _ := f.index.Query(domain.Single(domain.Permanent()))
	if len(refs) != 2 {
		t.Errorf("refs = %v, want exactly 2", refs)
	}
}

func TestMoveItemCommand_SamePlacementIsNoop(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, domain.Permanent(), "stay", "")

	res, err := NewMoveItemCommand(f.items, f.index, f.writer, item.ID, domain.Permanent()).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.MovedItem.Rank != item.Rank {
		t.Errorf("rank changed from %s to %s", item.Rank, res.MovedItem.Rank)
	}
}

func TestMoveItemCommand_Errors(t *testing.T) {
	f := newFixture(t)
	parent := f.create(t, domain.Permanent(), "parent", "")
	child := f.create(t, domain.UnderItem(parent.ID), "child", "")
	grandchild := f.create(t, domain.UnderItem(child.ID).Child(1), "grandchild", "")

	tests := []struct {
		name    string
		id      domain.ItemID
		dest    domain.Placement
		wantErr error
	}{
		{"under own descendant", parent.ID, domain.UnderItem(grandchild.ID), application.ErrInvalidOperation},
		{"under child section", parent.ID, domain.UnderItem(child.ID).Child(1), application.ErrInvalidOperation},
		{"missing item", domain.NewItemID(), domain.Permanent(), application.ErrNotFound},
		{"missing owner", child.ID, domain.UnderItem(domain.NewItemID()), application.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMoveItemCommand(f.items, f.index, f.writer, tt.id, tt.dest).Execute(f.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	stored, _ := f.items.Load(parent.ID)
	if !stored.Placement.Equal(domain.Permanent()) {
		t.Errorf("failed moves changed placement to %s", stored.Placement)
	}
}

func TestMoveItemCommand_Validate(t *testing.T) {
	id := domain.NewItemID()
	tests := []struct {
		name    string
		cmd     *MoveItemCommand
		wantErr bool
	}{
		{"valid", &MoveItemCommand{ItemID: id, Destination: domain.Permanent()}, false},
		{"missing id", &MoveItemCommand{Destination: domain.Permanent()}, true},
		{"missing destination", &MoveItemCommand{ItemID: id}, true},
		{"self", &MoveItemCommand{ItemID: id, Destination: domain.UnderItem(id)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
