package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"locus/internal/domain"
)

func TestReindexCommand(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, domain.Permanent(), "a", "")
	b := f.create(t, domain.AtDate(f.today), "b", "")
	c := f.create(t, domain.UnderItem(a.ID).Child(2), "c", "")

	// drift: a stale entry and a lost one
	if err := f.writer.Put(domain.AtDate(f.today.AddDays(1)), domain.EdgeRef{ItemID: domain.NewItemID(), Rank: domain.InitialRank()}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := f.writer.Remove(c.Placement, c.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	res, err := NewReindexCommand(f.items, f.writer).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Indexed != 3 {
		t.Errorf("Indexed = %d, want 3", res.Indexed)
	}

	for _, item := range []domain.Item{a, b, c} {
		refs, err := f.index.Query(domain.Single(item.Placement))
		if err != nil {
			t.Fatalf("Query(%s) error: %v", item.Placement, err)
		}
		want := []domain.EdgeRef{item.Ref()}
		if diff := cmp.Diff(want, refs); diff != "" {
			t.Errorf("refs at %s mismatch (-want +got):\n%s", item.Placement, diff)
		}
	}
	stale, err := f.index.Query(domain.Single(domain.AtDate(f.today.AddDays(1))))
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("stale entry survived reindex: %v", stale)
	}
}

func TestReindexCommand_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.create(t, domain.Permanent(), "a", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewReindexCommand(f.items, f.writer).Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestCheckIndexCommand(t *testing.T) {
	f := newFixture(t)
	clean := f.create(t, domain.Permanent(), "clean", "")
	lost := f.create(t, domain.Permanent(), "lost", "")
	drifted := f.create(t, domain.AtDate(f.today), "drifted", "")
	_ = clean

	if err := f.writer.Remove(lost.Placement, lost.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if err := f.writer.Put(drifted.Placement, domain.EdgeRef{ItemID: drifted.ID, Rank: "z"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	ghost := domain.NewItemID()
	if err := f.writer.Put(domain.Permanent(), domain.EdgeRef{ItemID: ghost, Rank: "a"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	problems, err := NewCheckIndexCommand(f.items, f.index).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := make(map[domain.ItemID]ProblemKind)
	for _, p := range problems {
		got[p.ItemID] = p.Kind
	}
	want := map[domain.ItemID]ProblemKind{
		lost.ID:    ProblemMissing,
		drifted.ID: ProblemRankMismatch,
		ghost:      ProblemStale,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("problems mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewReindexCommand(f.items, f.writer).Execute(f.ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	problems, err = NewCheckIndexCommand(f.items, f.index).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() after reindex error: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("problems after reindex: %+v", problems)
	}
}

func TestCheckIndexCommand_Corrupt(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, domain.Permanent(), "a", "")
	if err := f.mem.WriteFile("/idx/permanent/notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	problems, err := NewCheckIndexCommand(f.items, f.index).Execute(f.ctx)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemCorrupt || !problems[0].Placement.Equal(item.Placement) {
		t.Errorf("problems = %+v, want one corrupt entry at %s", problems, item.Placement)
	}
}
