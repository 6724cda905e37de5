package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"locus/internal/domain"
)

func testItem(t *testing.T, title string, p domain.Placement, rank domain.Rank) domain.Item {
	t.Helper()
	created := time.Date(2025, time.December, 1, 9, 30, 0, 0, time.UTC)
	return domain.Item{
		ID:        domain.NewItemID(),
		Kind:      domain.KindTask,
		Title:     title,
		Body:      "Some body text.\n\nSecond paragraph.",
		Status:    domain.StatusOpen,
		Placement: p,
		Rank:      rank,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
}

func TestRepository_SaveLoad(t *testing.T) {
	repo := NewRepository(t.TempDir())
	day := domain.MustCalendarDay(2025, time.December, 1)

	tests := []struct {
		name      string
		placement domain.Placement
	}{
		{"date root", domain.AtDate(day)},
		{"date section", domain.AtDate(day).Child(2).Child(1)},
		{"under item", domain.UnderItem(domain.NewItemID()).Child(3)},
		{"permanent", domain.Permanent()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := testItem(t, "Write report: draft #1", tt.placement, "i")
			if err := repo.Save(item); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := repo.Load(item.ID)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got == nil {
				t.Fatal("Load() = nil, want item")
			}
			if diff := cmp.Diff(item, *got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRepository_LoadMissing(t *testing.T) {
	repo := NewRepository(t.TempDir())
	got, err := repo.Load(domain.NewItemID())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %v, want nil", got)
	}
}

func TestRepository_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)
	id := domain.NewItemID()
	if err := os.WriteFile(repo.Path(id), []byte("no frontmatter here"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, err := repo.Load(id); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestRepository_DeleteAndList(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)
	p := domain.Permanent()

	first := testItem(t, "first", p, "i")
	second := testItem(t, "second", p, "a")
	third := testItem(t, "third", p, "r")
	for _, it := range []domain.Item{first, second, third} {
		if err := repo.Save(it); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}
	// noise the listing must ignore
	os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, ".swap.md"), []byte("x"), 0o644)

	if err := repo.Delete(first.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := repo.Delete(first.ID); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}

	items, err := repo.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	var titles []string
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	if diff := cmp.Diff([]string{"second", "third"}, titles); diff != "" {
		t.Errorf("List() titles mismatch (-want +got):\n%s", diff)
	}
}

func TestRepository_ListMissingDir(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "nope"))
	items, err := repo.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() = %v, want empty", items)
	}
}

func TestMarshalItem_Format(t *testing.T) {
	item := testItem(t, "Plan", domain.Permanent().Child(1), "i")
	item.Body = ""
	data, err := MarshalItem(item)
	if err != nil {
		t.Fatalf("MarshalItem() error: %v", err)
	}
	text := string(data)
	for _, want := range []string{"---\n", "placement: permanent/1\n", "rank: i\n", "kind: task\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if !strings.HasSuffix(text, "---\n") {
		t.Errorf("empty body should end at the closing delimiter:\n%s", text)
	}
}
