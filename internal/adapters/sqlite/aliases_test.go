package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"locus/internal/domain"
)

func openTestStore(t *testing.T) *AliasStore {
	t.Helper()
	s := NewAliasStore()
	if err := s.Open(filepath.Join(t.TempDir(), "aliases.db")); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustAlias(t *testing.T, raw string, id domain.ItemID) domain.Alias {
	t.Helper()
	a, err := domain.NewAlias(raw, id)
	if err != nil {
		t.Fatalf("NewAlias(%q) error: %v", raw, err)
	}
	return a
}

func TestAliasStore_SaveLoad(t *testing.T) {
	s := openTestStore(t)
	id := domain.NewItemID()
	a := mustAlias(t, "Café", id)

	if err := s.Save(a); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	tests := []struct {
		name string
		key  string
		want *domain.Alias
	}{
		{"normalized key", "cafe", &a},
		{"missing", "tea", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Load(tt.key)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAliasStore_SaveReplacesKey(t *testing.T) {
	s := openTestStore(t)
	first, second := domain.NewItemID(), domain.NewItemID()

	if err := s.Save(mustAlias(t, "cafe", first)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(mustAlias(t, "CAFE", second)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Load("cafe")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got == nil || got.ItemID != second || got.Raw != "CAFE" {
		t.Errorf("Load() = %+v, want CAFE -> %s", got, second)
	}
}

func TestAliasStore_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	a, b := domain.NewItemID(), domain.NewItemID()
	for _, al := range []domain.Alias{
		mustAlias(t, "project", a),
		mustAlias(t, "proj-x", a),
		mustAlias(t, "groceries", b),
	} {
		if err := s.Save(al); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	var keys []string
	for _, al := range list {
		keys = append(keys, al.Key)
	}
	if diff := cmp.Diff([]string{"groceries", "project", "projx"}, keys); diff != "" {
		t.Errorf("List() keys mismatch (-want +got):\n%s", diff)
	}

	n, err := s.DeleteForItem(a)
	if err != nil {
		t.Fatalf("DeleteForItem() error: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteForItem() = %d, want 2", n)
	}

	if err := s.Delete("groceries"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := s.Delete("groceries"); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}

	list, err = s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() = %v, want empty", list)
	}
}
