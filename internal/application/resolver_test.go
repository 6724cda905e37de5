package application

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"locus/internal/adapters/memory"
	"locus/internal/domain"
)

// Wednesday 2025-12-03, mid-morning UTC
var refInstant = time.Date(2025, time.December, 3, 10, 0, 0, 0, time.UTC)

type resolverFixture struct {
	resolver *PathResolver
	items    *memory.ItemStore
	aliases  *memory.AliasStore
	today    domain.CalendarDay
	proj     domain.Item
	cafe     domain.Item
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()
	f := &resolverFixture{
		items:   memory.NewItemStore(),
		aliases: memory.NewAliasStore(),
		today:   domain.MustCalendarDay(2025, time.December, 3),
	}
	f.resolver = NewPathResolver(f.items, f.aliases, time.UTC, func() time.Time { return refInstant })

	f.proj = domain.Item{
		ID:        domain.NewItemID(),
		Kind:      domain.KindNote,
		Title:     "Project",
		Placement: domain.AtDate(f.today).Child(2),
		Rank:      domain.InitialRank(),
	}
	f.cafe = domain.Item{
		ID:        domain.NewItemID(),
		Kind:      domain.KindNote,
		Title:     "Café list",
		Placement: domain.Permanent(),
		Rank:      domain.InitialRank(),
	}
	for _, it := range []domain.Item{f.proj, f.cafe} {
		if err := f.items.Save(it); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}
	f.addAlias(t, "proj", f.proj.ID)
	f.addAlias(t, "Café", f.cafe.ID)
	return f
}

func (f *resolverFixture) addAlias(t *testing.T, raw string, id domain.ItemID) {
	t.Helper()
	a, err := domain.NewAlias(raw, id)
	if err != nil {
		t.Fatalf("NewAlias(%q) error: %v", raw, err)
	}
	if err := f.aliases.Save(a); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	f := newResolverFixture(t)
	cwd := domain.AtDate(f.today).Child(1)

	tests := []struct {
		name string
		cwd  domain.Placement
		expr string
		want domain.Placement
	}{
		{"dot", cwd, ".", cwd},
		{"numeric appends", cwd, "3/2", cwd.Child(3).Child(2)},
		{"dotdot pops section", cwd.Child(4), "..", cwd},
		{"dotdot then numeric", cwd, "../2", domain.AtDate(f.today).Child(2)},
		{"relative date replaces stack", cwd, "tomorrow/1", domain.AtDate(f.today.AddDays(1)).Child(1)},
		{"absolute date", cwd, "/2025-12-01/4", domain.AtDate(domain.MustCalendarDay(2025, time.December, 1)).Child(4)},
		{"absolute alias", cwd, "/proj/1", domain.UnderItem(f.proj.ID).Child(1)},
		{"relative alias", cwd, "proj", domain.UnderItem(f.proj.ID)},
		{"alias by id", cwd, f.proj.ID.String(), domain.UnderItem(f.proj.ID)},
		{"alias prefix", cwd, "pr", domain.UnderItem(f.proj.ID)},
		{"permanent", cwd, "/permanent/3", domain.Permanent().Child(3)},
		{"perm short form", cwd, "perm", domain.Permanent()},
		{"trailing slash ignored", cwd, "2/", cwd.Child(2)},
		{"dotdot from item root loads owner", domain.UnderItem(f.proj.ID), "..", f.proj.Placement},
		{"dotdot twice walks ownership then section", domain.UnderItem(f.proj.ID), "../..", domain.AtDate(f.today)},
		{"weekday", cwd, "+mon", domain.AtDate(domain.MustCalendarDay(2025, time.December, 8))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.resolver.ResolvePath(tt.cwd, tt.expr)
			if err != nil {
				t.Fatalf("ResolvePath(%q) error: %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolvePath(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestResolvePath_AliasNormalization(t *testing.T) {
	f := newResolverFixture(t)
	cwd := domain.Permanent()

	for _, expr := range []string{"café", "CAFE", "ca-fe", "Cafe"} {
		t.Run(expr, func(t *testing.T) {
			got, err := f.resolver.ResolvePath(cwd, expr)
			if err != nil {
				t.Fatalf("ResolvePath(%q) error: %v", expr, err)
			}
			if !got.Equal(domain.UnderItem(f.cafe.ID)) {
				t.Errorf("ResolvePath(%q) = %s, want %s", expr, got, f.cafe.ID)
			}
		})
	}
}

func TestResolvePath_Errors(t *testing.T) {
	f := newResolverFixture(t)
	f.addAlias(t, "prune", domain.NewItemID())
	orphan := domain.NewItemID()

	tests := []struct {
		name   string
		cwd    domain.Placement
		expr   string
		target error
	}{
		{"dotdot above date root", domain.AtDate(f.today), "..", ErrNavigation},
		{"dotdot above permanent", domain.Permanent(), "..", ErrNavigation},
		{"dotdot from missing item", domain.UnderItem(orphan), "..", ErrNotFound},
		{"relative without cwd", domain.Placement{}, "1", ErrNavigation},
		{"absolute numeric start", domain.Permanent(), "/1/2", domain.ErrInvalidSyntax},
		{"absolute dot start", domain.Permanent(), "/./proj", domain.ErrInvalidSyntax},
		{"absolute dotdot start", domain.Permanent(), "/..", domain.ErrInvalidSyntax},
		{"absolute empty", domain.Permanent(), "/", domain.ErrInvalidSyntax},
		{"zero index", domain.Permanent(), "0", domain.ErrInvalidSyntax},
		{"empty segment", domain.Permanent(), "1//2", domain.ErrInvalidSyntax},
		{"bad date unit", domain.Permanent(), "+3x", domain.ErrInvalidSyntax},
		{"impossible literal date", domain.Permanent(), "2025-02-30", domain.ErrInvalidSyntax},
		{"date beyond year 9999", domain.Permanent(), "+8000y", domain.ErrInvalidSyntax},
		{"ambiguous prefix", domain.Permanent(), "pr", ErrAmbiguous},
		{"unknown alias", domain.Permanent(), "nothing", ErrNotFound},
		{"range in path", domain.Permanent(), "1..2", domain.ErrInvalidSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.resolver.ResolvePath(tt.cwd, tt.expr)
			if !errors.Is(err, tt.target) {
				t.Errorf("ResolvePath(%q) error = %v, want %v", tt.expr, err, tt.target)
			}
		})
	}
}

func TestResolvePath_AmbiguousCandidates(t *testing.T) {
	f := newResolverFixture(t)
	f.addAlias(t, "prune", domain.NewItemID())

	_, err := f.resolver.ResolvePath(domain.Permanent(), "pr")
	var amb *AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("error = %v, want *AmbiguousError", err)
	}
	if diff := cmp.Diff([]string{"proj", "prune"}, amb.Candidates); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePath_NotFoundSuggests(t *testing.T) {
	f := newResolverFixture(t)

	_, err := f.resolver.ResolvePath(domain.Permanent(), "cfe")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if diff := cmp.Diff([]string{"cafe"}, nf.Suggestions); diff != "" {
		t.Errorf("Suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePath_ExactAliasBeatsPrefix(t *testing.T) {
	f := newResolverFixture(t)
	other := domain.NewItemID()
	f.addAlias(t, "project", other)

	got, err := f.resolver.ResolvePath(domain.Permanent(), "proj")
	if err != nil {
		t.Fatalf("ResolvePath() error: %v", err)
	}
	if !got.Equal(domain.UnderItem(f.proj.ID)) {
		t.Errorf("ResolvePath() = %s, want exact alias target %s", got, f.proj.ID)
	}
}

func TestResolvePath_TimeZone(t *testing.T) {
	items, aliases := memory.NewItemStore(), memory.NewAliasStore()
	late := time.Date(2025, time.December, 3, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	honolulu := time.FixedZone("HST", -10*60*60)

	tests := []struct {
		name string
		loc  *time.Location
		want domain.CalendarDay
	}{
		{"utc", time.UTC, domain.MustCalendarDay(2025, time.December, 3)},
		{"ahead of utc", tokyo, domain.MustCalendarDay(2025, time.December, 4)},
		{"behind utc", honolulu, domain.MustCalendarDay(2025, time.December, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPathResolver(items, aliases, tt.loc, func() time.Time { return late })
			got, err := r.ResolvePath(domain.Permanent(), "today")
			if err != nil {
				t.Fatalf("ResolvePath() error: %v", err)
			}
			if !got.Equal(domain.AtDate(tt.want)) {
				t.Errorf("today = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveRange(t *testing.T) {
	f := newResolverFixture(t)
	cwd := domain.AtDate(f.today).Child(1)
	d := func(day int) domain.CalendarDay { return domain.MustCalendarDay(2025, time.December, day) }

	tests := []struct {
		name string
		expr string
		want domain.PlacementRange
	}{
		{"plain dates", "2025-12-01..2025-12-03", domain.DateRange{From: d(1), To: d(3)}},
		{"relative dates", "yesterday..tomorrow", domain.DateRange{From: d(2), To: d(4)}},
		{"same day", "today..today", domain.DateRange{From: d(3), To: d(3)}},
		{"alias numeric", "proj/1..3", domain.NumericRange{Parent: domain.UnderItem(f.proj.ID), From: 1, To: 3}},
		{"relative numeric", "1..3", domain.NumericRange{Parent: cwd, From: 1, To: 3}},
		{"nested numeric", "/permanent/2/1..4", domain.NumericRange{Parent: domain.Permanent().Child(2), From: 1, To: 4}},
		{"numeric of one", "proj/2..2", domain.NumericRange{Parent: domain.UnderItem(f.proj.ID), From: 2, To: 2}},
		{"single path", "proj/1", domain.Single(domain.UnderItem(f.proj.ID).Child(1))},
		{"bare period keyword", "this-week", domain.DateRange{From: d(1), To: d(7)}},
		{"short period keyword", "nw", domain.DateRange{From: d(8), To: d(14)}},
		{"month period", "this-month", domain.DateRange{From: d(1), To: d(31)}},
		{"period keyword with section is a path", "tw/1", domain.Single(domain.AtDate(d(1)).Child(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.resolver.ResolveRange(cwd, tt.expr)
			if err != nil {
				t.Fatalf("ResolveRange(%q) error: %v", tt.expr, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveRange(%q) mismatch (-want +got):\n%s", tt.expr, diff)
			}
		})
	}
}

func TestResolveRange_Errors(t *testing.T) {
	f := newResolverFixture(t)
	cwd := domain.AtDate(f.today).Child(1)

	tests := []struct {
		name   string
		expr   string
		target error
	}{
		{"dates reversed", "2025-12-03..2025-12-01", ErrInvalidRange},
		{"numeric reversed", "proj/3..1", ErrInvalidRange},
		{"zero start", "proj/0..2", domain.ErrInvalidSyntax},
		{"different items", "proj/1..cafe/2", ErrInvalidRange},
		{"different dates with sections", "2025-12-01/1..2025-12-02/3", ErrInvalidRange},
		{"date to item", "today..proj", ErrInvalidRange},
		{"date to section", "today..today/1", ErrInvalidRange},
		{"two separators", "1..2..3", domain.ErrInvalidSyntax},
		{"open ended", "1..", domain.ErrInvalidSyntax},
		{"too many sections", "proj/1..99999999999", ErrInvalidRange},
		{"too many days", "2000-01-01..2099-12-31", ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.resolver.ResolveRange(cwd, tt.expr)
			if !errors.Is(err, tt.target) {
				t.Errorf("ResolveRange(%q) error = %v, want %v", tt.expr, err, tt.target)
			}
		})
	}
}
