package commands

import (
	"context"
	"testing"
	"time"

	"locus/internal/adapters/graphindex"
	"locus/internal/adapters/memory"
	"locus/internal/application"
	"locus/internal/domain"
)

// Wednesday 2025-12-03
var now = time.Date(2025, time.December, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	ctx      context.Context
	items    *memory.ItemStore
	aliases  *memory.AliasStore
	mem      *graphindex.MemFS
	index    *graphindex.Engine
	writer   *graphindex.Writer
	resolver *application.PathResolver
	today    domain.CalendarDay
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		items:   memory.NewItemStore(),
		aliases: memory.NewAliasStore(),
		mem:     graphindex.NewMemFS(),
		today:   domain.MustCalendarDay(2025, time.December, 3),
	}
	f.index = graphindex.NewEngineWithFS("/idx", f.mem)
	f.writer = graphindex.NewWriterWithFS("/idx", f.mem, graphindex.NopLockFactory{})
	f.resolver = application.NewPathResolver(f.items, f.aliases, time.UTC, func() time.Time { return now })
	return f
}

// create adds an item through CreateItemCommand so item and index agree
func (f *fixture) create(t *testing.T, at domain.Placement, title, aliasText string) domain.Item {
	t.Helper()
	cmd := NewCreateItemCommand(f.items, f.aliases, f.index, f.writer, at, title)
	cmd.Alias = aliasText
	cmd.Now = now
	res, err := cmd.Execute(f.ctx)
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return *res.Item
}

func titles(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
