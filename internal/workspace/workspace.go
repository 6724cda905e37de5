// Package workspace opens the stores under a locus root and wires them
// together for the command-line, MCP and TUI front ends.
package workspace

import (
	"fmt"
	"time"

	"locus/internal/adapters/filesystem"
	"locus/internal/adapters/graphindex"
	"locus/internal/adapters/sqlite"
	"locus/internal/application"
	"locus/internal/config"
	"locus/internal/domain"
	"locus/internal/logging"
)

// Options override configuration values for one process
type Options struct {
	// Timezone replaces the configured zone when non-empty
	Timezone string
	// Debug mirrors logs to stderr
	Debug bool
	// Clock replaces time.Now, mainly for tests
	Clock func() time.Time
}

// Workspace holds the open stores of one root
type Workspace struct {
	Config   *config.Config
	Location *time.Location
	Items    *filesystem.Repository
	Aliases  *sqlite.AliasStore
	Index    *graphindex.Engine
	Writer   *graphindex.Writer
	Resolver *application.PathResolver

	clock func() time.Time
}

// Open loads the configuration under root, starts logging and opens every
// store. Callers must Close the workspace.
func Open(root string, opts Options) (*Workspace, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if opts.Timezone != "" {
		cfg.Timezone = opts.Timezone
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		LogDir: cfg.LogDir(),
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Debug:  cfg.Log.Debug || opts.Debug,
	})

	aliases := sqlite.NewAliasStore()
	if err := aliases.Open(cfg.AliasDBPath()); err != nil {
		return nil, fmt.Errorf("failed to open alias store: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	items := filesystem.NewRepository(cfg.ItemsDir())
	ws := &Workspace{
		Config:   cfg,
		Location: loc,
		Items:    items,
		Aliases:  aliases,
		Index:    graphindex.NewEngine(cfg.IndexDir()),
		Writer:   graphindex.NewWriter(cfg.IndexDir()),
		Resolver: application.NewPathResolver(items, aliases, loc, clock),
		clock:    clock,
	}
	logging.ForComponent(logging.CompCLI).Debug("workspace opened", "root", cfg.Root, "tz", loc.String())
	return ws, nil
}

// Close releases the alias database and flushes logs
func (w *Workspace) Close() error {
	err := w.Aliases.Close()
	logging.Shutdown()
	return err
}

// Now is the workspace clock
func (w *Workspace) Now() time.Time {
	return w.clock()
}

// Today is the current day in the workspace zone
func (w *Workspace) Today() domain.CalendarDay {
	return w.Resolver.Today()
}

// Cwd parses a placement given on the command line, defaulting to today.
// Path expressions are accepted too, resolved against today.
func (w *Workspace) Cwd(text string) (domain.Placement, error) {
	today := domain.AtDate(w.Today())
	if text == "" {
		return today, nil
	}
	if p, err := domain.ParsePlacement(text); err == nil {
		return p, nil
	}
	return w.Resolver.ResolvePath(today, text)
}
