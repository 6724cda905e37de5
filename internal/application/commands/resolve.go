package commands

import (
	"context"

	"locus/internal/application"
	"locus/internal/domain"
)

// ResolveResult contains a resolved expression. Placement is set when the
// range is a single placement; Covered lists every placement in the range.
type ResolveResult struct {
	Range     domain.PlacementRange
	Placement *domain.Placement
	Covered   []domain.Placement
}

// ResolveCommand resolves a path or range expression relative to Cwd
type ResolveCommand struct {
	resolver *application.PathResolver
	Cwd      domain.Placement
	Expr     string
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(resolver *application.PathResolver, cwd domain.Placement, expr string) *ResolveCommand {
	return &ResolveCommand{
		resolver: resolver,
		Cwd:      cwd,
		Expr:     expr,
	}
}

// Validate checks that there is something to resolve
func (c *ResolveCommand) Validate() error {
	return application.ValidateRequired("expr", c.Expr)
}

// Execute runs the resolve command
func (c *ResolveCommand) Execute(ctx context.Context) (*ResolveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := c.resolver.ResolveRange(c.Cwd, c.Expr)
	if err != nil {
		return nil, err
	}
	result := &ResolveResult{Range: r, Covered: domain.Expand(r)}
	if s, ok := r.(domain.SingleRange); ok {
		p := s.At
		result.Placement = &p
	}
	return result, nil
}
