package application

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"locus/internal/alias"
	"locus/internal/dateexpr"
	"locus/internal/domain"
	"locus/internal/logging"
	"locus/internal/pathexpr"
	"locus/internal/ports"
)

// PathResolver turns path and range expressions into placements. Relative
// dates are resolved against the clock rendered in loc.
type PathResolver struct {
	items   ports.ItemRepository
	aliases ports.AliasRepository
	loc     *time.Location
	clock   func() time.Time
	log     *slog.Logger
}

// NewPathResolver creates a resolver. A nil clock means time.Now; a nil loc
// means UTC.
func NewPathResolver(items ports.ItemRepository, aliases ports.AliasRepository, loc *time.Location, clock func() time.Time) *PathResolver {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PathResolver{
		items:   items,
		aliases: aliases,
		loc:     loc,
		clock:   clock,
		log:     logging.ForComponent(logging.CompResolve),
	}
}

// Today is the current calendar day in the resolver's time zone
func (r *PathResolver) Today() domain.CalendarDay {
	return dateexpr.Today(r.loc, r.clock())
}

// ResolvePath parses and resolves a single path expression
func (r *PathResolver) ResolvePath(cwd domain.Placement, expr string) (domain.Placement, error) {
	path, err := pathexpr.ParsePath(expr)
	if err != nil {
		return domain.Placement{}, err
	}
	return r.Walk(cwd, path)
}

// ResolveRange parses and resolves a path or range expression. A bare period
// keyword ("this-week") means the whole period.
func (r *PathResolver) ResolveRange(cwd domain.Placement, expr string) (domain.PlacementRange, error) {
	rng, err := pathexpr.ParseRange(expr)
	if err != nil {
		return nil, err
	}

	ref := r.clock()
	if rng.To == nil {
		if rng.From.IsSingleToken(pathexpr.TokenDate) && dateexpr.IsPeriodKeyword(rng.From.Tokens[0].Text) {
			dr, err := dateexpr.ResolvePeriod(rng.From.Tokens[0].Text, r.loc, ref)
			if err != nil {
				return nil, err
			}
			return dr, nil
		}
		p, err := r.walk(cwd, rng.From, ref)
		if err != nil {
			return nil, err
		}
		return domain.Single(p), nil
	}

	from, err := r.walk(cwd, rng.From, ref)
	if err != nil {
		return nil, err
	}
	to, err := r.walk(cwd, *rng.To, ref)
	if err != nil {
		return nil, err
	}
	out, err := rangeOf(from, to)
	if err != nil {
		return nil, err
	}
	r.log.Debug("range resolved", "expr", expr, "range", out.String())
	return out, nil
}

// rangeOf classifies two resolved endpoints. Anything that is neither a
// date span nor a numeric span under one parent is rejected.
func rangeOf(from, to domain.Placement) (domain.PlacementRange, error) {
	fd, fromDate := from.Head().(domain.DateHead)
	td, toDate := to.Head().(domain.DateHead)
	if fromDate && toDate && from.IsRoot() && to.IsRoot() {
		if fd.Day.After(td.Day) {
			return nil, &RangeError{From: from.String(), To: to.String(), Reason: "start is after end"}
		}
		dr, err := domain.NewDateRange(fd.Day, td.Day)
		if err != nil {
			return nil, &RangeError{From: from.String(), To: to.String(), Reason: err.Error()}
		}
		return dr, nil
	}

	if from.SameParent(to) {
		if from.Last() > to.Last() {
			return nil, &RangeError{From: from.String(), To: to.String(), Reason: "start is after end"}
		}
		parent, _ := from.Parent()
		nr, err := domain.NewNumericRange(parent, from.Last(), to.Last())
		if err != nil {
			return nil, &RangeError{From: from.String(), To: to.String(), Reason: err.Error()}
		}
		return nr, nil
	}

	if from.Head().Kind() == to.Head().Kind() && from.Head() != to.Head() {
		return nil, &RangeError{From: from.String(), To: to.String(), Reason: "endpoints must share the same parent placement"}
	}
	return nil, &RangeError{From: from.String(), To: to.String(), Reason: "endpoints form neither a date range nor a numeric range under one parent"}
}

// Walk resolves an already tokenized path
func (r *PathResolver) Walk(cwd domain.Placement, path pathexpr.Path) (domain.Placement, error) {
	return r.walk(cwd, path, r.clock())
}

func (r *PathResolver) walk(cwd domain.Placement, path pathexpr.Path, ref time.Time) (domain.Placement, error) {
	var stack domain.Placement
	if path.Absolute {
		if len(path.Tokens) == 0 {
			return domain.Placement{}, &domain.SyntaxError{Input: path.String(), Reason: "absolute path needs a date, an item or permanent"}
		}
		if first := path.Tokens[0]; !first.DefinesHead() {
			return domain.Placement{}, &domain.SyntaxError{Input: path.String(), Token: first.Text, Reason: "absolute path must start with a date, an item or permanent"}
		}
	} else {
		if cwd.IsZero() {
			return domain.Placement{}, &NavigationError{Token: path.String(), Reason: "no current location for a relative path"}
		}
		stack = cwd
	}

	for _, tok := range path.Tokens {
		next, err := r.step(stack, tok, ref)
		if err != nil {
			return domain.Placement{}, err
		}
		r.log.Debug("path step", "token", tok.Text, "kind", tok.Kind.String(), "from", stack.String(), "to", next.String())
		stack = next
	}
	return stack, nil
}

func (r *PathResolver) step(stack domain.Placement, tok pathexpr.Token, ref time.Time) (domain.Placement, error) {
	switch tok.Kind {
	case pathexpr.TokenDot:
		return stack, nil

	case pathexpr.TokenDotDot:
		if parent, ok := stack.Parent(); ok {
			return parent, nil
		}
		h, ok := stack.Head().(domain.ItemHead)
		if !ok {
			return domain.Placement{}, &NavigationError{From: stack.String(), Token: tok.Text, Reason: "cannot go above root"}
		}
		item, err := r.items.Load(h.ID)
		if err != nil {
			return domain.Placement{}, fmt.Errorf("failed to load item %s: %w", h.ID, err)
		}
		if item == nil {
			return domain.Placement{}, &NotFoundError{Kind: "item", Key: h.ID.String()}
		}
		return item.Placement, nil

	case pathexpr.TokenDate:
		day, err := dateexpr.ResolveDate(tok.Text, r.loc, ref)
		if err != nil {
			return domain.Placement{}, err
		}
		return domain.AtDate(day), nil

	case pathexpr.TokenNumeric:
		return stack.Child(tok.Index), nil

	case pathexpr.TokenPermanent:
		return domain.Permanent(), nil

	case pathexpr.TokenIDOrAlias:
		id, err := r.ResolveItem(tok.Text)
		if err != nil {
			return domain.Placement{}, err
		}
		return domain.UnderItem(id), nil

	default:
		return domain.Placement{}, &domain.SyntaxError{Input: tok.Text, Reason: "unknown token"}
	}
}

// ResolveItem maps an item ID or alias to an item ID: ID parse first, then
// the exact alias key, then a unique prefix over every alias.
func (r *PathResolver) ResolveItem(text string) (domain.ItemID, error) {
	if id, err := domain.ParseItemID(text); err == nil {
		return id, nil
	}

	key := alias.Normalize(text)
	if key == "" {
		return "", &domain.SyntaxError{Input: text, Reason: "empty alias"}
	}
	exact, err := r.aliases.Load(key)
	if err != nil {
		return "", fmt.Errorf("failed to look up alias: %w", err)
	}
	if exact != nil {
		return exact.ItemID, nil
	}

	all, err := r.aliases.List()
	if err != nil {
		return "", fmt.Errorf("failed to list aliases: %w", err)
	}
	keys := AliasKeys(all)
	m := alias.Resolve(text, nil, keys)
	switch m.Outcome {
	case alias.Single:
		return itemForKey(all, m.Key), nil
	case alias.Ambiguous:
		return "", &AmbiguousError{Input: text, Candidates: m.Candidates}
	default:
		return "", &NotFoundError{Kind: "alias", Key: text, Suggestions: Suggest(text, keys)}
	}
}

// AliasKeys returns the keys of aliases in sorted order
func AliasKeys(aliases []domain.Alias) []string {
	keys := make([]string, len(aliases))
	for i, a := range aliases {
		keys[i] = a.Key
	}
	slices.Sort(keys)
	return keys
}

func itemForKey(aliases []domain.Alias, key string) domain.ItemID {
	for _, a := range aliases {
		if a.Key == key {
			return a.ItemID
		}
	}
	return ""
}
