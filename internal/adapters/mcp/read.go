// Package mcp exposes locus operations as MCP tools
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"locus/internal/application"
	"locus/internal/application/commands"
	"locus/internal/domain"
	"locus/internal/ports"
)

// Deps are the stores and settings the tools run against
type Deps struct {
	Resolver *application.PathResolver
	Index    ports.GraphIndex
	Writer   ports.IndexWriter
	Items    ports.ItemRepository
	Aliases  ports.AliasRepository
	// Window is the priority window in days for alias lookups
	Window int
	// Now stamps writes; nil means time.Now
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, d Deps) {
	s.AddTool(resolveTool(), resolveHandler(d))
	s.AddTool(listTool(), listHandler(d))
	s.AddTool(locateTool(), locateHandler(d))
	s.AddTool(searchTool(), searchHandler(d))
	s.AddTool(readItemTool(), readItemHandler(d))
	s.AddTool(aliasesTool(), aliasesHandler(d))
	s.AddTool(checkIndexTool(), checkIndexHandler(d))
}

func withCwd() mcp.ToolOption {
	return mcp.WithString("cwd",
		mcp.Description("Placement that relative paths start from (e.g. 2025-12-01/2, permanent, <item-id>/1). Defaults to today."),
	)
}

// cwdArg parses the cwd argument, defaulting to today's date placement
func cwdArg(d Deps, req mcp.CallToolRequest) (domain.Placement, error) {
	raw := req.GetString("cwd", "")
	if raw == "" {
		return domain.AtDate(d.Resolver.Today()), nil
	}
	return application.ParsePlacement(raw)
}

// --- resolve ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve",
		mcp.WithDescription("Resolve a path or range expression to placements. Paths combine dates (today, +3d, ~fri, 2025-12-01), aliases or item IDs, section numbers, . and ..; ranges are from..to."),
		mcp.WithString("expr",
			mcp.Description("Path or range expression (e.g. today/2, proj/1..3, mon..fri)"),
			mcp.Required(),
		),
		withCwd(),
	)
}

func resolveHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cwd, err := cwdArg(d, req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewResolveCommand(d.Resolver, cwd, req.GetString("expr", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "range: %s\n", result.Range)
		for _, p := range result.Covered {
			fmt.Fprintf(&sb, "%s\n", p)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List the items placed within a path or range, in rank order."),
		mcp.WithString("expr",
			mcp.Description("Path or range expression. Omit to list cwd."),
		),
		withCwd(),
	)
}

func listHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cwd, err := cwdArg(d, req)
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewListCommand(d.Resolver, d.Index, d.Items, cwd, req.GetString("expr", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(result.Items, formatItem)
	}
}

// --- locate ---

func locateTool() mcp.Tool {
	return mcp.NewTool("locate",
		mcp.WithDescription("Find an item by ID, alias or alias prefix. Aliases of items on nearby days win over older ones."),
		mcp.WithString("input",
			mcp.Description("Item ID, alias or alias prefix"),
			mcp.Required(),
		),
	)
}

func locateHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewLocateCommand(d.Index, d.Aliases, req.GetString("input", ""), d.Resolver.Today(), d.Window)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		item, err := d.Items.Load(result.ItemID)
		if err != nil {
			return toolError(err)
		}
		if item == nil {
			return toolError(&application.NotFoundError{Kind: "item", Key: result.ItemID.String()})
		}
		return mcp.NewToolResultText(formatItem(*item)), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search item titles. Returns the best matches first."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}
		results, err := commands.NewSearchCommand(d.Items, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}
		var sb strings.Builder
		for _, r := range results {
			sb.WriteString(formatItem(r.Item))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_item ---

func readItemTool() mcp.Tool {
	return mcp.NewTool("read_item",
		mcp.WithDescription("Read an item's title, placement and body."),
		mcp.WithString("item",
			mcp.Description("Item ID or alias"),
			mcp.Required(),
		),
	)
}

func readItemHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, err := loadItem(d, req.GetString("item", ""))
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "id: %s\nkind: %s\ntitle: %s\nplacement: %s\nrank: %s\n", item.ID, item.Kind, item.Title, item.Placement, item.Rank)
		if item.Status != "" {
			fmt.Fprintf(&sb, "status: %s\n", item.Status)
		}
		if item.Body != "" {
			fmt.Fprintf(&sb, "\n%s", item.Body)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- aliases ---

func aliasesTool() mcp.Tool {
	return mcp.NewTool("aliases",
		mcp.WithDescription("List every alias with the shortest prefix that selects it."),
	)
}

func aliasesHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prefixes, err := commands.NewPrefixesCommand(d.Aliases).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(prefixes, func(p commands.AliasPrefix) string {
			return fmt.Sprintf("%s  %s  %s", p.Prefix, p.Alias.Raw, p.Alias.ItemID.Short())
		})
	}
}

// --- check_index ---

func checkIndexTool() mcp.Tool {
	return mcp.NewTool("check_index",
		mcp.WithDescription("Compare the adjacency index with the stored items and report disagreements."),
	)
}

func checkIndexHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		problems, err := commands.NewCheckIndexCommand(d.Items, d.Index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(problems) == 0 {
			return mcp.NewToolResultText("Index is consistent."), nil
		}
		return formatEntities(problems, func(p commands.IndexProblem) string {
			return fmt.Sprintf("%s  %s  %s  %s", p.Kind, p.Placement, p.ItemID, p.Detail)
		})
	}
}

// --- helpers ---

// loadItem resolves an item ID or alias to the stored item
func loadItem(d Deps, text string) (*domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &application.ValidationError{Field: "item", Message: "item is required"}
	}
	id, err := d.Resolver.ResolveItem(text)
	if err != nil {
		return nil, err
	}
	item, err := d.Items.Load(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &application.NotFoundError{Kind: "item", Key: id.String()}
	}
	return item, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatItem(i domain.Item) string {
	line := fmt.Sprintf("%s  %s  %s", i.ID, i.Placement, i.Title)
	if i.Status != "" {
		line += "  [" + string(i.Status) + "]"
	}
	return line
}
