package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"locus/internal/application/commands"
	"locus/internal/domain"
)

// RegisterWriteTools adds all write tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, d Deps) {
	s.AddTool(createTool(), createHandler(d))
	s.AddTool(moveTool(), moveHandler(d))
	s.AddTool(retitleTool(), retitleHandler(d))
	s.AddTool(setStatusTool(), setStatusHandler(d))
	s.AddTool(deleteTool(), deleteHandler(d))
	s.AddTool(addAliasTool(), addAliasHandler(d))
	s.AddTool(removeAliasTool(), removeAliasHandler(d))
	s.AddTool(reindexTool(), reindexHandler(d))
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create a note or task at a placement. It goes after its siblings unless first is set."),
		mcp.WithString("at",
			mcp.Description("Path to the placement (e.g. today, today/2, proj/1, permanent)"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Title of the new item"),
			mcp.Required(),
		),
		mcp.WithString("kind",
			mcp.Description("note or task"),
			mcp.Enum("note", "task"),
		),
		mcp.WithString("alias",
			mcp.Description("Optional alias for the new item"),
		),
		mcp.WithString("body",
			mcp.Description("Optional markdown body"),
		),
		mcp.WithBoolean("first",
			mcp.Description("Place before existing siblings"),
		),
		withCwd(),
	)
}

func createHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		at, err := pathArg(d, req, "at")
		if err != nil {
			return toolError(err)
		}
		kind, err := domain.ParseItemKind(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewCreateItemCommand(d.Items, d.Aliases, d.Index, d.Writer, at, req.GetString("title", ""))
		cmd.Kind = kind
		cmd.Alias = req.GetString("alias", "")
		cmd.Body = req.GetString("body", "")
		cmd.First = req.GetBool("first", false)
		cmd.Now = d.now()

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", result.Message, result.Item.ID)), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move an item to another placement. An item cannot move beneath itself."),
		mcp.WithString("item",
			mcp.Description("Item ID or alias to move"),
			mcp.Required(),
		),
		mcp.WithString("to",
			mcp.Description("Path to the destination placement"),
			mcp.Required(),
		),
		mcp.WithBoolean("first",
			mcp.Description("Place before existing siblings"),
		),
		withCwd(),
	)
}

func moveHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, err := loadItem(d, req.GetString("item", ""))
		if err != nil {
			return toolError(err)
		}
		dest, err := pathArg(d, req, "to")
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewMoveItemCommand(d.Items, d.Index, d.Writer, item.ID, dest)
		cmd.First = req.GetBool("first", false)
		cmd.Now = d.now()
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- retitle ---

func retitleTool() mcp.Tool {
	return mcp.NewTool("retitle",
		mcp.WithDescription("Change an item's title."),
		mcp.WithString("item",
			mcp.Description("Item ID or alias"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.Required(),
		),
	)
}

func retitleHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, err := loadItem(d, req.GetString("item", ""))
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewRetitleCommand(d.Items, item.ID, req.GetString("title", ""))
		cmd.Now = d.now()
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_status ---

func setStatusTool() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription("Mark a task open or done."),
		mcp.WithString("item",
			mcp.Description("Task ID or alias"),
			mcp.Required(),
		),
		mcp.WithString("status",
			mcp.Description("open or done"),
			mcp.Required(),
			mcp.Enum(string(domain.StatusOpen), string(domain.StatusDone)),
		),
	)
}

func setStatusHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, err := loadItem(d, req.GetString("item", ""))
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewSetStatusCommand(d.Items, item.ID, domain.TaskStatus(req.GetString("status", "")))
		cmd.Now = d.now()
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete an item with its aliases. Items that still hold other items are refused."),
		mcp.WithString("item",
			mcp.Description("Item ID or alias"),
			mcp.Required(),
		),
	)
}

func deleteHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, err := loadItem(d, req.GetString("item", ""))
		if err != nil {
			return toolError(err)
		}
		result, err := commands.NewDeleteItemCommand(d.Items, d.Aliases, d.Writer, item.ID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- aliases ---

func addAliasTool() mcp.Tool {
	return mcp.NewTool("add_alias",
		mcp.WithDescription("Give an item another alias."),
		mcp.WithString("item",
			mcp.Description("Item ID or existing alias"),
			mcp.Required(),
		),
		mcp.WithString("alias",
			mcp.Description("New alias"),
			mcp.Required(),
		),
	)
}

func addAliasHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		item, err := loadItem(d, req.GetString("item", ""))
		if err != nil {
			return toolError(err)
		}
		a, err := commands.NewAddAliasCommand(d.Items, d.Aliases, item.ID, req.GetString("alias", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Alias %q -> %s", a.Key, a.ItemID.Short())), nil
	}
}

func removeAliasTool() mcp.Tool {
	return mcp.NewTool("remove_alias",
		mcp.WithDescription("Remove an alias. The item is kept."),
		mcp.WithString("alias",
			mcp.Description("Exact alias to remove"),
			mcp.Required(),
		),
	)
}

func removeAliasHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, err := commands.NewRemoveAliasCommand(d.Aliases, req.GetString("alias", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Removed alias %q", a.Key)), nil
	}
}

// --- reindex ---

func reindexTool() mcp.Tool {
	return mcp.NewTool("reindex",
		mcp.WithDescription("Rebuild the adjacency index from the stored items."),
	)
}

func reindexHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewReindexCommand(d.Items, d.Writer).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// pathArg resolves a required path argument against cwd
func pathArg(d Deps, req mcp.CallToolRequest, name string) (domain.Placement, error) {
	cwd, err := cwdArg(d, req)
	if err != nil {
		return domain.Placement{}, err
	}
	expr, err := req.RequireString(name)
	if err != nil {
		return domain.Placement{}, err
	}
	return d.Resolver.ResolvePath(cwd, expr)
}
