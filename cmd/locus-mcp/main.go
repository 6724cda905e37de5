package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "locus/internal/adapters/mcp"
	"locus/internal/config"
	"locus/internal/logging"
	"locus/internal/workspace"
)

func main() {
	rootFlag := flag.String("root", config.RootPath(), "store root")
	tzFlag := flag.String("tz", "", "IANA time zone for date expressions")
	flag.Parse()

	ws, err := workspace.Open(*rootFlag, workspace.Options{Timezone: *tzFlag})
	if err != nil {
		log.Fatalf("locus-mcp: %v", err)
	}
	defer ws.Close()

	mcpServer := server.NewMCPServer(
		"locus-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{
		Resolver: ws.Resolver,
		Index:    ws.Index,
		Writer:   ws.Writer,
		Items:    ws.Items,
		Aliases:  ws.Aliases,
		Window:   ws.Config.PriorityWindowDays,
		Now:      ws.Now,
	}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	logging.ForComponent(logging.CompMCP).Info("serving stdio", "root", ws.Config.Root)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("locus-mcp: %v", err)
	}
}
