package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"locus/internal/adapters/editor"
	"locus/internal/adapters/tui"
	"locus/internal/config"
	"locus/internal/workspace"
)

func main() {
	rootFlag := flag.String("root", config.RootPath(), "store root")
	tzFlag := flag.String("tz", "", "IANA time zone for date expressions")
	atFlag := flag.String("at", "", "placement to start at (default today)")
	flag.Parse()

	if err := run(*rootFlag, *tzFlag, *atFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(root, tz, at string) error {
	ws, err := workspace.Open(root, workspace.Options{Timezone: tz})
	if err != nil {
		return err
	}
	defer ws.Close()

	start, err := ws.Cwd(at)
	if err != nil {
		return err
	}

	nav := tui.NewNavigator(context.Background(), ws.Resolver, ws.Index, ws.Items)
	app := tui.NewApp(nav, editor.NewOpener(), start)

	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
