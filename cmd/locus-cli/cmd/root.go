package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"locus/internal/config"
	"locus/internal/domain"
	"locus/internal/workspace"
)

var (
	rootPath string
	timezone string
	atFlag   string
	debug    bool

	ws  *workspace.Workspace
	cwd domain.Placement
)

var rootCmd = &cobra.Command{
	Use:   "locus-cli",
	Short: "Place notes and tasks on days, inside other items, or permanently",
	Long: `locus-cli manages items placed on a calendar day, inside another item,
or in the permanent area, each optionally under numbered sections.

Paths combine dates (today, +3d, ~fri, next-monday, 2025-12-01), aliases
or item IDs, section numbers, "." and "..":

  today/2          section 2 of today
  proj/1..3        sections 1 to 3 inside the item aliased "proj"
  ~mon..+fri       last Monday through next Friday
  /permanent       the permanent area`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		ws, err = workspace.Open(rootPath, workspace.Options{Timezone: timezone, Debug: debug})
		if err != nil {
			return err
		}
		cwd, err = ws.Cwd(atFlag)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ws == nil {
			return nil
		}
		return ws.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if ws != nil {
			ws.Close()
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", config.RootPath(), "store root")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "IANA time zone for date expressions (overrides config and LOCUS_TZ)")
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "current placement relative paths start from (default today)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "mirror logs to stderr")
}

// GetWorkspace returns the opened workspace
func GetWorkspace() *workspace.Workspace {
	return ws
}
