package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/adapters/editor"
	"locus/internal/application/commands"
)

var copyFlag bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <expr>",
	Short: "Resolve a path or range to placements",
	Long: `Resolve a path or range expression and print the canonical placement,
or every placement a range covers.

Examples:
  locus-cli resolve today/2
  locus-cli resolve proj/1..3
  locus-cli resolve this-week
  locus-cli --at 2025-12-01/2 resolve ../3 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		result, err := commands.NewResolveCommand(w.Resolver, cwd, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, p := range result.Covered {
			fmt.Println(p)
		}

		if copyFlag {
			text := result.Range.String()
			if err := (editor.Clipboard{}).WriteAll(text); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Printf("Copied %s\n", text)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "copy the resolved placement or range to the clipboard")
	rootCmd.AddCommand(resolveCmd)
}
