package cmd

import (
	"github.com/spf13/cobra"

	"locus/internal/adapters/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <item>",
	Short: "Open an item file in $EDITOR",
	Long: `Open an item's markdown file in $EDITOR (or $VISUAL).

Editing the title or body is safe. To move an item use mv, so the index
follows; after hand-editing a placement, run reindex.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := locateItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return editor.NewOpener().OpenFile(GetWorkspace().Items.Path(item.ID))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
