package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"locus/internal/application/commands"
	"locus/internal/domain"
)

var (
	addTitle string
	addKind  string
	addAlias string
	addBody  string
	addFirst bool
)

var addCmd = &cobra.Command{
	Use:   "add <placement>",
	Short: "Create a note or task",
	Long: `Create an item at a placement. It goes after the existing items there
unless --first is given.

Examples:
  locus-cli add today --title "Call the plumber" --kind task
  locus-cli add permanent --title "Garden plan" --alias garden
  locus-cli add garden/2 --title "Seed order"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := GetWorkspace()
		at, err := w.Resolver.ResolvePath(cwd, args[0])
		if err != nil {
			return err
		}
		kind, err := domain.ParseItemKind(addKind)
		if err != nil {
			return err
		}

		create := commands.NewCreateItemCommand(w.Items, w.Aliases, w.Index, w.Writer, at, addTitle)
		create.Kind = kind
		create.Alias = addAlias
		create.Body = addBody
		create.First = addFirst
		create.Now = w.Now()

		result, err := create.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if result.Alias != nil {
			fmt.Printf("Alias: %s\n", result.Alias.Key)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "item title")
	addCmd.Flags().StringVarP(&addKind, "kind", "k", "note", "note or task")
	addCmd.Flags().StringVarP(&addAlias, "alias", "a", "", "alias for the new item")
	addCmd.Flags().StringVarP(&addBody, "body", "b", "", "markdown body")
	addCmd.Flags().BoolVar(&addFirst, "first", false, "place before existing items")
	addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}
