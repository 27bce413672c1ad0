package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/presentation"
)

var (
	searchLimit   int
	searchShowAll bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search ingredients",
	Long: `Search ingredients by name and by prefixed fields.

Prefixes:
  @mod  #tooltip  $tag  %category  &resource
  -term excludes, "quoted text" matches a phrase, a|b matches either.

Examples:
  almanac search planks
  almanac search @create
  almanac search '$minecraft:logs -birch'
  almanac search 'sword sharpness|unbreaking' --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		query := strings.Join(args, " ")
		if searchShowAll {
			if err := a.Filter.SetEditMode(true); err != nil {
				return err
			}
		}
		results, err := a.Filter.Search(query)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			if s := a.Filter.Suggest(query, 0); len(s) > 0 {
				fmt.Fprintf(os.Stderr, "no matches; did you mean: %s\n", strings.Join(s, ", "))
			}
			return nil
		}
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		dtos := make([]presentation.IngredientDTO, 0, len(results))
		for _, t := range results {
			dto, err := describe(a, t)
			if err != nil {
				return err
			}
			dtos = append(dtos, dto)
		}
		return formatter().FormatIngredients(dtos)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <uid>",
	Short: "Show one ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		t, err := resolve(a, args[0])
		if err != nil {
			return err
		}
		dto, err := describe(a, t)
		if err != nil {
			return err
		}
		dto.Aliases = a.Ingredients.Aliases(t)
		return formatter().FormatIngredient(dto)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 for all)")
	searchCmd.Flags().BoolVarP(&searchShowAll, "all", "a", false, "include hidden ingredients")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
}
