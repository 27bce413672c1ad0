package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/presentation"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List ingredient types and recipe categories",
	Long: `List every registered ingredient type and recipe category with the number
of ingredients or recipes it holds. Recipe categories also list the catalysts
(crafting stations) they are made in.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var ingredients []presentation.TypeDTO
		for _, t := range a.Ingredients.RegisteredTypes() {
			ingredients = append(ingredients, presentation.TypeDTO{UID: t.UID(), Count: a.Ingredients.Count(t)})
		}
		var categories []presentation.TypeDTO
		for _, c := range a.Recipes.Categories().All() {
			dto := presentation.TypeDTO{UID: c.UID(), Title: c.Title(), Count: a.Recipes.RecipeCount(c.UID())}
			for _, cat := range a.Recipes.Catalysts(c.UID()) {
				dto.Catalysts = append(dto.Catalysts, cat.UID())
			}
			categories = append(categories, dto)
		}

		f := formatter()
		if jsonFlag {
			return f.FormatResult(map[string][]presentation.TypeDTO{
				"ingredient_types":  ingredients,
				"recipe_categories": categories,
			})
		}
		if err := f.FormatTypes("Ingredient types", ingredients); err != nil {
			return err
		}
		return f.FormatTypes("Recipe categories", categories)
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
