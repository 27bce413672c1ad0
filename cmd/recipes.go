package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/app"
	"github.com/zjrosen/almanac/internal/presentation"
	"github.com/zjrosen/almanac/internal/recipe"
)

var (
	recipeInputs    []string
	recipeOutputs   []string
	recipeCatalysts []string
	recipeCategory  string
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Look up recipes",
	Long: `Look up recipes by the ingredients they use, make or are made in.
Every focus must match (AND logic). Without --category every category with a
match is listed in registration order.

Examples:
  # How is a stick made?
  almanac recipes --output minecraft:stick

  # What does the furnace make from oak logs?
  almanac recipes --input minecraft:oak_log --catalyst minecraft:furnace

  # Every anvil recipe
  almanac recipes --category minecraft:anvil`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var focuses []recipe.Focus
		for _, group := range []struct {
			role recipe.Role
			uids []string
		}{
			{recipe.RoleInput, recipeInputs},
			{recipe.RoleOutput, recipeOutputs},
			{recipe.RoleCatalyst, recipeCatalysts},
		} {
			for _, uid := range group.uids {
				t, err := resolve(a, uid)
				if err != nil {
					return err
				}
				focuses = append(focuses, recipe.NewFocus(group.role, t))
			}
		}
		return printRecipes(a, recipeCategory, focuses)
	},
}

var usesCmd = &cobra.Command{
	Use:   "uses <uid>",
	Short: "List recipes using an ingredient",
	Long:  `List recipes that take the ingredient as an input or are made in it.`,
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

		var views []recipe.View
		views = append(views, a.Recipes.AllViews(recipe.NewFocus(recipe.RoleInput, t))...)
		for _, c := range a.Recipes.CategoriesFor(recipe.NewFocus(recipe.RoleCatalyst, t)) {
			more, err := a.Recipes.Views(c.UID(), recipe.NewFocus(recipe.RoleCatalyst, t))
			if err != nil {
				return err
			}
			views = append(views, more...)
		}
		return formatViews(a, views)
	},
}

func printRecipes(a *app.App, category string, focuses []recipe.Focus) error {
	if category == "" {
		return formatViews(a, a.Recipes.AllViews(focuses...))
	}
	views, err := a.Recipes.Views(category, focuses...)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", category, err)
	}
	return formatViews(a, views)
}

func formatViews(a *app.App, views []recipe.View) error {
	dtos := make([]presentation.RecipeDTO, 0, len(views))
	for _, v := range views {
		title := v.Category
		if c, ok := a.Recipes.Categories().Lookup(v.Category); ok {
			title = c.Title()
		}
		dtos = append(dtos, presentation.FromView(v, title, a.Recipes.Catalysts(v.Category)))
	}
	return formatter().FormatRecipes(dtos)
}

func init() {
	recipesCmd.Flags().StringArrayVarP(&recipeInputs, "input", "i", nil, "ingredient uid used by the recipe (repeatable)")
	recipesCmd.Flags().StringArrayVarP(&recipeOutputs, "output", "o", nil, "ingredient uid made by the recipe (repeatable)")
	recipesCmd.Flags().StringArrayVar(&recipeCatalysts, "catalyst", nil, "catalyst uid the recipe is made in (repeatable)")
	recipesCmd.Flags().StringVar(&recipeCategory, "category", "", "only this recipe category")
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(usesCmd)
}
