package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pageza/chefapp/backend/client"
	"github.com/pageza/chefapp/backend/internal/models"
	"github.com/pageza/chefapp/backend/internal/types"
)

func newRecipesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"recipe"},
		Short:   "Browse and edit your recipes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.connect(); err != nil {
				return err
			}
			return a.requireLogin(cmd.Context())
		},
	}
	cmd.AddCommand(
		newRecipesListCmd(a),
		newRecipesShowCmd(a),
		newRecipesCreateCmd(a),
		newRecipesEditCmd(a),
		newRecipesDeleteCmd(a),
	)
	return cmd
}

func newRecipesListCmd(a *app) *cobra.Command {
	var filter types.RecipeFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			browser := client.NewBrowser(a.client)
			recipes, err := browser.SetFilter(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(recipes)
			}
			if len(recipes) == 0 {
				fmt.Fprintln(a.out, "No recipes found.")
				return nil
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDIFFICULTY\tCUISINE\tTIME\tRATING")
			for _, r := range recipes {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dm\t%s\n",
					r.ID, r.Title, r.Category, r.Difficulty, r.CuisineType, r.PrepTime+r.CookTime, stars(r.Rating))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter.Search, "search", "", "Match title or description")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filter.Difficulty, "difficulty", "", "Filter by difficulty")
	cmd.Flags().StringVar(&filter.CuisineType, "cuisine", "", "Filter by cuisine type")
	cmd.Flags().StringVar(&filter.Dietary, "dietary", "", "Veg or Non-Veg")
	cmd.Flags().StringVar(&filter.SortBy, "sort", "", "newest, title, prepTime or rating")
	return cmd
}

func newRecipesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, err := a.client.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printRecipe(recipe)
		},
	}
}

// recipeFlags binds the editable recipe fields to command flags
type recipeFlags struct {
	file, image string

	title, description, category, difficulty, cuisine, dietary, imageURL string

	prepTime, cookTime, servings, rating int

	calories float64

	ingredients, instructions []string
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.file, "file", "", "Read the recipe from a JSON file")
	fl.StringVar(&f.image, "image", "", "Attach an image (max 5MB)")
	fl.StringVar(&f.title, "title", "", "Title")
	fl.StringVar(&f.description, "description", "", "Description")
	fl.StringVar(&f.category, "category", "", strings.Join(models.Categories, ", "))
	fl.StringVar(&f.difficulty, "difficulty", "", strings.Join(models.Difficulties, ", "))
	fl.StringVar(&f.cuisine, "cuisine", "", strings.Join(models.Cuisines, ", "))
	fl.StringVar(&f.dietary, "dietary", "", strings.Join(models.Dietaries, ", "))
	fl.StringVar(&f.imageURL, "image-url", "", "Image URL")
	fl.IntVar(&f.prepTime, "prep", 0, "Prep time in minutes")
	fl.IntVar(&f.cookTime, "cook", 0, "Cook time in minutes")
	fl.IntVar(&f.servings, "servings", 0, "Servings")
	fl.IntVar(&f.rating, "rating", 0, "Rating from 1 to 5")
	fl.Float64Var(&f.calories, "calories", 0, "Calories")
	fl.StringArrayVar(&f.ingredients, "ingredient", nil, `Ingredient as "quantity|unit|item", repeatable`)
	fl.StringArrayVar(&f.instructions, "step", nil, "Instruction step, repeatable")
}

func parseIngredients(values []string) (models.Ingredients, error) {
	out := models.Ingredients{}
	for _, v := range values {
		parts := strings.SplitN(v, "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("ingredient %q must look like quantity|unit|item", v)
		}
		out = append(out, models.Ingredient{
			Quantity: strings.TrimSpace(parts[0]),
			Unit:     strings.TrimSpace(parts[1]),
			Item:     strings.TrimSpace(parts[2]),
		})
	}
	return out, nil
}

func parseSteps(values []string) models.Instructions {
	out := models.Instructions{}
	for i, v := range values {
		out = append(out, models.Instruction{StepNumber: i + 1, Description: strings.TrimSpace(v)})
	}
	return out
}

func (f *recipeFlags) loadImage() (*client.Image, error) {
	if f.image == "" {
		return nil, nil
	}
	return client.LoadImage(f.image)
}

func readJSONFile(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (f *recipeFlags) createRequest(cmd *cobra.Command) (*types.CreateRecipeRequest, error) {
	req := &types.CreateRecipeRequest{}
	if f.file != "" {
		if err := readJSONFile(f.file, req); err != nil {
			return nil, err
		}
	}
	changed := cmd.Flags().Changed
	if changed("title") {
		req.Title = client.Sanitize(f.title)
	}
	if changed("description") {
		req.Description = client.Sanitize(f.description)
	}
	if changed("category") {
		req.Category = f.category
	}
	if changed("difficulty") {
		req.Difficulty = f.difficulty
	}
	if changed("cuisine") {
		req.CuisineType = f.cuisine
	}
	if changed("dietary") {
		req.Dietary = f.dietary
	}
	if changed("image-url") {
		req.ImageURL = f.imageURL
	}
	if changed("prep") {
		req.PrepTime = f.prepTime
	}
	if changed("cook") {
		req.CookTime = f.cookTime
	}
	if changed("servings") {
		req.Servings = f.servings
	}
	if changed("rating") {
		req.Rating = f.rating
	}
	if changed("calories") {
		calories := f.calories
		req.Calories = &calories
	}
	if changed("ingredient") {
		ingredients, err := parseIngredients(f.ingredients)
		if err != nil {
			return nil, err
		}
		req.Ingredients = ingredients
	}
	if changed("step") {
		req.Instructions = parseSteps(f.instructions)
	}
	return req, nil
}

func (f *recipeFlags) updateRequest(cmd *cobra.Command) (*types.UpdateRecipeRequest, error) {
	req := &types.UpdateRecipeRequest{}
	if f.file != "" {
		if err := readJSONFile(f.file, req); err != nil {
			return nil, err
		}
	}
	changed := cmd.Flags().Changed
	str := func(flag, value string, dst **string) {
		if changed(flag) {
			v := value
			*dst = &v
		}
	}
	num := func(flag string, value int, dst **int) {
		if changed(flag) {
			v := value
			*dst = &v
		}
	}
	str("title", client.Sanitize(f.title), &req.Title)
	str("description", client.Sanitize(f.description), &req.Description)
	str("category", f.category, &req.Category)
	str("difficulty", f.difficulty, &req.Difficulty)
	str("cuisine", f.cuisine, &req.CuisineType)
	str("dietary", f.dietary, &req.Dietary)
	str("image-url", f.imageURL, &req.ImageURL)
	num("prep", f.prepTime, &req.PrepTime)
	num("cook", f.cookTime, &req.CookTime)
	num("servings", f.servings, &req.Servings)
	num("rating", f.rating, &req.Rating)
	if changed("calories") {
		calories := f.calories
		req.Calories = &calories
	}
	if changed("ingredient") {
		ingredients, err := parseIngredients(f.ingredients)
		if err != nil {
			return nil, err
		}
		req.Ingredients = &ingredients
	}
	if changed("step") {
		steps := parseSteps(f.instructions)
		req.Instructions = &steps
	}
	return req, nil
}

func newRecipesCreateCmd(a *app) *cobra.Command {
	flags := &recipeFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a recipe from flags or a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.createRequest(cmd)
			if err != nil {
				return err
			}
			if err := client.CheckRequired(req); err != nil {
				return err
			}
			image, err := flags.loadImage()
			if err != nil {
				return err
			}
			recipe, err := a.client.CreateRecipe(cmd.Context(), req, image)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Recipe created successfully!")
			return a.printRecipe(recipe)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRecipesEditCmd(a *app) *cobra.Command {
	flags := &recipeFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change some fields of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.updateRequest(cmd)
			if err != nil {
				return err
			}
			image, err := flags.loadImage()
			if err != nil {
				return err
			}
			if req.IsEmpty() && image == nil {
				return fmt.Errorf("nothing to change")
			}
			recipe, err := a.client.UpdateRecipe(cmd.Context(), args[0], req, image)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Recipe updated successfully!")
			return a.printRecipe(recipe)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRecipesDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !a.confirm("Are you sure you want to delete this recipe?") {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if err := a.client.DeleteRecipe(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Recipe deleted successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > models.MaxRating {
		rating = models.MaxRating
	}
	return strings.Repeat("*", rating) + strings.Repeat(".", models.MaxRating-rating)
}

func (a *app) printRecipe(r *models.Recipe) error {
	if a.jsonOut {
		return a.printJSON(r)
	}
	fmt.Fprintf(a.out, "%s  [%s]\n", r.Title, stars(r.Rating))
	if r.Description != "" {
		fmt.Fprintf(a.out, "%s\n", r.Description)
	}
	fmt.Fprintf(a.out, "\nID:         %s\n", r.ID)
	fmt.Fprintf(a.out, "Category:   %s\n", r.Category)
	fmt.Fprintf(a.out, "Difficulty: %s\n", r.Difficulty)
	fmt.Fprintf(a.out, "Cuisine:    %s (%s)\n", r.CuisineType, r.Dietary)
	fmt.Fprintf(a.out, "Time:       %d min prep, %d min cook\n", r.PrepTime, r.CookTime)
	fmt.Fprintf(a.out, "Servings:   %d\n", r.Servings)
	if r.Calories != nil {
		fmt.Fprintf(a.out, "Calories:   %g\n", *r.Calories)
	}
	fmt.Fprintf(a.out, "Image:      %s\n", r.ImageURL)

	if len(r.Ingredients) > 0 {
		fmt.Fprintln(a.out, "\nIngredients:")
		for _, in := range r.Ingredients {
			fmt.Fprintf(a.out, "  - %s\n", strings.TrimSpace(strings.Join([]string{in.Quantity, in.Unit, in.Item}, " ")))
		}
	}
	if len(r.Instructions) > 0 {
		fmt.Fprintln(a.out, "\nInstructions:")
		for _, step := range r.Instructions {
			fmt.Fprintf(a.out, "  %d. %s\n", step.StepNumber, step.Description)
		}
	}
	return nil
}
