package soma

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahoin001/soma/internal/catalog"
	"github.com/ahoin001/soma/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search and manage catalog foods",
}

var (
	foodSearchLimit int
	foodName        string
	foodPortion     string
	foodGrams       float64
	foodCalories    int
	foodCarbs       float64
	foodProtein     float64
	foodFat         float64
)

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the food catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			searcher := &catalog.Searcher{Client: client, Limit: foodSearchLimit}
			foods, err := searcher.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No foods found")
				return nil
			}
			for _, f := range foods {
				label := f.Name
				if f.Brand != "" {
					label = f.Brand + " " + f.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-32s %s, %d kcal\n", f.ID, label, f.Portion, f.Calories)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <food-id>",
	Short: "Show a food's nutrition, macro split, and serving options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			food, options, err := loadFoodWithServings(cmd.Context(), sqldb, client, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s", food.Name)
			if food.Brand != "" {
				fmt.Fprintf(out, " (%s)", food.Brand)
			}
			fmt.Fprintf(out, "\nPer %s: %d kcal | C %.1fg P %.1fg F %.1fg\n",
				food.Portion, food.Calories, food.CarbsG, food.ProteinG, food.FatG)
			pct := service.DeriveMacroPercents(food.CarbsG, food.ProteinG, food.FatG)
			fmt.Fprintf(out, "Macro split: C %.0f%% / P %.0f%% / F %.0f%%\n", pct.CarbsPct, pct.ProteinPct, pct.FatPct)
			for key, v := range food.Micros {
				fmt.Fprintf(out, "%s: %.1f\n", key, v)
			}
			fmt.Fprintln(out, "Servings:")
			for _, o := range options {
				if o.GramsPer > 0 {
					fmt.Fprintf(out, "  %-8s %-16s %.1f g\n", o.ID, o.Label, o.GramsPer)
				} else {
					fmt.Fprintf(out, "  %-8s %-16s\n", o.ID, o.Label)
				}
			}
			return nil
		})
	},
}

var foodEditCmd = &cobra.Command{
	Use:   "edit <food-id>",
	Short: "Push an admin edit of a catalog food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			food, err := client.FetchFood(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				food.Name = foodName
			}
			if cmd.Flags().Changed("portion") {
				food.Portion = foodPortion
			}
			if cmd.Flags().Changed("grams") {
				food.PortionGrams = foodGrams
			}
			if cmd.Flags().Changed("calories") {
				food.Calories = foodCalories
			}
			if cmd.Flags().Changed("carbs") {
				food.CarbsG = foodCarbs
			}
			if cmd.Flags().Changed("protein") {
				food.ProteinG = foodProtein
			}
			if cmd.Flags().Changed("fat") {
				food.FatG = foodFat
			}
			updated, err := client.UpdateFoodMaster(cmd.Context(), food)
			if err != nil {
				return err
			}
			if err := service.SaveFood(sqldb, updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Name)
			return nil
		})
	},
}

var foodOverrideCmd = &cobra.Command{
	Use:   "override <food-id>",
	Short: "Set a local-only correction for a food (never pushed to the catalog)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			in := service.SetFoodOverrideInput{FoodID: args[0]}
			if cmd.Flags().Changed("portion") {
				in.Portion = &foodPortion
			}
			if cmd.Flags().Changed("grams") {
				in.PortionGrams = &foodGrams
			}
			if cmd.Flags().Changed("calories") {
				in.Calories = &foodCalories
			}
			if cmd.Flags().Changed("carbs") {
				in.CarbsG = &foodCarbs
			}
			if cmd.Flags().Changed("protein") {
				in.ProteinG = &foodProtein
			}
			if cmd.Flags().Changed("fat") {
				in.FatG = &foodFat
			}
			if err := service.SetFoodOverride(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Override saved for %s\n", args[0])
			return nil
		})
	},
}

var foodOverrideRmCmd = &cobra.Command{
	Use:   "override-rm <food-id>",
	Short: "Remove a local food correction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveFoodOverride(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Override removed for %s\n", args[0])
			return nil
		})
	},
}

var foodRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List locally cached foods, most used first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListFoods(sqldb, service.ListFoodsFilter{Limit: foodSearchLimit})
			if err != nil {
				return err
			}
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cached foods")
				return nil
			}
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-32s %s, %d kcal\n", f.ID, f.Name, f.Portion, f.Calories)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodShowCmd, foodEditCmd, foodOverrideCmd, foodOverrideRmCmd, foodRecentCmd)

	foodSearchCmd.Flags().IntVar(&foodSearchLimit, "limit", 25, "Maximum results")
	foodRecentCmd.Flags().IntVar(&foodSearchLimit, "limit", 25, "Maximum results")

	foodEditCmd.Flags().StringVar(&foodName, "name", "", "Display name")
	for _, c := range []*cobra.Command{foodEditCmd, foodOverrideCmd} {
		c.Flags().StringVar(&foodPortion, "portion", "", "Base portion label, e.g. '1 cup'")
		c.Flags().Float64Var(&foodGrams, "grams", 0, "Base portion weight in grams")
		c.Flags().IntVar(&foodCalories, "calories", 0, "Calories per base portion")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbs grams per base portion")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per base portion")
		c.Flags().Float64Var(&foodFat, "fat", 0, "Fat grams per base portion")
	}
}
