package soma

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahoin001/soma/internal/catalog"
	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
	"github.com/ahoin001/soma/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manage the food diary",
}

var (
	logQty     float64
	logServing string
	logMeal    string
	logDate    string
	logMult    float64
)

var logAddCmd = &cobra.Command{
	Use:   "add <food-id>",
	Short: "Track a food (optimistic; rolled back if the sync fails)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if logQty <= 0 {
			return fmt.Errorf("--qty must be > 0")
		}
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			food, options, err := loadFoodWithServings(ctx, sqldb, client, args[0])
			if err != nil {
				return err
			}
			option := options[0]
			if logServing != "" {
				found, ok := service.FindServing(options, logServing)
				if !ok {
					return fmt.Errorf("unknown serving %q for %s", logServing, food.Name)
				}
				option = found
			}
			meal, err := resolveMealSlot(sqldb, logMeal)
			if err != nil {
				return err
			}

			st := store.New(client, newLogger())
			item, err := st.Track(ctx, *food, logQty, option, meal)
			if err != nil {
				return err
			}
			if err := service.TouchFoodUsage(sqldb, food.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s ×%.2g): %d kcal | C %.0fg P %.0fg F %.0fg\n",
				item.Name, item.Portion, logQty, item.Calories, item.CarbsG, item.ProteinG, item.FatG)
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the day's diary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			st, date, err := loadDayStore(cmd.Context(), client)
			if err != nil {
				return err
			}
			items := st.Items()
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries for %s\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entries for %s:\n", date)
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %-24s %-10s ×%.2f  %d kcal\n",
					it.RemoteID, it.Name, it.Meal, it.Multiplier, it.Calories)
			}
			return nil
		})
	},
}

var logRemoveCmd = &cobra.Command{
	Use:   "rm <entry-id>",
	Short: "Remove a diary entry (restored in place if the sync fails)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			st, _, err := loadDayStore(cmd.Context(), client)
			if err != nil {
				return err
			}
			if err := st.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", args[0])
			return nil
		})
	},
}

var logEditCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Change an entry's quantity multiplier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if logMult < 0 {
			return fmt.Errorf("--multiplier must be >= 0")
		}
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			st, _, err := loadDayStore(cmd.Context(), client)
			if err != nil {
				return err
			}
			item, err := st.EditMultiplier(cmd.Context(), args[0], logMult)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: ×%.2f → %d kcal\n", item.Name, item.Multiplier, item.Calories)
			return nil
		})
	},
}

var logUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Remove the most recently tracked entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			st, date, err := loadDayStore(cmd.Context(), client)
			if err != nil {
				return err
			}
			undone, err := st.UndoLast(cmd.Context())
			if err != nil {
				return err
			}
			if !undone {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to undo for %s\n", date)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Undid last entry")
			return nil
		})
	},
}

// loadFoodWithServings resolves a food cache-first, falling back to a
// concurrent catalog fetch of the food and its custom servings, and builds
// the serving option set from the override-adjusted food. A failed
// custom-servings fetch degrades to the base/weight options rather than
// failing the log.
func loadFoodWithServings(ctx context.Context, sqldb *sql.DB, client *catalog.Client, foodID string) (*model.FoodItem, []model.ServingOption, error) {
	food, err := service.GetEffectiveFood(sqldb, foodID)
	if err != nil {
		return nil, nil, err
	}
	if food != nil {
		customs, err := client.FetchFoodServings(ctx, foodID)
		if err != nil {
			customs = nil
		}
		return food, service.ServingSet(*food, customs), nil
	}

	fetched, customs, err := client.FetchFoodWithServings(ctx, foodID)
	if err != nil {
		return nil, nil, err
	}
	if err := service.SaveFood(sqldb, fetched); err != nil {
		return nil, nil, err
	}
	override, err := service.GetFoodOverride(sqldb, foodID)
	if err != nil {
		return nil, nil, err
	}
	effective := service.ResolveFood(fetched, override)
	return &effective, service.ServingSet(effective, customs), nil
}

func loadDayStore(ctx context.Context, client *catalog.Client) (*store.NutritionStore, string, error) {
	date, err := parseDateOrToday(logDate)
	if err != nil {
		return nil, "", err
	}
	items, err := client.FetchDayLog(ctx, date)
	if err != nil {
		return nil, "", err
	}
	st := store.New(client, newLogger())
	st.Hydrate(items)
	return st, date, nil
}

func resolveMealSlot(sqldb *sql.DB, slot string) (string, error) {
	if slot == "" {
		configured, ok, err := service.GetConfig(sqldb, service.ConfigDefaultMealSlot)
		if err != nil {
			return "", err
		}
		if ok {
			slot = configured
		} else {
			slot = "snacks"
		}
	}
	exists, err := service.MealSlotExists(sqldb, slot)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("unknown meal slot %q", slot)
	}
	return slot, nil
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logRemoveCmd, logEditCmd, logUndoCmd)

	logAddCmd.Flags().Float64Var(&logQty, "qty", 1, "Quantity of the selected serving")
	logAddCmd.Flags().StringVar(&logServing, "serving", "", "Serving option id or label (default the food's base portion)")
	logAddCmd.Flags().StringVar(&logMeal, "meal", "", "Meal slot (default from config, else snacks)")

	for _, c := range []*cobra.Command{logListCmd, logRemoveCmd, logEditCmd, logUndoCmd} {
		c.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	logEditCmd.Flags().Float64Var(&logMult, "multiplier", 1, "New quantity multiplier")
}
