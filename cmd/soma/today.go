package soma

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahoin001/soma/internal/service"
)

var (
	todayDate string
	todayTop  string
	todayTopN int
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's intake, goal progress, and top sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			logDate = todayDate
			st, date, err := loadDayStore(cmd.Context(), client)
			if err != nil {
				return err
			}

			serverTargets, err := client.FetchTargets(cmd.Context())
			if err != nil {
				// goals are display-only here; an unreachable goal
				// endpoint should not hide the day's food
				serverTargets = service.Targets{}
			}
			localMicros, err := service.ListMicroGoals(sqldb)
			if err != nil {
				return err
			}
			targets := service.ResolveTargets(serverTargets, localMicros)

			summary := st.Summary(targets)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", date)
			fmt.Fprintf(out, "Eaten: %d kcal\n", summary.CaloriesEaten)
			if summary.CaloriesGoal > 0 {
				fmt.Fprintf(out, "Goal: %d kcal | Remaining: %d kcal\n", summary.CaloriesGoal, summary.CaloriesRemaining)
			} else {
				fmt.Fprintln(out, "Goal: not set")
			}
			for _, m := range []service.MacroProgress{summary.Carbs, summary.Protein, summary.Fat} {
				if m.GoalG > 0 {
					fmt.Fprintf(out, "%s: %.0f / %.0f g (%.0f%%)\n", m.Label, m.CurrentG, m.GoalG, m.Percent)
				} else {
					fmt.Fprintf(out, "%s: %.0f g\n", m.Label, m.CurrentG)
				}
			}
			for _, micro := range summary.Micros {
				if !micro.HasTarget {
					continue
				}
				entry := targets.Micros[micro.Key]
				status := ""
				switch {
				case service.OverLimit(entry, micro.Current):
					status = "  [over limit]"
				case service.GoalMet(entry, micro.Current):
					status = "  [goal met]"
				}
				fmt.Fprintf(out, "%s: %.0f / %.0f (%s)%s\n", micro.Key, micro.Current, micro.Target, micro.Mode, status)
			}

			if todayTop != "" {
				key, err := topSourceKey(todayTop)
				if err != nil {
					return err
				}
				sources := service.TopSources(st.Items(), key, todayTopN)
				fmt.Fprintf(out, "Top sources of %s:\n", todayTop)
				for i, s := range sources {
					fmt.Fprintf(out, "  %d. %-24s %.0f (%d entries)\n", i+1, s.Name, s.Amount, s.Entries)
				}
			}
			return nil
		})
	},
}

func topSourceKey(raw string) (service.NutrientKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "calories", "kcal":
		return service.KeyCalories, nil
	case "carbs", "carbs_g":
		return service.KeyCarbsG, nil
	case "protein", "protein_g":
		return service.KeyProteinG, nil
	case "fat", "fat_g":
		return service.KeyFatG, nil
	}
	if key, ok := service.ParseMicroKey(raw); ok {
		return service.NutrientKey(key), nil
	}
	return "", fmt.Errorf("unknown nutrient %q", raw)
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().StringVar(&todayTop, "top", "", "Show top sources for a nutrient (calories, carbs, protein, fat, sodium, ...)")
	todayCmd.Flags().IntVar(&todayTopN, "top-n", 5, "How many top sources to show")
}
