package soma

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahoin001/soma/internal/model"
	"github.com/ahoin001/soma/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show goals and manage local micronutrient targets",
}

var (
	goalMicroValue float64
	goalMicroMode  string
)

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective targets (server goals merged with local micro goals)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			serverTargets, err := client.FetchTargets(cmd.Context())
			if err != nil {
				return err
			}
			localMicros, err := service.ListMicroGoals(sqldb)
			if err != nil {
				return err
			}
			targets := service.ResolveTargets(serverTargets, localMicros)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calories: %d\n", targets.CaloriesGoal)
			fmt.Fprintf(out, "Carbs: %.0f g | Protein: %.0f g | Fat: %.0f g\n",
				targets.CarbsGoalG, targets.ProteinGoalG, targets.FatGoalG)
			for _, key := range microKeysInOrder(targets) {
				entry := targets.Micros[key]
				fmt.Fprintf(out, "%s: %.0f (%s)\n", entry.Key, entry.Value, entry.Mode)
			}
			return nil
		})
	},
}

var goalMicroCmd = &cobra.Command{
	Use:   "micro",
	Short: "Manage local-only micronutrient goals and limits",
}

var goalMicroSetCmd = &cobra.Command{
	Use:   "set <nutrient>",
	Short: "Set a micronutrient target, e.g. soma goal micro set sodium --value 2000 --mode limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetMicroGoal(sqldb, service.SetMicroGoalInput{
				Key:   args[0],
				Value: goalMicroValue,
				Mode:  goalMicroMode,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s %s to %.0f\n", args[0], goalMicroMode, goalMicroValue)
			return nil
		})
	},
}

var goalMicroRmCmd = &cobra.Command{
	Use:   "rm <nutrient>",
	Short: "Remove a micronutrient target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveMicroGoal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s target\n", args[0])
			return nil
		})
	},
}

var goalMicroListCmd = &cobra.Command{
	Use:   "list",
	Short: "List local micronutrient targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.ListMicroGoals(sqldb)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No micronutrient targets set")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f (%s)\n", e.Key, e.Value, e.Mode)
			}
			return nil
		})
	},
}

func microKeysInOrder(targets service.Targets) []model.MicroKey {
	keys := make([]model.MicroKey, 0, len(targets.Micros))
	for _, key := range model.MicroKeys {
		if _, ok := targets.Micros[key]; ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalShowCmd, goalMicroCmd)
	goalMicroCmd.AddCommand(goalMicroSetCmd, goalMicroRmCmd, goalMicroListCmd)

	goalMicroSetCmd.Flags().Float64Var(&goalMicroValue, "value", 0, "Target value (fixed unit per nutrient)")
	goalMicroSetCmd.Flags().StringVar(&goalMicroMode, "mode", "limit", "goal (meet or exceed) or limit (stay under)")
}
