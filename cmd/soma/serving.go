package soma

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var servingCmd = &cobra.Command{
	Use:   "serving",
	Short: "Manage a food's custom servings",
}

var (
	servingLabel string
	servingGrams float64
)

var servingAddCmd = &cobra.Command{
	Use:   "add <food-id>",
	Short: "Add a custom serving to a catalog food, e.g. --label '1 slice' --grams 28",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			created, err := client.CreateFoodServing(cmd.Context(), args[0], servingLabel, servingGrams)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added serving %s: %s = %.1f g\n", created.ID, created.Label, created.GramsPer)
			return nil
		})
	},
}

var servingListCmd = &cobra.Command{
	Use:   "list <food-id>",
	Short: "List a food's resolvable servings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			_, options, err := loadFoodWithServings(cmd.Context(), sqldb, client, args[0])
			if err != nil {
				return err
			}
			for _, o := range options {
				if o.GramsPer > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-20s %-8s %.1f g\n", o.ID, o.Label, o.Kind, o.GramsPer)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-20s %-8s\n", o.ID, o.Label, o.Kind)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(servingCmd)
	servingCmd.AddCommand(servingAddCmd, servingListCmd)

	servingAddCmd.Flags().StringVar(&servingLabel, "label", "", "Serving label, e.g. '1 slice'")
	servingAddCmd.Flags().Float64Var(&servingGrams, "grams", 0, "Gram weight of one serving")
}
