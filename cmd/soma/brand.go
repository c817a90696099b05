package soma

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Browse and create catalog brands",
}

var brandImageURL string

var brandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			brands, err := client.FetchBrands(cmd.Context())
			if err != nil {
				return err
			}
			if len(brands) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No brands")
				return nil
			}
			for _, b := range brands {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", b.ID, b.Name)
			}
			return nil
		})
	},
}

var brandAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a catalog brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			created, err := client.CreateBrand(cmd.Context(), args[0], brandImageURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created brand %s (%s)\n", created.Name, created.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(brandCmd)
	brandCmd.AddCommand(brandListCmd, brandAddCmd)

	brandAddCmd.Flags().StringVar(&brandImageURL, "image-url", "", "Brand image URL")
}
