package soma

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "soma",
	Short: "soma tracks food, macros, and workouts from your terminal",
	Long:  "soma is a nutrition and fitness tracking CLI: a food diary with optimistic sync against the soma catalog, macro and micronutrient goals, serving-size resolution, and workout template editing.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local SQLite database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
