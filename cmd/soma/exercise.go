package soma

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahoin001/soma/internal/service"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage workout templates",
}

var (
	exerciseMuscle string
	exerciseSets   int
	exerciseReps   int
	exerciseNotes  string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a workout template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateExerciseTemplate(sqldb, service.ExerciseTemplateInput{
				Name:        args[0],
				MuscleGroup: exerciseMuscle,
				DefaultSets: exerciseSets,
				DefaultReps: exerciseReps,
				Notes:       exerciseNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise template %d\n", id)
			return nil
		})
	},
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workout templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			templates, err := service.ListExerciseTemplates(sqldb)
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exercise templates")
				return nil
			}
			for _, t := range templates {
				pushed := ""
				if t.RemoteID != "" {
					pushed = "  [pushed]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %-24s %-12s %dx%d%s\n",
					t.ID, t.Name, t.MuscleGroup, t.DefaultSets, t.DefaultReps, pushed)
			}
			return nil
		})
	},
}

var exerciseEditCmd = &cobra.Command{
	Use:   "edit <id> <name>",
	Short: "Update a workout template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise template id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateExerciseTemplate(sqldb, service.UpdateExerciseTemplateInput{
				ID: id,
				ExerciseTemplateInput: service.ExerciseTemplateInput{
					Name:        args[1],
					MuscleGroup: exerciseMuscle,
					DefaultSets: exerciseSets,
					DefaultReps: exerciseReps,
					Notes:       exerciseNotes,
				},
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated exercise template %d\n", id)
			return nil
		})
	},
}

var exerciseRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a workout template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise template id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteExerciseTemplate(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted exercise template %d\n", id)
			return nil
		})
	},
}

var exercisePushCmd = &cobra.Command{
	Use:   "push <id>",
	Short: "Push a workout template to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("exercise template id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			template, err := service.GetExerciseTemplate(sqldb, id)
			if err != nil {
				return err
			}
			if template == nil {
				return fmt.Errorf("exercise template %d not found", id)
			}
			if template.RemoteID != "" {
				return fmt.Errorf("exercise template %d already pushed as %s", id, template.RemoteID)
			}
			client, err := newClient(sqldb)
			if err != nil {
				return err
			}
			remoteID, err := client.CreateExercise(cmd.Context(), *template)
			if err != nil {
				return err
			}
			if err := service.MarkExercisePushed(sqldb, id, remoteID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s as %s\n", template.Name, remoteID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseEditCmd, exerciseRmCmd, exercisePushCmd)

	for _, c := range []*cobra.Command{exerciseAddCmd, exerciseEditCmd} {
		c.Flags().StringVar(&exerciseMuscle, "muscle", "", "Primary muscle group")
		c.Flags().IntVar(&exerciseSets, "sets", 3, "Default sets")
		c.Flags().IntVar(&exerciseReps, "reps", 10, "Default reps")
		c.Flags().StringVar(&exerciseNotes, "notes", "", "Notes")
	}
}
