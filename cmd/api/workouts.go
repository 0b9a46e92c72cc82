package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
)

var workoutsCmd = &cobra.Command{
	Use:   "workouts",
	Short: "List stored workouts and their IDs",
	Args:  cobra.NoArgs,
	RunE:  runWorkouts,
}

func init() {
	rootCmd.AddCommand(workoutsCmd)
}

func runWorkouts(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	workouts, err := services.NewWorkoutService(a.repo).ListWorkouts(cmd.Context())
	if err != nil {
		return err
	}
	return printWorkouts(cmd.OutOrStdout(), workouts)
}

func printWorkouts(out io.Writer, workouts []domain.Workout) error {
	if len(workouts) == 0 {
		_, err := fmt.Fprintln(out, "No workouts stored")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSECTIONS")
	for _, w := range workouts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", w.ID, w.Name, w.Type, len(w.Sections))
	}
	return tw.Flush()
}
