package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vallaskolan/careschedule/internal/model"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a generated schedule against its week snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			scheduleFile, _ := cmd.Flags().GetString("schedule")

			snapshot, err := model.SnapshotFromJSON(file)
			if err != nil {
				return fmt.Errorf("cannot read snapshot: %w", err)
			}

			data, err := os.ReadFile(scheduleFile)
			if err != nil {
				return fmt.Errorf("cannot read schedule: %w", err)
			}
			var result model.ScheduleResult
			if err := json.Unmarshal(data, &result); err != nil {
				return fmt.Errorf("cannot parse schedule: %w", err)
			}

			scheduler := model.NewScheduler(solvers[app.cfg.Solver](), app.cfg.MaxSolveTime(), app.logger)
			ok := scheduler.Verify(
				&result,
				snapshot.Students,
				snapshot.Staff,
				snapshot.WeekNumber,
				snapshot.Year,
				snapshot.Absences,
			)

			if !ok {
				app.logger.Warn("schedule failed verification",
					zap.String("schedule", scheduleFile),
					zap.Int("week", snapshot.WeekNumber))
				fmt.Println("FAIL: schedule violates the week's hard constraints")
				os.Exit(1)
			}

			fmt.Printf("OK: %d assignments satisfy every hard constraint\n", len(result.Assignments))
			return nil
		},
	}

	cmd.Flags().String("file", "", "Path to the week snapshot JSON file")
	cmd.Flags().String("schedule", "", "Path to the schedule JSON file to check")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("schedule")

	return cmd
}
