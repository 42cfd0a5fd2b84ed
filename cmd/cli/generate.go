package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vallaskolan/careschedule/internal/model"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a schedule for the week described by a snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			outFile, _ := cmd.Flags().GetString("out")
			timeout, _ := cmd.Flags().GetInt("timeout")

			snapshot, err := model.SnapshotFromJSON(file)
			if err != nil {
				return fmt.Errorf("cannot read snapshot: %w", err)
			}

			budget := app.cfg.MaxSolveTime()
			if timeout > 0 {
				budget = time.Duration(timeout) * time.Second
			}

			scheduler := model.NewScheduler(solvers[app.cfg.Solver](), budget, app.logger)
			result, err := scheduler.CreateSchedule(
				snapshot.Students,
				snapshot.Staff,
				snapshot.WeekNumber,
				snapshot.Year,
				snapshot.Absences,
			)
			if err != nil {
				if schedErr, ok := model.AsSchedulingError(err); ok && len(schedErr.Causes) > 0 {
					fmt.Fprintf(os.Stderr, "Schedule generation failed: %v\n", schedErr.Message)
					for _, cause := range schedErr.Causes {
						fmt.Fprintf(os.Stderr, "  - %s\n", cause)
					}
					os.Exit(2)
				}
				return err
			}

			printSummary(result, &snapshot)

			output, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("cannot marshal schedule: %w", err)
			}
			if outFile == "" {
				fmt.Println(string(output))
			} else {
				if err := os.WriteFile(outFile, output, 0666); err != nil {
					return fmt.Errorf("cannot write output file: %w", err)
				}
				app.logger.Info("schedule written", zap.String("file", outFile))
			}
			return nil
		},
	}

	cmd.Flags().String("file", "", "Path to the week snapshot JSON file")
	cmd.Flags().String("out", "", "Path for the schedule JSON; if empty, it is written to the standard output")
	cmd.Flags().Int("timeout", 0, "Solve budget in seconds, overriding the configured value")
	cmd.MarkFlagRequired("file")

	return cmd
}

func printSummary(result *model.ScheduleResult, snapshot *model.WeekSnapshot) {
	fmt.Printf("\nSchedule for week %d/%d\n", result.WeekNumber, result.Year)
	fmt.Printf("Status:      %s\n", result.Status)
	fmt.Printf("Soft score:  %.1f\n", result.SoftScore)
	fmt.Printf("Solve time:  %v\n", result.SolveTime.Round(time.Millisecond))
	fmt.Printf("Assignments: %d\n\n", len(result.Assignments))

	names := lo.SliceToMap(snapshot.Staff, func(m model.Staff) (model.StaffID, string) { return m.ID, m.FullName() })
	perStaff := lo.GroupBy(result.Assignments, func(a model.Assignment) model.StaffID { return a.StaffID })
	for id, blocks := range perStaff {
		minutes := lo.SumBy(blocks, func(a model.Assignment) int { return int(a.End - a.Start) })
		fmt.Printf("  %-24s %2d blocks, %5.1f h\n", names[id], len(blocks), float64(minutes)/60)
	}
	fmt.Println()
}
