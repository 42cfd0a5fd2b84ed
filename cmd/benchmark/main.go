package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/vallaskolan/careschedule/internal/model"
	"github.com/vallaskolan/careschedule/internal/solver"
)

const (
	benchmarkWeek = 10
	benchmarkYear = 2026
	solveBudget   = 120 * time.Second
)

type CaseMetadata struct {
	Name     string
	Students int
	Staff    int
	Absences int
}

type BenchmarkResult struct {
	Case        CaseMetadata
	Duration    int64
	Status      model.SolverStatus
	Assignments int
	Objective   int
	SoftScore   float64
}

func main() {
	cases := getCases()
	results := make([]BenchmarkResult, 0, len(cases))

	scheduler := model.NewScheduler(solver.NewGophersatSolver(), solveBudget, zap.NewNop())

	for _, benchCase := range cases {
		fmt.Printf("Benchmarking case \"%v\" with %v students, %v staff and %v absences\n",
			benchCase.Name, benchCase.Students, benchCase.Staff, benchCase.Absences)

		results = append(results, measure(scheduler, benchCase))
	}

	toCsv(results)
}

func getCases() []CaseMetadata {
	return []CaseMetadata{
		{Name: "tiny", Students: 2, Staff: 3, Absences: 0},
		{Name: "small", Students: 4, Staff: 5, Absences: 1},
		{Name: "medium", Students: 8, Staff: 8, Absences: 2},
		{Name: "large", Students: 12, Staff: 12, Absences: 3},
		{Name: "full_unit", Students: 16, Staff: 15, Absences: 4},
	}
}

func measure(scheduler model.Scheduler, benchCase CaseMetadata) BenchmarkResult {
	students, staff, absences := syntheticWeek(benchCase)

	started := time.Now()
	result, err := scheduler.CreateSchedule(students, staff, benchmarkWeek, benchmarkYear, absences)
	duration := time.Since(started).Milliseconds()

	if err != nil {
		schedErr, ok := model.AsSchedulingError(err)
		if !ok {
			log.Fatalf("an error occurred while benchmarking case \"%v\": %v", benchCase.Name, err)
		}
		status := model.StatusError
		switch schedErr.Kind {
		case model.ErrorInfeasible:
			status = model.StatusInfeasible
		case model.ErrorTimeout:
			status = model.StatusTimeout
		}
		return BenchmarkResult{Case: benchCase, Duration: duration, Status: status}
	}

	return BenchmarkResult{
		Case:        benchCase,
		Duration:    duration,
		Status:      result.Status,
		Assignments: len(result.Assignments),
		Objective:   result.ObjectiveValue,
		SoftScore:   result.SoftScore,
	}
}

// syntheticWeek builds a deterministic week of the requested size. Every
// third student has care needs, every sixth requires double staffing, and
// staff alternate rotations so that availability differs between weeks.
func syntheticWeek(benchCase CaseMetadata) ([]model.Student, []model.Staff, []model.AbsencePeriod) {
	certifications := []model.Certification{"epilepsy", "diabetes", "tube_feeding"}
	from := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	staff := lo.RepeatBy(benchCase.Staff, func(i int) model.Staff {
		held := []model.Certification{certifications[i%len(certifications)]}
		if i%2 == 0 {
			held = append(held, certifications[(i+1)%len(certifications)])
		}
		return model.Staff{
			ID:             model.StaffID(fmt.Sprintf("staff-%02d", i)),
			FirstName:      fmt.Sprintf("Staff%02d", i),
			LastName:       "Bench",
			Role:           model.RoleAssistant,
			Certifications: held,
			WorkHours: lo.RepeatBy(model.Weekdays, func(weekday int) model.WorkHourRule {
				return model.WorkHourRule{
					Weekday:  weekday,
					Start:    7 * 60,
					End:      16*60 + 30,
					Rotation: i % 3,
				}
			}),
		}
	})

	students := lo.RepeatBy(benchCase.Students, func(i int) model.Student {
		student := model.Student{
			ID:        model.StudentID(fmt.Sprintf("student-%02d", i)),
			FirstName: fmt.Sprintf("Student%02d", i),
			LastName:  "Bench",
			Grade:     i%6 + 1,
			CareTimes: lo.RepeatBy(model.Weekdays, func(weekday int) model.CareTimeRule {
				return model.CareTimeRule{
					Weekday:   weekday,
					Start:     8 * 60,
					End:       15 * 60,
					ValidFrom: from,
				}
			}),
		}
		if i%3 == 0 {
			student.HasCareNeeds = true
			student.CareRequirements = []model.Certification{certifications[i%len(certifications)]}
		}
		if i%6 == 5 {
			student.RequiresDoubleStaffing = true
		}
		if i%2 == 0 {
			student.PreferredStaff = []model.StaffID{staff[i%len(staff)].ID}
		}
		return student
	})

	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	absences := lo.RepeatBy(benchCase.Absences, func(i int) model.AbsencePeriod {
		return model.AbsencePeriod{
			StaffID: staff[i%len(staff)].ID,
			Date:    monday.AddDate(0, 0, i%model.Weekdays),
			Reason:  "sick",
		}
	})

	return students, staff, absences
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Case", "Students", "Staff", "Absences", "Duration(ms)", "Status", "Assignments", "Objective", "SoftScore"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Case.Name,
			fmt.Sprintf("%d", result.Case.Students),
			fmt.Sprintf("%d", result.Case.Staff),
			fmt.Sprintf("%d", result.Case.Absences),
			fmt.Sprintf("%d", result.Duration),
			string(result.Status),
			fmt.Sprintf("%d", result.Assignments),
			fmt.Sprintf("%d", result.Objective),
			fmt.Sprintf("%.1f", result.SoftScore),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
