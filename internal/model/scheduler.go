package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/vallaskolan/careschedule/internal/solver"
)

// DefaultSolveTime is the wall-clock solve budget used when none is given.
const DefaultSolveTime = 60 * time.Second

// Scheduler turns one week's collaborator snapshots into a concrete
// per-timeslot assignment plan, and verifies decoded plans against the same
// week's constraints. The engine is stateless between calls and performs no
// I/O of its own.
type Scheduler interface {
	CreateSchedule(students []Student, staff []Staff, weekNumber, year int, absences []AbsencePeriod) (*ScheduleResult, error)
	Verify(result *ScheduleResult, students []Student, staff []Staff, weekNumber, year int, absences []AbsencePeriod) bool
}

func NewScheduler(backend solver.Solver, maxSolveTime time.Duration, logger *zap.Logger) Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxSolveTime <= 0 {
		maxSolveTime = DefaultSolveTime
	}
	return &careScheduler{
		backend:      backend,
		maxSolveTime: maxSolveTime,
		logger:       logger,
	}
}

type careScheduler struct {
	backend      solver.Solver
	maxSolveTime time.Duration
	logger       *zap.Logger
}

func (s *careScheduler) CreateSchedule(
	students []Student,
	staff []Staff,
	weekNumber, year int,
	absences []AbsencePeriod,
) (*ScheduleResult, error) {
	if len(students) == 0 {
		return nil, &SchedulingError{Kind: ErrorInvalidInput, Message: "no students provided"}
	}
	if len(staff) == 0 {
		return nil, &SchedulingError{Kind: ErrorInvalidInput, Message: "no staff provided"}
	}

	started := time.Now()

	grid := NewTimeGrid()
	demand := NewDemandModel(grid, weekNumber, year)
	availability := NewAvailabilityModel(demand.WeekStart(), weekNumber, absences)
	indexer := NewIndexer(len(students), len(staff), TicksPerWeek)

	builder := newScheduleBuilder(grid, indexer, demand, availability, students, staff, s.logger)

	totalRequired := lo.SumBy(builder.required, func(ticks []Tick) int { return len(ticks) })
	s.logger.Info("building schedule model",
		zap.Int("week", weekNumber),
		zap.Int("year", year),
		zap.Int("students", len(students)),
		zap.Int("staff", len(staff)),
		zap.Int("absences", len(absences)),
		zap.Int("required_ticks", totalRequired),
		zap.Int("variables", indexer.Size()))

	if totalRequired == 0 {
		// Nothing to cover: the empty plan is trivially optimal.
		return &ScheduleResult{
			ID:                 uuid.New(),
			WeekNumber:         weekNumber,
			Year:               year,
			Status:             StatusOptimal,
			HardConstraintsMet: true,
			SoftScore:          softScore(0),
			SolveTime:          time.Since(started),
			Assignments:        []Assignment{},
		}, nil
	}

	builder.addHardConstraints()
	builder.addSoftObjective()

	s.logger.Info("solving",
		zap.Int("constraints", builder.model.Constraints()),
		zap.Duration("budget", s.maxSolveTime))

	result, err := s.backend.Solve(builder.model, s.maxSolveTime)
	solveTime := time.Since(started)
	if err != nil {
		if errors.Is(err, solver.ErrInvalidModel) {
			return nil, &SchedulingError{Kind: ErrorModelInvalid, Message: "internal error in constraint setup", Err: err}
		}
		return nil, &SchedulingError{Kind: ErrorUnknown, Message: "solver backend failed", Err: err}
	}

	s.logger.Info("solver finished",
		zap.Stringer("status", result.Status),
		zap.Int("objective", result.Objective),
		zap.Duration("solve_time", solveTime))

	switch result.Status {
	case solver.StatusOptimal, solver.StatusFeasible:
		decoder := &solutionDecoder{grid: grid, indexer: indexer, students: students, staff: staff}
		assignments := decoder.decode(result, builder.required)

		status := StatusOptimal
		if result.Status == solver.StatusFeasible {
			status = StatusFeasible
		}

		s.logger.Info("schedule created", zap.Int("assignments", len(assignments)))

		return &ScheduleResult{
			ID:                 uuid.New(),
			WeekNumber:         weekNumber,
			Year:               year,
			Status:             status,
			ObjectiveValue:     result.Objective,
			SolveTime:          solveTime,
			HardConstraintsMet: result.Status == solver.StatusOptimal,
			SoftScore:          softScore(result.Objective),
			Assignments:        assignments,
		}, nil

	case solver.StatusInfeasible:
		return nil, &SchedulingError{
			Kind:    ErrorInfeasible,
			Message: "no feasible schedule exists",
			Causes:  builder.diagnoseInfeasibility(),
		}

	case solver.StatusTimeout:
		return nil, &SchedulingError{
			Kind:    ErrorTimeout,
			Message: fmt.Sprintf("no schedule found within %v", s.maxSolveTime),
		}

	default:
		return nil, &SchedulingError{
			Kind:    ErrorUnknown,
			Message: fmt.Sprintf("solver finished with status %q", result.Status),
		}
	}
}
