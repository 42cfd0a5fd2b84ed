package model

import (
	"go.uber.org/zap"

	"github.com/vallaskolan/careschedule/internal/solver"
)

// scheduleBuilder lowers one week's inputs into a solver model: the dense
// decision-variable arena, the hard constraint families and the soft
// objective. A variable (student, staff, tick) set true means that staff
// member is the carer for that student at that tick.
type scheduleBuilder struct {
	model        *solver.Model
	grid         TimeGrid
	indexer      Indexer
	demand       DemandModel
	availability AvailabilityModel
	students     []Student
	staff        []Staff
	logger       *zap.Logger

	required    [][]Tick        // required ticks per student, sorted
	requiredSet []map[Tick]bool // membership view of required
}

func newScheduleBuilder(
	grid TimeGrid,
	indexer Indexer,
	demand DemandModel,
	availability AvailabilityModel,
	students []Student,
	staff []Staff,
	logger *zap.Logger,
) *scheduleBuilder {
	builder := &scheduleBuilder{
		model:        solver.NewModel(),
		grid:         grid,
		indexer:      indexer,
		demand:       demand,
		availability: availability,
		students:     students,
		staff:        staff,
		logger:       logger,
		required:     make([][]Tick, len(students)),
		requiredSet:  make([]map[Tick]bool, len(students)),
	}

	for i, student := range students {
		ticks := demand.RequiredTicks(student)
		builder.required[i] = ticks
		builder.requiredSet[i] = make(map[Tick]bool, len(ticks))
		for _, tick := range ticks {
			builder.requiredSet[i][tick] = true
		}
	}

	builder.model.Reserve(indexer.Size())

	return builder
}

func (b *scheduleBuilder) variable(student, staff int, tick Tick) solver.Var {
	return b.indexer.Index(student, staff, b.grid.Ordinal(tick))
}

// studentTerms returns unit terms over every staff variable of one
// (student, tick) pair.
func (b *scheduleBuilder) studentTerms(student int, tick Tick) []solver.Term {
	terms := make([]solver.Term, len(b.staff))
	for j := range b.staff {
		terms[j] = solver.Term{Var: b.variable(student, j, tick), Weight: 1}
	}
	return terms
}

// addHardConstraints adds every family that must hold in any accepted
// solution. The families are simultaneous; the order only structures the
// trace.
func (b *scheduleBuilder) addHardConstraints() {
	before := b.model.Constraints()
	for _, family := range []struct {
		name string
		add  func()
	}{
		{"coverage", b.addCoverage},
		{"certification_match", b.addCertificationMatch},
		{"double_staffing", b.addDoubleStaffing},
		{"staff_availability", b.addStaffAvailability},
		{"weekly_hour_cap", b.addWeeklyHourCap},
		{"no_overlap", b.addNoOverlap},
	} {
		family.add()
		total := b.model.Constraints()
		b.logger.Debug("hard constraint family added",
			zap.String("family", family.name),
			zap.Int("constraints", total-before))
		before = total
	}
}

// addCoverage requires exactly one carer per required tick outside class
// time and at least one inside it (the teacher is separately present during
// class). Double-staffing students are covered by addDoubleStaffing instead.
func (b *scheduleBuilder) addCoverage() {
	for i, student := range b.students {
		if student.RequiresDoubleStaffing {
			continue
		}
		for _, tick := range b.required[i] {
			terms := b.studentTerms(i, tick)
			if b.grid.IsClassTime(tick) {
				b.model.AddLinear(terms, solver.GreaterOrEqual, 1)
			} else {
				b.model.AddLinear(terms, solver.Equal, 1)
			}
		}
	}
}

// addCertificationMatch gates assignments on care requirements: a
// single-carer student may only be assigned qualified staff; a
// double-staffing student needs at least one qualified carer of the two.
func (b *scheduleBuilder) addCertificationMatch() {
	for i, student := range b.students {
		if !student.HasCareNeeds || len(student.CareRequirements) == 0 {
			continue
		}

		qualified := make([]int, 0, len(b.staff))
		for j, member := range b.staff {
			if member.Covers(student.CareRequirements) {
				qualified = append(qualified, j)
			}
		}

		if len(qualified) == 0 {
			// Leaving the tick unconstrained mirrors coverage becoming
			// infeasible through the other families; the diagnosis names it.
			b.logger.Warn("no staff qualified for care needs",
				zap.String("student", student.FullName()),
				zap.Any("requirements", student.CareRequirements))
			continue
		}

		if student.RequiresDoubleStaffing {
			for _, tick := range b.required[i] {
				terms := make([]solver.Term, len(qualified))
				for q, j := range qualified {
					terms[q] = solver.Term{Var: b.variable(i, j, tick), Weight: 1}
				}
				b.model.AddLinear(terms, solver.GreaterOrEqual, 1)
			}
			continue
		}

		qualifiedSet := make(map[int]bool, len(qualified))
		for _, j := range qualified {
			qualifiedSet[j] = true
		}
		for _, tick := range b.required[i] {
			for j := range b.staff {
				if !qualifiedSet[j] {
					b.model.Forbid(b.variable(i, j, tick))
				}
			}
		}
	}
}

// addDoubleStaffing requires exactly two simultaneous carers for students
// flagged for double staffing, at every required tick.
func (b *scheduleBuilder) addDoubleStaffing() {
	for i, student := range b.students {
		if !student.RequiresDoubleStaffing {
			continue
		}
		if len(b.staff) < 2 {
			b.logger.Warn("fewer than two staff for double-staffing student",
				zap.String("student", student.FullName()),
				zap.Int("staff", len(b.staff)))
		}
		for _, tick := range b.required[i] {
			b.model.AddLinear(b.studentTerms(i, tick), solver.Equal, 2)
		}
	}
}

// addStaffAvailability forces every variable of an off-duty or absent
// (staff, tick) pair to false. Eligibility is enforced here, never by
// omitting variables.
func (b *scheduleBuilder) addStaffAvailability() {
	for j, member := range b.staff {
		if len(b.availability.WorkSchedule(member)) == 0 {
			b.logger.Warn("staff member has no work-hour rules this week",
				zap.String("staff", member.FullName()))
		}
		for _, tick := range b.grid.AllTicks() {
			if b.availability.IsAvailable(member, tick) {
				continue
			}
			for i := range b.students {
				if b.requiredSet[i][tick] {
					b.model.Forbid(b.variable(i, j, tick))
				}
			}
		}
	}
}

// addWeeklyHourCap bounds every staff member's assigned time at 40 hours.
func (b *scheduleBuilder) addWeeklyHourCap() {
	for j := range b.staff {
		terms := make([]solver.Term, 0)
		for i := range b.students {
			for _, tick := range b.required[i] {
				terms = append(terms, solver.Term{Var: b.variable(i, j, tick), Weight: TickMinutes})
			}
		}
		if len(terms) > 0 {
			b.model.AddLinear(terms, solver.LessOrEqual, MaxWeeklyMinutes)
		}
	}
}

// addNoOverlap keeps a staff member with at most one student per tick.
func (b *scheduleBuilder) addNoOverlap() {
	for j := range b.staff {
		for _, tick := range b.grid.AllTicks() {
			terms := make([]solver.Term, 0, len(b.students))
			for i := range b.students {
				if b.requiredSet[i][tick] {
					terms = append(terms, solver.Term{Var: b.variable(i, j, tick), Weight: 1})
				}
			}
			if len(terms) > 1 {
				b.model.AddLinear(terms, solver.LessOrEqual, 1)
			}
		}
	}
}
