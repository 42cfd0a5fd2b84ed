package model

import (
	"go.uber.org/zap"

	"github.com/samber/lo"
)

// Verify replays one week's hard constraints against an already decoded
// plan. It reports true only when every assignment is well formed and every
// coverage, staffing, availability and workload rule holds. Soft preferences
// are not checked.
func (s *careScheduler) Verify(
	result *ScheduleResult,
	students []Student,
	staff []Staff,
	weekNumber, year int,
	absences []AbsencePeriod,
) bool {
	if result == nil {
		return false
	}

	grid := NewTimeGrid()
	demand := NewDemandModel(grid, weekNumber, year)
	availability := NewAvailabilityModel(demand.WeekStart(), weekNumber, absences)

	studentByID := lo.SliceToMap(students, func(st Student) (StudentID, Student) { return st.ID, st })
	staffByID := lo.SliceToMap(staff, func(m Staff) (StaffID, Staff) { return m.ID, m })

	required := make(map[StudentID]map[Tick]bool, len(students))
	for _, student := range students {
		ticks := demand.RequiredTicks(student)
		set := make(map[Tick]bool, len(ticks))
		for _, tick := range ticks {
			set[tick] = true
		}
		required[student.ID] = set
	}

	// Per-tick occupancy decoded back out of the merged blocks.
	type slot struct {
		student StudentID
		tick    Tick
	}
	carers := make(map[slot][]StaffID)
	load := make(map[StaffID]int)
	busy := make(map[StaffID]map[Tick]StudentID)

	for _, a := range result.Assignments {
		student, knownStudent := studentByID[a.StudentID]
		member, knownStaff := staffByID[a.StaffID]
		if !knownStudent || !knownStaff {
			s.logger.Warn("assignment references unknown collaborator",
				zap.String("student", string(a.StudentID)),
				zap.String("staff", string(a.StaffID)))
			return false
		}
		if a.Start >= a.End || a.Start%TickMinutes != 0 || a.End%TickMinutes != 0 {
			s.logger.Warn("assignment block is malformed",
				zap.Stringer("start", a.Start),
				zap.Stringer("end", a.End))
			return false
		}

		for start := a.Start; start < a.End; start += TickMinutes {
			tick := Tick{Weekday: a.Weekday, Start: start}

			if !required[student.ID][tick] {
				s.logger.Warn("assignment outside the student's care times",
					zap.String("student", student.FullName()),
					zap.Int("weekday", tick.Weekday),
					zap.Stringer("time", tick.Start))
				return false
			}
			if !availability.IsAvailable(member, tick) {
				s.logger.Warn("assigned staff member is not on duty",
					zap.String("staff", member.FullName()),
					zap.Int("weekday", tick.Weekday),
					zap.Stringer("time", tick.Start))
				return false
			}

			if busy[member.ID] == nil {
				busy[member.ID] = make(map[Tick]StudentID)
			}
			if other, taken := busy[member.ID][tick]; taken && other != student.ID {
				s.logger.Warn("staff member assigned to two students at once",
					zap.String("staff", member.FullName()),
					zap.Int("weekday", tick.Weekday),
					zap.Stringer("time", tick.Start))
				return false
			}
			busy[member.ID][tick] = student.ID

			key := slot{student: student.ID, tick: tick}
			if lo.Contains(carers[key], member.ID) {
				s.logger.Warn("overlapping assignment blocks for one pairing",
					zap.String("student", student.FullName()),
					zap.String("staff", member.FullName()))
				return false
			}
			carers[key] = append(carers[key], member.ID)
			load[member.ID] += TickMinutes
		}
	}

	for id, minutes := range load {
		if minutes > MaxWeeklyMinutes {
			s.logger.Warn("weekly hour cap exceeded",
				zap.String("staff", string(id)),
				zap.Int("minutes", minutes))
			return false
		}
	}

	for _, student := range students {
		anyQualified := student.HasCareNeeds && len(student.CareRequirements) > 0 &&
			lo.SomeBy(staff, func(m Staff) bool { return m.Covers(student.CareRequirements) })

		for tick := range required[student.ID] {
			assigned := carers[slot{student: student.ID, tick: tick}]

			switch {
			case student.RequiresDoubleStaffing:
				if len(assigned) != 2 {
					s.logger.Warn("double-staffing student lacks two carers",
						zap.String("student", student.FullName()),
						zap.Int("weekday", tick.Weekday),
						zap.Stringer("time", tick.Start))
					return false
				}
			case grid.IsClassTime(tick):
				if len(assigned) < 1 {
					s.logger.Warn("uncovered class-time tick",
						zap.String("student", student.FullName()),
						zap.Int("weekday", tick.Weekday),
						zap.Stringer("time", tick.Start))
					return false
				}
			default:
				if len(assigned) != 1 {
					s.logger.Warn("care-time tick not covered by exactly one carer",
						zap.String("student", student.FullName()),
						zap.Int("weekday", tick.Weekday),
						zap.Stringer("time", tick.Start),
						zap.Int("carers", len(assigned)))
					return false
				}
			}

			if anyQualified {
				covering := lo.CountBy(assigned, func(id StaffID) bool {
					return staffByID[id].Covers(student.CareRequirements)
				})
				if student.RequiresDoubleStaffing && covering < 1 {
					s.logger.Warn("no qualified carer in double-staffing pair",
						zap.String("student", student.FullName()))
					return false
				}
				if !student.RequiresDoubleStaffing && covering < len(assigned) {
					s.logger.Warn("unqualified carer assigned for care needs",
						zap.String("student", student.FullName()))
					return false
				}
			}
		}
	}

	return true
}
