package model

import (
	"time"
)

// DaySchedule is the working window selected for one weekday. The lunch
// window is exposed as data but not enforced anywhere.
type DaySchedule struct {
	Start      Minutes
	End        Minutes
	LunchStart *Minutes
	LunchEnd   *Minutes
}

// AvailabilityModel answers whether a staff member can be assigned at a tick,
// combining rotation-selected work hours with absence periods.
type AvailabilityModel interface {
	IsAvailable(staff Staff, tick Tick) bool
	// WorkSchedule returns the weekday -> working window mapping selected
	// for the target week's rotation parity.
	WorkSchedule(staff Staff) map[int]DaySchedule
}

func NewAvailabilityModel(weekStart time.Time, weekNumber int, absences []AbsencePeriod) AvailabilityModel {
	byStaff := make(map[StaffID][]AbsencePeriod)
	for _, absence := range absences {
		byStaff[absence.StaffID] = append(byStaff[absence.StaffID], absence)
	}

	return &rotationAvailability{
		weekStart: weekStart,
		parity:    weekNumber%2 + 1,
		absences:  byStaff,
		schedules: make(map[StaffID]map[int]DaySchedule),
	}
}

type rotationAvailability struct {
	weekStart time.Time
	parity    int // 1 or 2, matched against rotation tags
	absences  map[StaffID][]AbsencePeriod
	schedules map[StaffID]map[int]DaySchedule
}

func (a *rotationAvailability) WorkSchedule(staff Staff) map[int]DaySchedule {
	if schedule, ok := a.schedules[staff.ID]; ok {
		return schedule
	}

	selected := make(map[int]WorkHourRule)
	for _, rule := range staff.WorkHours {
		if rule.Rotation != 0 && rule.Rotation != a.parity {
			continue // Wrong week in rotation
		}
		// A rotation-specific rule wins over an every-week rule for the
		// same weekday.
		if previous, ok := selected[rule.Weekday]; ok && !(previous.Rotation == 0 && rule.Rotation != 0) {
			continue
		}
		selected[rule.Weekday] = rule
	}

	schedule := make(map[int]DaySchedule, len(selected))
	for weekday, rule := range selected {
		schedule[weekday] = DaySchedule{
			Start:      rule.Start,
			End:        rule.End,
			LunchStart: rule.LunchStart,
			LunchEnd:   rule.LunchEnd,
		}
	}

	a.schedules[staff.ID] = schedule
	return schedule
}

func (a *rotationAvailability) IsAvailable(staff Staff, tick Tick) bool {
	day, ok := a.WorkSchedule(staff)[tick.Weekday]
	if !ok {
		return false
	}
	if tick.Start < day.Start || tick.Start >= day.End {
		return false
	}

	date := a.weekStart.AddDate(0, 0, tick.Weekday)
	for _, absence := range a.absences[staff.ID] {
		if !sameDate(absence.Date, date) {
			continue
		}
		if absence.Start != nil && absence.End != nil {
			if tick.Start >= *absence.Start && tick.Start < *absence.End {
				return false
			}
			continue
		}
		return false // Full-day absence
	}

	return true
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
