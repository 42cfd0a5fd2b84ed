package model

import (
	"slices"
	"time"
)

// DemandModel expands every care-time rule valid for the target week into
// the concrete set of ticks during which a student must be covered.
type DemandModel interface {
	// RequiredTicks returns the student's required ticks for the week,
	// deduplicated and ordered by weekday then start time.
	RequiredTicks(student Student) []Tick
	// WeekStart is the Monday of the target ISO week.
	WeekStart() time.Time
}

func NewDemandModel(grid TimeGrid, weekNumber, year int) DemandModel {
	start := isoWeekStart(year, weekNumber)
	return &weeklyDemand{
		grid:      grid,
		weekStart: start,
		weekEnd:   start.AddDate(0, 0, 7),
	}
}

type weeklyDemand struct {
	grid      TimeGrid
	weekStart time.Time
	weekEnd   time.Time
}

func (d *weeklyDemand) WeekStart() time.Time {
	return d.weekStart
}

func (d *weeklyDemand) RequiredTicks(student Student) []Tick {
	seen := make(map[Tick]bool)
	ticks := make([]Tick, 0)

	for _, rule := range student.CareTimes {
		if rule.ValidTo != nil && rule.ValidTo.Before(d.weekStart) {
			continue // Expired before the week starts
		}
		if rule.ValidFrom.After(d.weekEnd) {
			continue // Not yet valid
		}

		for _, tick := range d.grid.TicksBetween(rule.Weekday, rule.Start, rule.End) {
			if !seen[tick] {
				seen[tick] = true
				ticks = append(ticks, tick)
			}
		}
	}

	slices.SortFunc(ticks, func(a, b Tick) int {
		if a.Weekday != b.Weekday {
			return a.Weekday - b.Weekday
		}
		return int(a.Start - b.Start)
	})

	return ticks
}

// isoWeekStart returns the Monday of the given ISO week: week 1 is the week
// containing January 4th.
func isoWeekStart(year, weekNumber int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(jan4.Weekday()) + 6) % 7
	firstMonday := jan4.AddDate(0, 0, -daysSinceMonday)
	return firstMonday.AddDate(0, 0, (weekNumber-1)*7)
}
