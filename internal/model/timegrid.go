package model

const (
	// TickMinutes is the scheduling granularity.
	TickMinutes = 15

	Weekdays = 5

	// DayStart and DayEnd bound the daily operating window.
	DayStart Minutes = 6 * 60
	DayEnd   Minutes = 18 * 60

	// ClassStart and ClassEnd bound the class-time window, during which
	// coverage requires "at least one" carer instead of "exactly one".
	ClassStart Minutes = 8*60 + 30
	ClassEnd   Minutes = 15 * 60

	TicksPerDay  = int(DayEnd-DayStart) / TickMinutes
	TicksPerWeek = TicksPerDay * Weekdays
)

// Tick is one 15-minute unit of the operating week.
type Tick struct {
	Weekday int
	Start   Minutes
}

// TimeGrid is the discretized time domain shared by every component, so that
// no other component does ad-hoc time arithmetic.
type TimeGrid interface {
	// AllTicks returns the ordered ticks of the whole operating week.
	AllTicks() []Tick
	// TicksBetween returns the ticks of [start, end) on a weekday,
	// intersected with the operating window and aligned to tick boundaries.
	TicksBetween(weekday int, start, end Minutes) []Tick
	IsClassTime(tick Tick) bool
	// Ordinal returns the zero-based position of a tick within the week.
	Ordinal(tick Tick) int
	TickAt(ordinal int) Tick
}

func NewTimeGrid() TimeGrid {
	return operatingWeekGrid{}
}

type operatingWeekGrid struct{}

func (operatingWeekGrid) AllTicks() []Tick {
	ticks := make([]Tick, 0, TicksPerWeek)
	for weekday := 0; weekday < Weekdays; weekday++ {
		for start := DayStart; start < DayEnd; start += TickMinutes {
			ticks = append(ticks, Tick{Weekday: weekday, Start: start})
		}
	}
	return ticks
}

func (operatingWeekGrid) TicksBetween(weekday int, start, end Minutes) []Tick {
	if start < DayStart {
		start = DayStart
	}
	if end > DayEnd {
		end = DayEnd
	}
	// Align down to the enclosing tick boundary.
	start = DayStart + (start-DayStart)/TickMinutes*TickMinutes

	ticks := make([]Tick, 0, int(end-start)/TickMinutes)
	for at := start; at < end; at += TickMinutes {
		ticks = append(ticks, Tick{Weekday: weekday, Start: at})
	}
	return ticks
}

func (operatingWeekGrid) IsClassTime(tick Tick) bool {
	return tick.Start >= ClassStart && tick.Start < ClassEnd
}

func (operatingWeekGrid) Ordinal(tick Tick) int {
	return tick.Weekday*TicksPerDay + int(tick.Start-DayStart)/TickMinutes
}

func (operatingWeekGrid) TickAt(ordinal int) Tick {
	return Tick{
		Weekday: ordinal / TicksPerDay,
		Start:   DayStart + Minutes(ordinal%TicksPerDay*TickMinutes),
	}
}
