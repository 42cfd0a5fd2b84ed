package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeeklyDemand(t *testing.T) {
	grid := NewTimeGrid()
	longAgo := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

	t.Run("week start is the ISO Monday", func(t *testing.T) {
		//** Act and Assert
		assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
			NewDemandModel(grid, 10, 2026).WeekStart())
		// Week 1 of 2026 starts in the previous calendar year.
		assert.Equal(t, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC),
			NewDemandModel(grid, 1, 2026).WeekStart())
		assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
			NewDemandModel(grid, 2, 2025).WeekStart())
	})

	t.Run("expands rules into ordered deduplicated ticks", func(t *testing.T) {
		//** Arrange
		demand := NewDemandModel(grid, 10, 2026)
		student := Student{
			ID: "s1",
			CareTimes: []CareTimeRule{
				{Weekday: 1, Start: 8 * 60, End: 9 * 60, ValidFrom: longAgo},
				{Weekday: 0, Start: 8 * 60, End: 8*60 + 30, ValidFrom: longAgo},
				// Overlaps the Tuesday rule by half an hour.
				{Weekday: 1, Start: 8*60 + 30, End: 9*60 + 30, ValidFrom: longAgo},
			},
		}

		//** Act
		ticks := demand.RequiredTicks(student)

		//** Assert
		assert.Equal(t, []Tick{
			{Weekday: 0, Start: 8 * 60},
			{Weekday: 0, Start: 8*60 + 15},
			{Weekday: 1, Start: 8 * 60},
			{Weekday: 1, Start: 8*60 + 15},
			{Weekday: 1, Start: 8*60 + 30},
			{Weekday: 1, Start: 8*60 + 45},
			{Weekday: 1, Start: 9 * 60},
			{Weekday: 1, Start: 9*60 + 15},
		}, ticks)
	})

	t.Run("skips rules outside their validity window", func(t *testing.T) {
		//** Arrange
		demand := NewDemandModel(grid, 10, 2026)
		expired := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
		student := Student{
			ID: "s1",
			CareTimes: []CareTimeRule{
				{Weekday: 0, Start: 8 * 60, End: 9 * 60, ValidFrom: longAgo, ValidTo: &expired},
				{Weekday: 1, Start: 8 * 60, End: 9 * 60,
					ValidFrom: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
				{Weekday: 2, Start: 8 * 60, End: 8*60 + 15, ValidFrom: longAgo},
			},
		}

		//** Act
		ticks := demand.RequiredTicks(student)

		//** Assert
		assert.Equal(t, []Tick{{Weekday: 2, Start: 8 * 60}}, ticks)
	})

	t.Run("clamps care times to the operating window", func(t *testing.T) {
		//** Arrange
		demand := NewDemandModel(grid, 10, 2026)
		student := Student{
			ID: "s1",
			CareTimes: []CareTimeRule{
				{Weekday: 0, Start: 5 * 60, End: 6*60 + 30, ValidFrom: longAgo},
			},
		}

		//** Act
		ticks := demand.RequiredTicks(student)

		//** Assert
		assert.Equal(t, []Tick{
			{Weekday: 0, Start: DayStart},
			{Weekday: 0, Start: DayStart + TickMinutes},
		}, ticks)
	})

	t.Run("no rules yields no demand", func(t *testing.T) {
		//** Arrange
		demand := NewDemandModel(grid, 10, 2026)

		//** Act and Assert
		assert.Empty(t, demand.RequiredTicks(Student{ID: "s1"}))
	})
}
