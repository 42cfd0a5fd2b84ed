package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatingWeekGrid(t *testing.T) {
	grid := NewTimeGrid()

	t.Run("covers the whole operating week", func(t *testing.T) {
		//** Act
		ticks := grid.AllTicks()

		//** Assert
		assert.Len(t, ticks, TicksPerWeek)
		assert.Equal(t, Tick{Weekday: 0, Start: DayStart}, ticks[0])
		assert.Equal(t, Tick{Weekday: Weekdays - 1, Start: DayEnd - TickMinutes}, ticks[len(ticks)-1])
	})

	t.Run("ticks between clamps to the operating window", func(t *testing.T) {
		//** Act
		ticks := grid.TicksBetween(2, 5*60, 19*60)

		//** Assert
		assert.Len(t, ticks, TicksPerDay)
		assert.Equal(t, Tick{Weekday: 2, Start: DayStart}, ticks[0])
	})

	t.Run("ticks between aligns the start down to a tick boundary", func(t *testing.T) {
		//** Act
		ticks := grid.TicksBetween(0, 8*60+10, 8*60+40)

		//** Assert
		assert.Equal(t, []Tick{
			{Weekday: 0, Start: 8 * 60},
			{Weekday: 0, Start: 8*60 + 15},
			{Weekday: 0, Start: 8*60 + 30},
		}, ticks)
	})

	t.Run("half-open interval excludes the end tick", func(t *testing.T) {
		//** Act
		ticks := grid.TicksBetween(0, 8*60, 8*60+30)

		//** Assert
		assert.Equal(t, []Tick{
			{Weekday: 0, Start: 8 * 60},
			{Weekday: 0, Start: 8*60 + 15},
		}, ticks)
	})

	t.Run("class time is half-open on both boundaries", func(t *testing.T) {
		assert.False(t, grid.IsClassTime(Tick{Weekday: 0, Start: ClassStart - TickMinutes}))
		assert.True(t, grid.IsClassTime(Tick{Weekday: 0, Start: ClassStart}))
		assert.True(t, grid.IsClassTime(Tick{Weekday: 0, Start: ClassEnd - TickMinutes}))
		assert.False(t, grid.IsClassTime(Tick{Weekday: 0, Start: ClassEnd}))
	})

	t.Run("ordinal round trip", func(t *testing.T) {
		for _, tick := range grid.AllTicks() {
			assert.Equal(t, tick, grid.TickAt(grid.Ordinal(tick)))
		}
	})
}
