package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	students := []Student{{
		ID: "s1", Grade: 2,
		CareTimes: []CareTimeRule{careRule(0, 8*60, 9*60)},
	}}
	staff := []Staff{
		{ID: "a1", WorkHours: []WorkHourRule{workRule(0, 6*60, 14*60)}},
		{ID: "a2", WorkHours: []WorkHourRule{workRule(0, 6*60, 14*60)}},
	}
	scheduler := newTestScheduler()

	generate := func(t *testing.T) *ScheduleResult {
		result, err := scheduler.CreateSchedule(students, staff, testWeek, testYear, nil)
		require.NoError(t, err)
		return result
	}

	t.Run("accepts a generated schedule", func(t *testing.T) {
		//** Arrange
		result := generate(t)

		//** Act and Assert
		assert.True(t, scheduler.Verify(result, students, staff, testWeek, testYear, nil))
	})

	t.Run("rejects a nil schedule", func(t *testing.T) {
		assert.False(t, scheduler.Verify(nil, students, staff, testWeek, testYear, nil))
	})

	t.Run("rejects an unknown staff reference", func(t *testing.T) {
		//** Arrange
		result := generate(t)
		result.Assignments[0].StaffID = "ghost"

		//** Act and Assert
		assert.False(t, scheduler.Verify(result, students, staff, testWeek, testYear, nil))
	})

	t.Run("rejects a dropped assignment", func(t *testing.T) {
		//** Arrange
		result := generate(t)
		result.Assignments = nil

		//** Act and Assert
		assert.False(t, scheduler.Verify(result, students, staff, testWeek, testYear, nil))
	})

	t.Run("rejects a block shifted outside the care window", func(t *testing.T) {
		//** Arrange
		result := generate(t)
		result.Assignments[0].Start -= 60
		result.Assignments[0].End -= 60

		//** Act and Assert
		assert.False(t, scheduler.Verify(result, students, staff, testWeek, testYear, nil))
	})

	t.Run("rejects a second carer on an exactly-one tick", func(t *testing.T) {
		//** Arrange
		result := generate(t)
		extra := result.Assignments[0]
		extra.ID = uuid.New()
		if extra.StaffID == "a1" {
			extra.StaffID = "a2"
		} else {
			extra.StaffID = "a1"
		}
		// 08:00 precedes class time, where exactly one carer is allowed.
		extra.End = extra.Start + TickMinutes
		result.Assignments = append(result.Assignments, extra)

		//** Act and Assert
		assert.False(t, scheduler.Verify(result, students, staff, testWeek, testYear, nil))
	})

	t.Run("rejects an off-duty carer", func(t *testing.T) {
		//** Arrange
		earlyStudents := []Student{{
			ID: "s1", Grade: 2,
			CareTimes: []CareTimeRule{careRule(0, 7*60, 7*60+30)},
		}}
		lateStaff := []Staff{{ID: "a1", WorkHours: []WorkHourRule{workRule(0, 8*60, 14*60)}}}
		result := &ScheduleResult{Assignments: []Assignment{{
			ID: uuid.New(), StaffID: "a1", StudentID: "s1",
			Weekday: 0, Start: 7 * 60, End: 7*60 + 30, Kind: KindLeisure,
		}}}

		//** Act and Assert
		assert.False(t, scheduler.Verify(result, earlyStudents, lateStaff, testWeek, testYear, nil))
	})

	t.Run("rejects a malformed block", func(t *testing.T) {
		//** Arrange
		result := generate(t)
		result.Assignments[0].End = result.Assignments[0].Start

		//** Act and Assert
		assert.False(t, scheduler.Verify(result, students, staff, testWeek, testYear, nil))
	})
}
