package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vallaskolan/careschedule/internal/solver"
)

func TestMergeContiguous(t *testing.T) {
	t.Run("folds adjacent ticks into one block", func(t *testing.T) {
		//** Arrange
		provisional := []Assignment{
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8 * 60, End: 8*60 + 15},
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8*60 + 15, End: 8*60 + 30},
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8*60 + 30, End: 8*60 + 45},
		}

		//** Act
		merged := mergeContiguous(provisional)

		//** Assert
		require.Len(t, merged, 1)
		assert.Equal(t, Minutes(8*60), merged[0].Start)
		assert.Equal(t, Minutes(8*60+45), merged[0].End)
	})

	t.Run("a gap splits the block", func(t *testing.T) {
		//** Arrange
		provisional := []Assignment{
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8 * 60, End: 8*60 + 15},
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 9 * 60, End: 9*60 + 15},
		}

		//** Act
		merged := mergeContiguous(provisional)

		//** Assert
		require.Len(t, merged, 2)
	})

	t.Run("different staff, student or weekday never merge", func(t *testing.T) {
		//** Arrange
		provisional := []Assignment{
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8 * 60, End: 8*60 + 15},
			{StaffID: "a2", StudentID: "s1", Weekday: 0, Start: 8*60 + 15, End: 8*60 + 30},
			{StaffID: "a1", StudentID: "s2", Weekday: 0, Start: 8*60 + 15, End: 8*60 + 30},
			{StaffID: "a1", StudentID: "s1", Weekday: 1, Start: 8*60 + 15, End: 8*60 + 30},
		}

		//** Act
		merged := mergeContiguous(provisional)

		//** Assert
		assert.Len(t, merged, 4)
	})

	t.Run("unsorted input still merges", func(t *testing.T) {
		//** Arrange
		provisional := []Assignment{
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8*60 + 15, End: 8*60 + 30},
			{StaffID: "a1", StudentID: "s1", Weekday: 0, Start: 8 * 60, End: 8*60 + 15},
		}

		//** Act
		merged := mergeContiguous(provisional)

		//** Assert
		require.Len(t, merged, 1)
		assert.Equal(t, Minutes(8*60), merged[0].Start)
		assert.Equal(t, Minutes(8*60+30), merged[0].End)
	})
}

func TestSolutionDecoder(t *testing.T) {
	grid := NewTimeGrid()

	newDecoder := func(students []Student, staff []Staff) (*solutionDecoder, Indexer) {
		indexer := NewIndexer(len(students), len(staff), TicksPerWeek)
		return &solutionDecoder{grid: grid, indexer: indexer, students: students, staff: staff}, indexer
	}

	t.Run("decodes merged sorted blocks with fresh identifiers", func(t *testing.T) {
		//** Arrange
		students := []Student{{ID: "s1"}}
		staff := []Staff{{ID: "a1"}, {ID: "a2"}}
		decoder, indexer := newDecoder(students, staff)

		required := [][]Tick{{
			{Weekday: 0, Start: 8 * 60},
			{Weekday: 0, Start: 8*60 + 15},
			{Weekday: 0, Start: 10 * 60},
		}}
		values := make([]bool, indexer.Size())
		for _, tick := range required[0] {
			values[int(indexer.Index(0, 0, grid.Ordinal(tick)))-1] = true
		}
		result := solver.NewResult(solver.StatusOptimal, 0, values)

		//** Act
		assignments := decoder.decode(result, required)

		//** Assert
		require.Len(t, assignments, 2)
		assert.Equal(t, Minutes(8*60), assignments[0].Start)
		assert.Equal(t, Minutes(8*60+30), assignments[0].End)
		assert.Equal(t, Minutes(10*60), assignments[1].Start)
		assert.Equal(t, Minutes(10*60+15), assignments[1].End)
		for _, assignment := range assignments {
			assert.Equal(t, StaffID("a1"), assignment.StaffID)
			assert.Equal(t, StudentID("s1"), assignment.StudentID)
			assert.NotEqual(t, assignment.ID.String(), "00000000-0000-0000-0000-000000000000")
			assert.False(t, assignment.IsManualOverride)
		}
		assert.NotEqual(t, assignments[0].ID, assignments[1].ID)
	})

	t.Run("classifies by student flag and class time", func(t *testing.T) {
		//** Arrange
		students := []Student{
			{ID: "s1"},
			{ID: "s2", RequiresDoubleStaffing: true},
		}
		staff := []Staff{{ID: "a1"}, {ID: "a2"}}
		decoder, indexer := newDecoder(students, staff)

		leisureTick := Tick{Weekday: 0, Start: 8 * 60}
		classTick := Tick{Weekday: 0, Start: 9 * 60}
		required := [][]Tick{
			{leisureTick, classTick},
			{classTick},
		}
		values := make([]bool, indexer.Size())
		values[int(indexer.Index(0, 0, grid.Ordinal(leisureTick)))-1] = true
		values[int(indexer.Index(0, 0, grid.Ordinal(classTick)))-1] = true
		values[int(indexer.Index(1, 0, grid.Ordinal(classTick)))-1] = true
		values[int(indexer.Index(1, 1, grid.Ordinal(classTick)))-1] = true
		result := solver.NewResult(solver.StatusOptimal, 0, values)

		//** Act
		assignments := decoder.decode(result, required)

		//** Assert
		kinds := lo.GroupBy(assignments, func(a Assignment) AssignmentKind { return a.Kind })
		require.Len(t, kinds[KindLeisure], 1)
		require.Len(t, kinds[KindOneToOne], 1)
		require.Len(t, kinds[KindDoubleStaffing], 2)
	})

	t.Run("round trip reproduces exactly the true ticks", func(t *testing.T) {
		//** Arrange
		students := []Student{{ID: "s1"}}
		staff := []Staff{{ID: "a1"}}
		decoder, indexer := newDecoder(students, staff)

		required := [][]Tick{grid.TicksBetween(1, 8*60, 12*60)}
		chosen := []Tick{
			{Weekday: 1, Start: 8 * 60},
			{Weekday: 1, Start: 8*60 + 15},
			{Weekday: 1, Start: 9 * 60},
			{Weekday: 1, Start: 11*60 + 45},
		}
		values := make([]bool, indexer.Size())
		for _, tick := range chosen {
			values[int(indexer.Index(0, 0, grid.Ordinal(tick)))-1] = true
		}
		result := solver.NewResult(solver.StatusOptimal, 0, values)

		//** Act
		assignments := decoder.decode(result, required)

		//** Assert
		expanded := make([]Tick, 0)
		for _, assignment := range assignments {
			for start := assignment.Start; start < assignment.End; start += TickMinutes {
				expanded = append(expanded, Tick{Weekday: assignment.Weekday, Start: start})
			}
		}
		assert.ElementsMatch(t, chosen, expanded)

		// Blocks are maximal: no two blocks of the same group are adjacent.
		for i := 1; i < len(assignments); i++ {
			if assignments[i-1].Weekday == assignments[i].Weekday {
				assert.NotEqual(t, assignments[i-1].End, assignments[i].Start)
			}
		}
	})
}
