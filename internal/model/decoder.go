package model

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/vallaskolan/careschedule/internal/solver"
)

// solutionDecoder turns solver variable assignments into classified,
// merged assignment blocks.
type solutionDecoder struct {
	grid     TimeGrid
	indexer  Indexer
	students []Student
	staff    []Staff
}

func (d *solutionDecoder) decode(result solver.Result, required [][]Tick) []Assignment {
	provisional := make([]Assignment, 0)

	for i, student := range d.students {
		for _, tick := range required[i] {
			for j, member := range d.staff {
				if !result.Value(d.indexer.Index(i, j, d.grid.Ordinal(tick))) {
					continue
				}
				provisional = append(provisional, Assignment{
					StaffID:   member.ID,
					StudentID: student.ID,
					Weekday:   tick.Weekday,
					Start:     tick.Start,
					End:       tick.Start + TickMinutes,
					Kind:      d.classify(student, tick),
				})
			}
		}
	}

	merged := mergeContiguous(provisional)

	slices.SortFunc(merged, func(a, b Assignment) int {
		if a.Weekday != b.Weekday {
			return a.Weekday - b.Weekday
		}
		if a.Start != b.Start {
			return int(a.Start - b.Start)
		}
		if a.StudentID != b.StudentID {
			return strings.Compare(string(a.StudentID), string(b.StudentID))
		}
		return strings.Compare(string(a.StaffID), string(b.StaffID))
	})

	for k := range merged {
		merged[k].ID = uuid.New()
	}

	return merged
}

func (d *solutionDecoder) classify(student Student, tick Tick) AssignmentKind {
	if student.RequiresDoubleStaffing {
		return KindDoubleStaffing
	}
	if d.grid.IsClassTime(tick) {
		return KindOneToOne
	}
	return KindLeisure
}

type blockKey struct {
	StaffID   StaffID
	StudentID StudentID
	Weekday   int
}

// mergeContiguous folds per-tick assignments into the minimal set of maximal
// contiguous blocks per (staff, student, weekday) group. A block is extended
// only when the next start equals the current end exactly; the fold builds
// new blocks by value instead of mutating a running record.
func mergeContiguous(provisional []Assignment) []Assignment {
	groups := lo.GroupBy(provisional, func(a Assignment) blockKey {
		return blockKey{StaffID: a.StaffID, StudentID: a.StudentID, Weekday: a.Weekday}
	})

	merged := make([]Assignment, 0, len(groups))
	for _, group := range groups {
		slices.SortFunc(group, func(a, b Assignment) int { return int(a.Start - b.Start) })

		blocks := lo.Reduce(group[1:], func(blocks []Assignment, next Assignment, _ int) []Assignment {
			current := blocks[len(blocks)-1]
			if current.End == next.Start {
				current.End = next.End
				blocks[len(blocks)-1] = current
				return blocks
			}
			return append(blocks, next)
		}, []Assignment{group[0]})

		merged = append(merged, blocks...)
	}

	return merged
}
