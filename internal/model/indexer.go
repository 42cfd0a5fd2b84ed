package model

import "github.com/vallaskolan/careschedule/internal/solver"

// Indexer gives a unique solver variable to a combination of assignment
// attributes (student, staff, tick ordinal) and vice versa. The arena is
// dense: every combination has a slot whether or not it is constrained,
// which keeps both directions pure arithmetic.
type Indexer interface {
	// Index returns the solver variable of a combination of attributes.
	Index(student, staff, tick int) solver.Var
	// Attributes returns the combination of attributes of a solver variable.
	Attributes(v solver.Var) (student, staff, tick int)
	// Size is the number of variables in the arena.
	Size() int
}

func NewIndexer(students, staff, ticks int) Indexer {
	return &sortedIndexer{
		students: students,
		staff:    staff,
		ticks:    ticks,
	}
}

type sortedIndexer struct {
	students int
	staff    int
	ticks    int
}

func (i *sortedIndexer) Index(student, staff, tick int) solver.Var {
	// 1-based so indices double as positive solver literals.
	return solver.Var(tick + i.ticks*staff + i.ticks*i.staff*student + 1)
}

func (i *sortedIndexer) Attributes(v solver.Var) (student, staff, tick int) {
	index := int(v) - 1

	tick = index % i.ticks
	index = index / i.ticks

	staff = index % i.staff
	index = index / i.staff

	student = index % i.students

	return student, staff, tick
}

func (i *sortedIndexer) Size() int {
	return i.students * i.staff * i.ticks
}
