package model

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
)

var weekdayNames = [Weekdays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

const maxReportedGaps = 8

// demandSlot is one carer seat to fill at a tick: a regular student has one,
// a double-staffing student has two, of which the first must be qualified
// when the student has care requirements.
type demandSlot struct {
	student           int
	needsAllCerts     bool
	needsAnyQualified bool
}

// diagnoseInfeasibility names likely root causes of an unsatisfiable week.
// For every required tick it matches carer seats against the staff available
// at that tick; any tick where the largest matching leaves seats unfilled is
// a concrete coverage gap. Gaps from the hour cap or constraint interplay
// are not per-tick, so generic candidates round the list off.
func (b *scheduleBuilder) diagnoseInfeasibility() []string {
	causes := make([]string, 0)

	for _, tick := range b.grid.AllTicks() {
		if len(causes) >= maxReportedGaps {
			break
		}

		seats := make([]any, 0)
		for i, student := range b.students {
			if !b.requiredSet[i][tick] {
				continue
			}
			constrained := student.HasCareNeeds && len(student.CareRequirements) > 0
			if student.RequiresDoubleStaffing {
				seats = append(seats,
					demandSlot{student: i, needsAnyQualified: constrained},
					demandSlot{student: i})
			} else {
				seats = append(seats, demandSlot{student: i, needsAllCerts: constrained})
			}
		}
		if len(seats) == 0 {
			continue
		}

		available := make([]any, 0, len(b.staff))
		for j, member := range b.staff {
			if b.availability.IsAvailable(member, tick) {
				available = append(available, j)
			}
		}

		neighbours := func(seatAny, staffAny any) (bool, error) {
			seat := seatAny.(demandSlot)
			member := b.staff[staffAny.(int)]
			requirements := b.students[seat.student].CareRequirements
			if seat.needsAllCerts || seat.needsAnyQualified {
				return member.Covers(requirements), nil
			}
			return true, nil
		}

		graph, err := bipartitegraph.NewBipartiteGraph(seats, available, neighbours)
		if err != nil {
			continue
		}

		matching := graph.LargestMatching()
		if len(matching) >= len(seats) {
			continue
		}

		causes = append(causes, fmt.Sprintf(
			"coverage gap on %s %s: %d carers needed, at most %d assignable",
			weekdayNames[tick.Weekday], tick.Start, len(seats), len(matching)))
	}

	causes = append(causes,
		"not enough qualified staff for students with care needs",
		"too many simultaneous absences",
		"conflicting hard constraints",
	)

	return causes
}
