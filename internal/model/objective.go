package model

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/vallaskolan/careschedule/internal/solver"
)

// Soft-constraint weights. Negative weights reward, positive penalize; the
// solver minimizes the weighted sum.
const (
	weightPreferredStaff    = -800
	weightNonPreferredStaff = 10
	weightOverwork          = 500
	weightUnderwork         = 300
	weightContinuity        = -200

	overworkFactor  = 1.2
	underworkFactor = 0.8
)

// addSoftObjective assembles the weighted preference terms and installs them
// as the minimization objective. Preferences never block feasibility.
func (b *scheduleBuilder) addSoftObjective() []solver.Term {
	terms := b.preferenceTerms()
	terms = append(terms, b.workloadTerms()...)
	terms = append(terms, b.continuityTerms()...)

	b.model.Minimize(terms)
	b.logger.Debug("soft objective assembled", zap.Int("terms", len(terms)))

	return terms
}

// preferenceTerms rewards assigning a student their preferred staff and
// mildly penalizes every other carer, but only for students that named
// preferences at all.
func (b *scheduleBuilder) preferenceTerms() []solver.Term {
	terms := make([]solver.Term, 0)

	for i, student := range b.students {
		if len(student.PreferredStaff) == 0 {
			continue
		}
		preferred := make(map[StaffID]bool, len(student.PreferredStaff))
		for _, id := range student.PreferredStaff {
			preferred[id] = true
		}

		for _, tick := range b.required[i] {
			for j, member := range b.staff {
				weight := weightNonPreferredStaff
				if preferred[member.ID] {
					weight = weightPreferredStaff
				}
				terms = append(terms, solver.Term{Var: b.variable(i, j, tick), Weight: weight})
			}
		}
	}

	return terms
}

// workloadTerms penalizes staff whose assigned tick count strays outside a
// band around the average demand per staff member, via reified over- and
// underwork indicators.
func (b *scheduleBuilder) workloadTerms() []solver.Term {
	terms := make([]solver.Term, 0, 2*len(b.staff))

	totalRequired := lo.SumBy(b.required, func(ticks []Tick) int { return len(ticks) })
	average := float64(totalRequired) / float64(len(b.staff))
	maxAcceptable := int(average * overworkFactor)
	minAcceptable := int(average * underworkFactor)

	for j := range b.staff {
		load := make([]solver.Term, 0)
		for i := range b.students {
			for _, tick := range b.required[i] {
				load = append(load, solver.Term{Var: b.variable(i, j, tick), Weight: 1})
			}
		}
		if len(load) == 0 {
			continue
		}

		overwork := b.model.NewVar()
		b.model.AddAboveThreshold(overwork, load, maxAcceptable)
		terms = append(terms, solver.Term{Var: overwork, Weight: weightOverwork})

		underwork := b.model.NewVar()
		b.model.AddBelowThreshold(underwork, load, minAcceptable)
		terms = append(terms, solver.Term{Var: underwork, Weight: weightUnderwork})
	}

	return terms
}

// continuityTerms rewards keeping the same carer across chronologically
// adjacent required ticks of one student's day.
func (b *scheduleBuilder) continuityTerms() []solver.Term {
	terms := make([]solver.Term, 0)

	for i := range b.students {
		byDay := lo.GroupBy(b.required[i], func(tick Tick) int { return tick.Weekday })

		for _, ticks := range byDay {
			for k := 0; k+1 < len(ticks); k++ {
				first, second := ticks[k], ticks[k+1]

				for j := range b.staff {
					link := b.model.NewVar()
					b.model.AddConjunction(link, b.variable(i, j, first), b.variable(i, j, second))
					terms = append(terms, solver.Term{Var: link, Weight: weightContinuity})
				}
			}
		}
	}

	return terms
}
