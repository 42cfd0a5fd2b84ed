package solver

import (
	"errors"
	"fmt"
	"time"

	gs "github.com/crillab/gophersat/solver"
)

// ErrInvalidModel reports a malformed model: a literal outside the declared
// variable range, a negative threshold weight or an empty conjunction.
var ErrInvalidModel = errors.New("invalid model")

type gophersatSolver struct{}

// NewGophersatSolver returns a Solver backed by the in-process gophersat
// pseudo-boolean engine. Linear constraints are lowered to PB rows, reified
// constraints to clauses and big-M rows, and the objective is minimized by
// incumbent strengthening: solve, bound the objective strictly below the
// incumbent, re-solve until unsatisfiable or out of budget.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (s *gophersatSolver) Solve(model *Model, budget time.Duration) (Result, error) {
	if err := validate(model); err != nil {
		return Result{}, err
	}

	rows := make([]gs.PBConstr, 0, model.Constraints())
	for _, constraint := range model.linear {
		rows = append(rows, lowerLinear(constraint)...)
	}
	for _, conjunction := range model.conjunctions {
		rows = append(rows, lowerConjunction(conjunction)...)
	}
	for _, threshold := range model.thresholds {
		rows = append(rows, lowerThreshold(threshold)...)
	}

	objLits, objWeights, objShift := positiveForm(model.objective)

	var deadline time.Time
	if budget > 0 {
		deadline = time.Now().Add(budget)
	}

	var incumbent []bool
	proven := false

	for {
		status, values := solveOnce(rows, model.variables, deadline)

		if status == gs.Sat {
			incumbent = values
			value := literalSum(objLits, objWeights, incumbent)
			if len(objLits) == 0 || value == 0 {
				// The shifted objective is non-negative, so zero is minimal.
				proven = true
				break
			}
			// The constructors negate the slices they are given, so the
			// objective literals must never be handed over directly.
			rows = append(rows, gs.LtEq(copyInts(objLits), copyInts(objWeights), value-1))
			continue
		}

		if status == gs.Unsat {
			if incumbent == nil {
				return Result{Status: StatusInfeasible}, nil
			}
			// Nothing beats the incumbent.
			proven = true
		}
		break
	}

	if incumbent == nil {
		return Result{Status: StatusTimeout}, nil
	}

	result := Result{
		Status:    StatusFeasible,
		Objective: literalSum(objLits, objWeights, incumbent) - objShift,
		values:    incumbent,
	}
	if proven {
		result.Status = StatusOptimal
	}
	return result, nil
}

// solveOnce runs one satisfiability search over the accumulated rows,
// stopping at the deadline. A zero deadline disables the cutoff.
func solveOnce(rows []gs.PBConstr, variables int, deadline time.Time) (gs.Status, []bool) {
	var stop chan struct{}
	var cutoff *time.Timer
	if !deadline.IsZero() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return gs.Indet, nil
		}
		stop = make(chan struct{})
		cutoff = time.AfterFunc(remaining, func() { close(stop) })
	}

	engine := gs.New(gs.ParsePBConstrs(clonePBRows(rows)))
	outcome := engine.Optimal(nil, stop)
	if cutoff != nil {
		cutoff.Stop()
	}

	if outcome.Status != gs.Sat {
		return outcome.Status, nil
	}
	return gs.Sat, snapshot(outcome.Model, variables)
}

// snapshot copies the model, indexed by variable-1, into a dense value
// slice of exactly the declared arena size. Positions past the model's end
// read false.
func snapshot(model []bool, variables int) []bool {
	values := make([]bool, variables)
	copy(values, model)
	return values
}

// clonePBRows deep-copies constraint rows. The engine takes ownership of
// the rows it parses and reorders their literal and weight slices during
// search, so rows retained across solves must never be shared with it.
func clonePBRows(rows []gs.PBConstr) []gs.PBConstr {
	cloned := make([]gs.PBConstr, len(rows))
	for i, row := range rows {
		cloned[i] = gs.PBConstr{
			Lits:    copyInts(row.Lits),
			Weights: copyInts(row.Weights),
			AtLeast: row.AtLeast,
		}
	}
	return cloned
}

func copyInts(values []int) []int {
	return append([]int(nil), values...)
}

func lowerLinear(constraint LinearConstraint) []gs.PBConstr {
	lits, weights, shift := positiveForm(constraint.Terms)
	bound := constraint.Bound + shift

	switch constraint.Relation {
	case GreaterOrEqual:
		return []gs.PBConstr{gs.GtEq(lits, weights, bound)}
	case LessOrEqual:
		return []gs.PBConstr{gs.LtEq(lits, weights, bound)}
	default:
		return gs.Eq(lits, weights, bound)
	}
}

func lowerConjunction(conjunction Conjunction) []gs.PBConstr {
	target := int(conjunction.Target)
	rows := make([]gs.PBConstr, 0, len(conjunction.Operands)+1)

	long := make([]int, 0, len(conjunction.Operands)+1)
	long = append(long, target)
	for _, operand := range conjunction.Operands {
		rows = append(rows, gs.PropClause(-target, int(operand)))
		long = append(long, -int(operand))
	}
	rows = append(rows, gs.PropClause(long...))

	return rows
}

func lowerThreshold(threshold Threshold) []gs.PBConstr {
	target := int(threshold.Target)
	bound := threshold.Bound

	total := 0
	lits := make([]int, 0, len(threshold.Terms))
	weights := make([]int, 0, len(threshold.Terms))
	negated := make([]int, 0, len(threshold.Terms))
	for _, term := range threshold.Terms {
		lits = append(lits, int(term.Var))
		negated = append(negated, -int(term.Var))
		weights = append(weights, term.Weight)
		total += term.Weight
	}

	if threshold.Below {
		// target <-> sum < bound
		if bound <= 0 {
			return []gs.PBConstr{gs.PropClause(-target)}
		}
		if bound > total {
			return []gs.PBConstr{gs.PropClause(target)}
		}
		return []gs.PBConstr{
			// target -> sum <= bound-1
			gs.GtEq(append(negated, -target), append(weights, total-bound+1), total-bound+1),
			// !target -> sum >= bound
			gs.GtEq(append(lits, target), append(weights, bound), bound),
		}
	}

	// target <-> sum > bound
	if bound >= total {
		return []gs.PBConstr{gs.PropClause(-target)}
	}
	if bound < 0 {
		return []gs.PBConstr{gs.PropClause(target)}
	}
	return []gs.PBConstr{
		// target -> sum >= bound+1
		gs.GtEq(append(lits, -target), append(weights, bound+1), bound+1),
		// !target -> sum <= bound
		gs.GtEq(append(negated, target), append(weights, total-bound), total-bound),
	}
}

// positiveForm rewrites weighted variables into positively-weighted literals,
// flipping negative-weight variables to negated literals. The returned shift
// is the amount added to the expression by the rewrite, to be applied to any
// bound compared against it.
func positiveForm(terms []Term) (lits []int, weights []int, shift int) {
	lits = make([]int, 0, len(terms))
	weights = make([]int, 0, len(terms))
	for _, term := range terms {
		switch {
		case term.Weight > 0:
			lits = append(lits, int(term.Var))
			weights = append(weights, term.Weight)
		case term.Weight < 0:
			lits = append(lits, -int(term.Var))
			weights = append(weights, -term.Weight)
			shift += -term.Weight
		}
	}
	return lits, weights, shift
}

func literalSum(lits []int, weights []int, values []bool) int {
	sum := 0
	for i, lit := range lits {
		variable := lit
		if variable < 0 {
			variable = -variable
		}
		satisfied := values[variable-1]
		if lit < 0 {
			satisfied = !satisfied
		}
		if satisfied {
			sum += weights[i]
		}
	}
	return sum
}

func validate(model *Model) error {
	inRange := func(v Var) bool { return v >= 1 && int(v) <= model.variables }

	for _, constraint := range model.linear {
		for _, term := range constraint.Terms {
			if !inRange(term.Var) {
				return fmt.Errorf("%w: literal %d outside 1..%d", ErrInvalidModel, term.Var, model.variables)
			}
		}
	}
	for _, conjunction := range model.conjunctions {
		if len(conjunction.Operands) == 0 {
			return fmt.Errorf("%w: conjunction over no operands", ErrInvalidModel)
		}
		if !inRange(conjunction.Target) {
			return fmt.Errorf("%w: literal %d outside 1..%d", ErrInvalidModel, conjunction.Target, model.variables)
		}
		for _, operand := range conjunction.Operands {
			if !inRange(operand) {
				return fmt.Errorf("%w: literal %d outside 1..%d", ErrInvalidModel, operand, model.variables)
			}
		}
	}
	for _, threshold := range model.thresholds {
		if !inRange(threshold.Target) {
			return fmt.Errorf("%w: literal %d outside 1..%d", ErrInvalidModel, threshold.Target, model.variables)
		}
		for _, term := range threshold.Terms {
			if !inRange(term.Var) {
				return fmt.Errorf("%w: literal %d outside 1..%d", ErrInvalidModel, term.Var, model.variables)
			}
			if term.Weight < 0 {
				return fmt.Errorf("%w: negative threshold weight %d", ErrInvalidModel, term.Weight)
			}
		}
	}
	for _, term := range model.objective {
		if !inRange(term.Var) {
			return fmt.Errorf("%w: literal %d outside 1..%d", ErrInvalidModel, term.Var, model.variables)
		}
	}
	return nil
}
