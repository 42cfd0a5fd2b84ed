package solver

import "time"

// Status classifies the outcome of one solve attempt.
type Status int

const (
	StatusUnknown Status = iota
	// StatusOptimal means a solution was found and proven minimal.
	StatusOptimal
	// StatusFeasible means a solution was found but the budget ran out
	// before optimality could be proven.
	StatusFeasible
	// StatusInfeasible means the constraint set has no satisfying assignment.
	StatusInfeasible
	// StatusTimeout means the budget ran out before any solution was found.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Result is the outcome of solving one Model.
type Result struct {
	Status    Status
	Objective int
	values    []bool
}

// NewResult builds a Result from an explicit assignment, for backends that
// produce their variable values outside this package.
func NewResult(status Status, objective int, values []bool) Result {
	return Result{Status: status, Objective: objective, values: values}
}

// Value reports the assignment of v in the solution. It is only meaningful
// when Status is StatusOptimal or StatusFeasible.
func (r Result) Value(v Var) bool {
	i := int(v) - 1
	return i >= 0 && i < len(r.values) && r.values[i]
}

// Solver turns a Model into a Result within a wall-clock budget. A nil error
// with StatusInfeasible or StatusTimeout is a valid outcome; errors are
// reserved for malformed models and backend failures.
type Solver interface {
	Solve(model *Model, budget time.Duration) (Result, error)
}
