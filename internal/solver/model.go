package solver

// Var identifies a boolean decision variable. Variables are 1-based so that
// they can double as positive literals in DIMACS-style backend encodings.
type Var int

// Term is a single weighted variable inside a linear expression.
type Term struct {
	Var    Var
	Weight int
}

type Relation int

const (
	LessOrEqual Relation = iota
	GreaterOrEqual
	Equal
)

// LinearConstraint states sum(Terms) Relation Bound. Weights may be negative.
type LinearConstraint struct {
	Terms    []Term
	Relation Relation
	Bound    int
}

// Conjunction reifies Target <-> AND(Operands).
type Conjunction struct {
	Target   Var
	Operands []Var
}

// Threshold reifies Target against a strict comparison of a linear sum:
// Target <-> sum(Terms) > Bound, or Target <-> sum(Terms) < Bound when Below
// is set. Weights must be non-negative.
type Threshold struct {
	Target Var
	Terms  []Term
	Bound  int
	Below  bool
}

// Model is a pure-data boolean optimization instance: variables, linear
// (in)equalities, reified constraints and a linear minimization objective.
// It carries no solving logic so that any backend can consume it.
type Model struct {
	variables    int
	linear       []LinearConstraint
	conjunctions []Conjunction
	thresholds   []Threshold
	objective    []Term
}

func NewModel() *Model {
	return &Model{}
}

// NewVar allocates one fresh boolean variable.
func (m *Model) NewVar() Var {
	m.variables++
	return Var(m.variables)
}

// Reserve allocates n contiguous variables and returns the first one.
// It backs dense arenas whose indices are computed externally.
func (m *Model) Reserve(n int) Var {
	first := Var(m.variables + 1)
	m.variables += n
	return first
}

func (m *Model) Variables() int {
	return m.variables
}

func (m *Model) Constraints() int {
	return len(m.linear) + len(m.conjunctions) + len(m.thresholds)
}

func (m *Model) AddLinear(terms []Term, relation Relation, bound int) {
	m.linear = append(m.linear, LinearConstraint{Terms: terms, Relation: relation, Bound: bound})
}

// Forbid forces a variable to false.
func (m *Model) Forbid(v Var) {
	m.AddLinear([]Term{{Var: v, Weight: 1}}, Equal, 0)
}

// AddConjunction makes target true exactly when every operand is true.
func (m *Model) AddConjunction(target Var, operands ...Var) {
	m.conjunctions = append(m.conjunctions, Conjunction{Target: target, Operands: operands})
}

// AddAboveThreshold makes target true exactly when sum(terms) > bound.
func (m *Model) AddAboveThreshold(target Var, terms []Term, bound int) {
	m.thresholds = append(m.thresholds, Threshold{Target: target, Terms: terms, Bound: bound})
}

// AddBelowThreshold makes target true exactly when sum(terms) < bound.
func (m *Model) AddBelowThreshold(target Var, terms []Term, bound int) {
	m.thresholds = append(m.thresholds, Threshold{Target: target, Terms: terms, Bound: bound, Below: true})
}

// Minimize sets the objective to the weighted sum of the given terms.
// Negative weights act as rewards. An empty objective minimizes the
// constant zero, turning the solve into a pure feasibility check.
func (m *Model) Minimize(terms []Term) {
	m.objective = terms
}

func (m *Model) Objective() []Term {
	return m.objective
}
