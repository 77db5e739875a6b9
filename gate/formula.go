package gate

import "github.com/cnftools/gbdc/cnf"

// Formula records the outcome of a gate-analyzer run: the root clauses it
// descended from, the recognised gates keyed by output variable, and the
// clauses never absorbed into a gate (the remainder). Gates are never
// rewritten once added; Formula is populated monotonically by an Analyzer.
type Formula struct {
	NumVars   int
	Roots     []*cnf.Clause
	Remainder []*cnf.Clause

	gates map[cnf.Variable]*Gate
	order []cnf.Variable // insertion order, for deterministic iteration
}

// NewFormula creates an empty gate formula over numVars variables.
func NewFormula(numVars int) *Formula {
	return &Formula{
		NumVars: numVars,
		gates:   make(map[cnf.Variable]*Gate),
	}
}

// AddRoot appends c to the root clause list.
func (gf *Formula) AddRoot(c *cnf.Clause) {
	gf.Roots = append(gf.Roots, c)
}

// Gate returns the gate whose output variable is v, if any.
func (gf *Formula) Gate(v cnf.Variable) (*Gate, bool) {
	g, ok := gf.gates[v]
	return g, ok
}

// Gates returns every recognised gate in the order it was added.
func (gf *Formula) Gates() []*Gate {
	out := make([]*Gate, len(gf.order))
	for i, v := range gf.order {
		out[i] = gf.gates[v]
	}
	return out
}

// AddGate records a gate with output o, forward/backward defining clauses
// and classification t. Inputs are derived as the literals appearing in
// forward union backward whose variable is not var(o), sorted and
// deduplicated (see gateInputs). Depth
// is 1 plus the deepest already-recognised gate among those inputs, or 1 if
// none of them is yet a gate output. Returns false without modifying the
// formula if var(o) is already the output of a gate.
func (gf *Formula) AddGate(o cnf.Literal, forward, backward []*cnf.Clause, t Type) bool {
	v := o.Var()
	if _, exists := gf.gates[v]; exists {
		return false
	}
	inputs := gateInputs(forward, backward, v)
	depth := 0
	for _, l := range inputs {
		if g, ok := gf.gates[l.Var()]; ok && g.Depth > depth {
			depth = g.Depth
		}
	}
	gf.gates[v] = &Gate{
		Output:   o,
		Inputs:   inputs,
		Forward:  forward,
		Backward: backward,
		Type:     t,
		Depth:    depth + 1,
	}
	gf.order = append(gf.order, v)
	return true
}

// IsNestedMonotonic reports whether o can be classified MONO: every other
// variable appearing across forward/backward is already the output of a
// recognised gate, and none of those variables appears in both polarities
// across forward union backward (a sign flip would mean o's definition
// could reintroduce non-monotonicity through that input).
func (gf *Formula) IsNestedMonotonic(o cnf.Literal, forward, backward []*cnf.Clause) bool {
	self := o.Var()
	polarity := make(map[cnf.Variable]int) // bit 1 = seen positive, bit 2 = seen negative
	any := false
	for _, clauses := range [2][]*cnf.Clause{forward, backward} {
		for _, c := range clauses {
			for _, l := range c.Literals {
				v := l.Var()
				if v == self {
					continue
				}
				if _, ok := gf.gates[v]; !ok {
					return false
				}
				any = true
				if l.Negated() {
					polarity[v] |= 2
				} else {
					polarity[v] |= 1
				}
			}
		}
	}
	if !any {
		return false
	}
	for _, mask := range polarity {
		if mask == 3 {
			return false
		}
	}
	return true
}

// gateInputs collects the distinct literals of forward union backward whose
// variable is not exclude, sorted ascending by their raw encoding (variable
// id, positive literal before negative). Both polarities of one variable
// are kept as distinct entries if the defining clauses use the variable
// both ways.
func gateInputs(forward, backward []*cnf.Clause, exclude cnf.Variable) []cnf.Literal {
	seen := make(map[cnf.Literal]bool)
	var out []cnf.Literal
	for _, clauses := range [2][]*cnf.Clause{forward, backward} {
		for _, c := range clauses {
			for _, l := range c.Literals {
				if l.Var() != exclude && !seen[l] {
					seen[l] = true
					out = append(out, l)
				}
			}
		}
	}
	// insertion sort: input lists are small (typically single digits)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
