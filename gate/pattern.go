package gate

import "github.com/cnftools/gbdc/cnf"

// Classify implements the structural pattern test of spec.md S4.2.4. forward
// is buckets(~o) and backward is buckets(o); both must already be known
// non-empty and IsBlockedSet(o) must already hold (the analyzer checks
// those preconditions before calling Classify).
func Classify(o cnf.Literal, forward, backward []*cnf.Clause) Type {
	fwdVars := varsOf(forward, o.Var())
	bwdVars := varsOf(backward, o.Var())
	if !sameVarSet(fwdVars, bwdVars) {
		return NONE
	}
	inp := len(fwdVars)

	if len(forward) == 1 && allHaveLength(backward, 2) {
		return OR
	}
	if len(backward) == 1 && allHaveLength(forward, 2) {
		return AND
	}
	if len(forward)+len(backward) == pow2(inp) &&
		allHaveLength(forward, inp+1) && allHaveLength(backward, inp+1) {
		switch {
		case inp == 1:
			return TRIV
		case inp == 2 && len(forward) == len(backward):
			return EQIV
		default:
			return FULL
		}
	}
	return NONE
}

func varsOf(clauses []*cnf.Clause, exclude cnf.Variable) map[cnf.Variable]bool {
	out := make(map[cnf.Variable]bool)
	for _, c := range clauses {
		for _, l := range c.Literals {
			if l.Var() != exclude {
				out[l.Var()] = true
			}
		}
	}
	return out
}

func sameVarSet(a, b map[cnf.Variable]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

func allHaveLength(clauses []*cnf.Clause, n int) bool {
	for _, c := range clauses {
		if c.Len() != n {
			return false
		}
	}
	return true
}

func pow2(n int) int {
	return 1 << uint(n)
}
