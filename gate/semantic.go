package gate

import "github.com/cnftools/gbdc/cnf"

// Result is the outcome of one Oracle.Solve call.
type Result int

const (
	ResultUnknown Result = iota
	ResultSAT
	ResultUNSAT
)

// Oracle is the incremental SAT engine the semantic classifier consults
// (spec.md S4.3). It is defined here, at the consumer, rather than in the
// oracle package, so that Analyzer can be tested against a fake without
// pulling in a real SAT engine; package oracle's gini-backed adapter
// satisfies it structurally.
//
// Assume sets the assumption literals for the next Solve call only; they do
// not persist afterward, matching the incremental-SAT convention used by
// gini and every other assumption-based solver (this resolves spec.md S9's
// open question on assume/add ordering: only add is sticky, assume is not).
type Oracle interface {
	Add(l cnf.Literal)
	AddTerminator()
	Assume(lits ...cnf.Literal)
	Solve() Result
}

// classifySemantic implements spec.md S4.2.5: it asserts, permanently, the
// definition of a fresh proxy variable over forward/backward with o
// replaced by the proxy, then checks in both directions whether the proxy
// and o can ever disagree. If neither direction is satisfiable, o is
// exactly the function the proxy encodes, and the candidate classifies as
// GENERIC. proxyVar must be a variable never used anywhere else in the run.
func classifySemantic(o cnf.Literal, forward, backward []*cnf.Clause, oc Oracle, proxyVar cnf.Variable) Type {
	proxyPos := cnf.NewLiteral(proxyVar, false)
	proxyNeg := cnf.NewLiteral(proxyVar, true)

	for _, c := range forward {
		addSubstituted(oc, c, o.Negate(), proxyNeg)
	}
	for _, c := range backward {
		addSubstituted(oc, c, o, proxyPos)
	}

	// Direction 1: can the proxy's definition hold true while o is false?
	oc.Assume(proxyPos, o.Negate())
	if oc.Solve() != ResultUNSAT {
		return NONE
	}

	// Direction 2: can the proxy's definition hold false while o is true?
	oc.Assume(proxyNeg, o)
	if oc.Solve() != ResultUNSAT {
		return NONE
	}

	return GENERIC
}

func addSubstituted(oc Oracle, c *cnf.Clause, from, to cnf.Literal) {
	for _, l := range c.Literals {
		if l == from {
			oc.Add(to)
		} else {
			oc.Add(l)
		}
	}
	oc.AddTerminator()
}
