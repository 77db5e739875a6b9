// Package oracle adapts an incremental SAT engine to the semantic oracle
// contract the gate analyzer depends on (spec.md S4.3): assume, add,
// add_terminator, solve, signature, init/release. The concrete engine is
// gini (github.com/go-air/gini), the only incremental SAT solver present in
// the retrieval pack (used by operator-lifecycle-manager's dependency
// resolver).
package oracle

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/cnftools/gbdc/cnf"
	"github.com/cnftools/gbdc/gate"
)

// Oracle owns one gini instance for the lifetime of the analyzer that
// created it (spec.md S5: "the oracle is owned by the analyzer via the
// adapter"). gini's z.Lit shares cnf.Literal's 2v/2v+1 encoding exactly
// (z.Dimacs2Lit: positive -> 2v, negative -> 2v+1), so literals cross the
// boundary by a direct reinterpretation, no translation table required.
type Oracle struct {
	g *gini.Gini
}

// New creates an Oracle backed by a fresh gini instance.
func New() *Oracle {
	return &Oracle{g: gini.New()}
}

func toZLit(l cnf.Literal) z.Lit {
	return z.Lit(l)
}

// Add appends one literal to the clause currently being built.
func (o *Oracle) Add(l cnf.Literal) {
	o.g.Add(toZLit(l))
}

// AddTerminator closes the clause currently being built, the in-memory
// equivalent of DIMACS's trailing 0.
func (o *Oracle) AddTerminator() {
	o.g.Add(z.LitNull)
}

// Assume sets the assumption literals for the next Solve call only; gini
// does not retain assumptions across Solve calls, which is what lets the
// semantic classifier reuse one Oracle across many candidates without
// guarding against stale assumptions itself (spec.md S9 open question on
// assume/add ordering).
func (o *Oracle) Assume(lits ...cnf.Literal) {
	zlits := make([]z.Lit, len(lits))
	for i, l := range lits {
		zlits[i] = toZLit(l)
	}
	o.g.Assume(zlits...)
}

// Solve runs the incremental solver under the literals set by the most
// recent Assume call. gini's 0 result (interrupted/unknown) maps to
// ResultUnknown, which the analyzer treats as NONE for the candidate under
// test (spec.md S5 "Cancellation and timeouts").
func (o *Oracle) Solve() gate.Result {
	switch o.g.Solve() {
	case 1:
		return gate.ResultSAT
	case -1:
		return gate.ResultUNSAT
	default:
		return gate.ResultUnknown
	}
}

// Value returns the model value of l from the most recent satisfiable
// Solve call; used by the solve CLI tool to print an assignment.
func (o *Oracle) Value(l cnf.Literal) bool {
	return o.g.Value(toZLit(l))
}

// Signature identifies the backing engine, for diagnostic output.
func (o *Oracle) Signature() string {
	return "gini"
}

// Release frees the oracle's resources. gini instances hold no external
// handle, so this is a no-op kept for symmetry with init, so callers can
// defer it uniformly regardless of which Oracle implementation they hold.
func (o *Oracle) Release() {}
