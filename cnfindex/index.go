// Package cnfindex maps every literal of a formula to the clauses that
// currently contain it, and answers the blocked-set queries the gate
// analyzer needs to test candidate outputs. Two interchangeable
// implementations are provided (Occurrence and Block); both satisfy the
// same Index interface, which the analyzer consumes without knowing which
// variant it was constructed with (spec.md S9, "Polymorphic index").
package cnfindex

import "github.com/cnftools/gbdc/cnf"

// Index is the capability set the gate analyzer depends on: literal
// buckets, variable removal, the blocked-set predicate and root estimation.
type Index interface {
	// Size returns the number of literal buckets, 2*(NumVars+1).
	Size() int
	// Buckets returns a non-owning view of the clauses currently
	// containing literal l. Callers must not retain the slice across a
	// Remove call.
	Buckets(l cnf.Literal) []*cnf.Clause
	// Remove evicts every clause mentioning variable v, positively or
	// negatively, from every bucket. Idempotent.
	Remove(v cnf.Variable)
	// IsBlockedSet reports whether Buckets(~o) is blocked on o against
	// Buckets(o): every resolvent on o between a clause of Buckets(~o) and
	// a clause of Buckets(o) is tautological.
	IsBlockedSet(o cnf.Literal) bool
	// EstimateRoots returns the current frontier of root-clause
	// candidates, or nil once the index is empty.
	EstimateRoots() []*cnf.Clause
	// Remaining returns every distinct clause still present in any bucket,
	// used by the analyzer to compute the final remainder once recognition
	// has stopped (spec.md S4.2.6).
	Remaining() []*cnf.Clause
}

// litBucket returns the index into a flat 2*(V+1)-sized table for literal l.
func litBucket(l cnf.Literal) int {
	return int(l)
}

// isBlockedSet implements the blocked-set predicate (spec.md S4.1) against
// buckets already fetched for o and ~o. Occurrence uses it directly; Block
// runs its own partition-wise loop over the same resolventIsTautological
// check.
func isBlockedSet(fwd, bwd []*cnf.Clause, o cnf.Literal) bool {
	if len(fwd) == 0 {
		return false
	}
	for _, f := range fwd {
		for _, b := range bwd {
			if !resolventIsTautological(f, b, o) {
				return false
			}
		}
	}
	return true
}

// resolventIsTautological reports whether the resolvent of f (which
// contains ~o) and b (which contains o) on variable var(o) is tautological,
// i.e. some other literal l of f has its negation in b.
func resolventIsTautological(f, b *cnf.Clause, o cnf.Literal) bool {
	no := o.Negate()
	for _, l := range f.Literals {
		if l == no {
			continue
		}
		if b.Contains(l.Negate()) {
			return true
		}
	}
	return false
}

// vars collects the distinct variables mentioned across a set of clauses,
// excluding the given variable (typically the candidate output's own).
func vars(clauses []*cnf.Clause, exclude cnf.Variable) map[cnf.Variable]struct{} {
	out := make(map[cnf.Variable]struct{})
	for _, c := range clauses {
		for _, l := range c.Literals {
			if l.Var() != exclude {
				out[l.Var()] = struct{}{}
			}
		}
	}
	return out
}
