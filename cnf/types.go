// Package cnf provides the typed representation of variables, literals,
// clauses and formulas shared by every other gbdc package: the clause index,
// the gate recognizer, the DIMACS reader/writer and the feature extractor all
// operate on these types without owning or mutating a Formula after it is
// built.
package cnf

import "fmt"

// Variable identifies a DIMACS variable, numbered 1..NumVars.
type Variable int32

// Literal is a signed variable reference. By convention the positive literal
// of variable v is encoded as 2v and the negative literal as 2v+1, so
// Literal 0 never denotes a real literal - it is reserved for the DIMACS wire
// terminator. This encoding keeps literals totally ordered (positive before
// negative, for equal variables) and makes negation a single XOR.
type Literal int32

// NewLiteral builds the literal of variable v with the given sign; negated
// true yields the negative literal.
func NewLiteral(v Variable, negated bool) Literal {
	if negated {
		return Literal(2*v + 1)
	}
	return Literal(2 * v)
}

// FromDimacs converts a nonzero signed DIMACS integer into a Literal.
func FromDimacs(x int) Literal {
	if x > 0 {
		return NewLiteral(Variable(x), false)
	}
	return NewLiteral(Variable(-x), true)
}

// Var returns the variable underlying l.
func (l Literal) Var() Variable {
	return Variable(l / 2)
}

// Negated reports whether l is the negative literal of its variable.
func (l Literal) Negated() bool {
	return l%2 == 1
}

// Negate returns ~l, the complementary literal.
func (l Literal) Negate() Literal {
	return l ^ 1
}

// Dimacs renders l as a signed DIMACS integer.
func (l Literal) Dimacs() int {
	if l.Negated() {
		return -int(l.Var())
	}
	return int(l.Var())
}

// String implements fmt.Stringer using the DIMACS rendering.
func (l Literal) String() string {
	return fmt.Sprintf("%d", l.Dimacs())
}

// Clause is a non-empty, duplicate-free, non-tautological sequence of
// literals, treated as a set for gate-recognition purposes but preserved in
// insertion order for printing. ID is stable for the lifetime of the Formula
// that owns the clause; it is the tie-breaker of root estimation and the
// deduplication key when the remainder is enumerated.
type Clause struct {
	ID       int
	Literals []Literal
}

// Len returns the number of literals in c.
func (c *Clause) Len() int {
	return len(c.Literals)
}

// Contains reports whether c mentions literal l exactly (not its negation).
func (c *Clause) Contains(l Literal) bool {
	for _, m := range c.Literals {
		if m == l {
			return true
		}
	}
	return false
}

// String renders c as whitespace-separated DIMACS literals terminated by 0.
func (c *Clause) String() string {
	s := ""
	for _, l := range c.Literals {
		s += l.String() + " "
	}
	return s + "0"
}

// Formula is an ordered sequence of clauses over a fixed variable count. A
// Formula is immutable once built by the reader: the clause index and gate
// formula hold non-owning references into Formula.Clauses and never extend
// its lifetime or mutate it.
type Formula struct {
	NumVars int
	Clauses []*Clause
}

// NVars returns the declared variable count.
func (f *Formula) NVars() int {
	return f.NumVars
}

// NClauses returns the number of clauses.
func (f *Formula) NClauses() int {
	return len(f.Clauses)
}

// DedupeClause removes duplicate literals while preserving their original
// insertion order, and reports whether the clause is tautological (contains
// both a literal and its negation) and should be discarded entirely. This is
// the reader's contract (spec.md S6): insertion order of surviving literals
// is never disturbed.
func DedupeClause(lits []Literal) (out []Literal, tautology bool) {
	seen := make(map[Literal]bool, len(lits))
	for _, l := range lits {
		if seen[l.Negate()] {
			return nil, true
		}
		seen[l] = true
	}
	out = make([]Literal, 0, len(lits))
	added := make(map[Literal]bool, len(lits))
	for _, l := range lits {
		if added[l] {
			continue
		}
		added[l] = true
		out = append(out, l)
	}
	return out, false
}

// SortClause returns a copy of lits sorted by absolute (variable) value, used
// by the normalize tool (spec.md S6) and anywhere a canonical, order-
// independent rendering of a clause's literals is required (e.g. gate
// input lists, spec.md S4.2.1).
func SortClause(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	copy(out, lits)
	insertionSortByVar(out)
	return out
}

// insertionSortByVar orders literals by (variable, sign), i.e. by their raw
// integer encoding, which already places the positive literal of a variable
// immediately before its negative literal.
func insertionSortByVar(lits []Literal) {
	for i := 1; i < len(lits); i++ {
		for j := i; j > 0 && lits[j-1] > lits[j]; j-- {
			lits[j-1], lits[j] = lits[j], lits[j-1]
		}
	}
}
