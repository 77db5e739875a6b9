// Package isp reduces a CNF formula to an independent-set problem: a graph
// whose maximum independent set has the same size as the number of clauses
// of the formula satisfiable under the formula's best assignment. Grounded
// on original_source/src/transform/IndependentSet.h's
// generate_independent_set_problem, this is a domain-expansion CLI tool
// (spec.md named it a non-goal only in the sense that its internal design
// is uninteresting, not that it is absent from the external surface).
package isp

import (
	"fmt"
	"io"

	"github.com/cnftools/gbdc/cnf"
)

// Encode builds the independent-set graph for f: one vertex per literal
// occurrence; an edge between every pair of vertices from the same clause
// (selecting two literals of one clause would double-count it); an edge
// between every occurrence of a variable's positive literal and every
// occurrence of its negative literal (the two can't be simultaneously true).
// It returns the vertex and edge counts (the "p edge V E" header values) and
// a writer for the edge list; Write must be called at most once.
func Encode(f *cnf.Formula) (vertices, edges int, write func(w io.Writer) error) {
	occ := make([][]int, 2*(f.NumVars+1))
	node := 0
	for _, c := range f.Clauses {
		size := c.Len()
		for i, l := range c.Literals {
			occ[l] = append(occ[l], node+i+1)
		}
		node += size
	}
	vertices = node

	for _, c := range f.Clauses {
		n := c.Len()
		edges += n * (n - 1) / 2
	}
	for v := 1; v <= f.NumVars; v++ {
		pos := occ[cnf.NewLiteral(cnf.Variable(v), false)]
		neg := occ[cnf.NewLiteral(cnf.Variable(v), true)]
		edges += len(pos) * len(neg)
	}

	write = func(w io.Writer) error {
		node := 0
		for _, c := range f.Clauses {
			size := c.Len()
			for i := 0; i < size; i++ {
				v1 := node + i + 1
				for j := i + 1; j < size; j++ {
					v2 := node + j + 1
					if _, err := fmt.Fprintf(w, "%d %d 0\n", v1, v2); err != nil {
						return err
					}
				}
			}
			node += size
		}
		for v := 1; v <= f.NumVars; v++ {
			pos := occ[cnf.NewLiteral(cnf.Variable(v), false)]
			neg := occ[cnf.NewLiteral(cnf.Variable(v), true)]
			for _, n1 := range pos {
				for _, n2 := range neg {
					if _, err := fmt.Fprintf(w, "%d %d 0\n", n1, n2); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	return vertices, edges, write
}

// WriteProblem writes the full "p edge" problem: the comment header stating
// the satisfiability correspondence, the problem line, then the edge list.
func WriteProblem(w io.Writer, f *cnf.Formula) error {
	vertices, edges, write := Encode(f)
	if _, err := fmt.Fprintf(w, "c satisfiable iff independent set size is %d\n", len(f.Clauses)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "p edge %d %d\n", vertices, edges); err != nil {
		return err
	}
	return write(w)
}
