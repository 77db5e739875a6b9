package isp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cnftools/gbdc/cnf"
)

func TestEncodeCountsVerticesAndEdges(t *testing.T) {
	// p cnf 2 2 / 1 2 0 / -1 -2 0: 2 vertices per clause, 4 total vertices.
	// Intra-clause edges: 1 per clause (pair), 2 total.
	// Inter-polarity edges: var 1 has one positive occurrence (clause 0)
	// and one negative (clause 1) -> 1 edge; same for var 2 -> 1 edge.
	f := &cnf.Formula{
		NumVars: 2,
		Clauses: []*cnf.Clause{
			{ID: 0, Literals: []cnf.Literal{cnf.FromDimacs(1), cnf.FromDimacs(2)}},
			{ID: 1, Literals: []cnf.Literal{cnf.FromDimacs(-1), cnf.FromDimacs(-2)}},
		},
	}
	vertices, edges, write := Encode(f)
	if vertices != 4 {
		t.Fatalf("vertices = %d, want 4", vertices)
	}
	if edges != 4 {
		t.Fatalf("edges = %d, want 4 (2 intra-clause + 2 inter-polarity)", edges)
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != edges {
		t.Fatalf("wrote %d edge lines, want %d", len(lines), edges)
	}
}

func TestWriteProblemHeaderMatchesClauseCount(t *testing.T) {
	f := &cnf.Formula{
		NumVars: 1,
		Clauses: []*cnf.Clause{
			{ID: 0, Literals: []cnf.Literal{cnf.FromDimacs(1)}},
		},
	}
	var buf bytes.Buffer
	if err := WriteProblem(&buf, f); err != nil {
		t.Fatalf("WriteProblem: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "c satisfiable iff independent set size is 1\n") {
		t.Fatalf("missing satisfiability comment, got:\n%s", out)
	}
	if !strings.Contains(out, "p edge 1 0\n") {
		t.Fatalf("expected a single-vertex, zero-edge problem line, got:\n%s", out)
	}
}
