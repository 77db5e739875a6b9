package features

import (
	"math"
	"testing"

	"github.com/cnftools/gbdc/cnf"
	"github.com/cnftools/gbdc/gate"
)

func formulaOf(numVars int, rows [][]int) *cnf.Formula {
	f := &cnf.Formula{NumVars: numVars}
	for i, row := range rows {
		lits := make([]cnf.Literal, len(row))
		for j, v := range row {
			lits[j] = cnf.FromDimacs(v)
		}
		f.Clauses = append(f.Clauses, &cnf.Clause{ID: i, Literals: lits})
	}
	return f
}

func TestNamesAndExtractHaveEqualLength(t *testing.T) {
	f := formulaOf(2, [][]int{{1, 2}, {1, -2}})
	got := Extract(f, nil)
	want := Names()
	if len(got) != len(want) {
		t.Fatalf("len(Extract) = %d, len(Names) = %d, want equal", len(got), len(want))
	}
}

func TestExtractProblemSizeDescriptors(t *testing.T) {
	f := formulaOf(3, [][]int{{1, 2}, {1, -2, 3}})
	rec := Extract(f, nil)
	if rec[0] != 2 {
		t.Errorf("clauses = %v, want 2", rec[0])
	}
	if rec[1] != 3 {
		t.Errorf("variables = %v, want 3", rec[1])
	}
}

func TestExtractHornCounts(t *testing.T) {
	// {1 -2}: one negative and one positive literal -> both horn and inv-horn.
	// {-1 -2 -3}: three negatives -> not horn, is inv-horn (0 positives).
	f := formulaOf(3, [][]int{{1, -2}, {-1, -2, -3}})
	rec := Extract(f, nil)
	names := Names()
	idx := indexOf(names, "horn_clauses")
	if rec[idx] != 1 {
		t.Errorf("horn_clauses = %v, want 1", rec[idx])
	}
	idx = indexOf(names, "inv_horn_clauses")
	if rec[idx] != 2 {
		t.Errorf("inv_horn_clauses = %v, want 2", rec[idx])
	}
}

func TestExtractEmptyFormulaIsAllZero(t *testing.T) {
	f := &cnf.Formula{NumVars: 0}
	rec := Extract(f, nil)
	for i, v := range rec {
		if math.IsNaN(v) {
			t.Fatalf("descriptor %d is NaN, want a finite zero-valued default", i)
		}
		if v != 0 {
			t.Fatalf("descriptor %d (%s) = %v, want 0 for an empty formula", i, Names()[i], v)
		}
	}
}

func TestExtractIncludesGateDescriptorsWhenFormulaProvided(t *testing.T) {
	f := formulaOf(3, [][]int{{1}, {-1, 2}, {-1, 3}, {1, -2, -3}})
	gf := gate.NewFormula(f.NumVars)
	gf.AddGate(cnf.FromDimacs(1), f.Clauses[1:3], f.Clauses[3:4], gate.AND)

	rec := Extract(f, gf)
	names := Names()
	gates := rec[indexOf(names, "gates")]
	if gates != 1 {
		t.Errorf("gates = %v, want 1", gates)
	}
	maxDepth := rec[indexOf(names, "gates_max_depth")]
	if maxDepth != 1 {
		t.Errorf("gates_max_depth = %v, want 1", maxDepth)
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	panic("name not found: " + name)
}
