package gate

import (
	"testing"

	"github.com/cnftools/gbdc/cnf"
	"github.com/cnftools/gbdc/cnfindex"
)

func buildFormula(numVars int, rows [][]int) *cnf.Formula {
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

// TestAnalyzeRecognizesAndGate is spec.md S8 scenario (b): x <-> (y AND z)
// via Tseitin clauses {-x y, -x z, x -y -z} plus unit root {x}.
func TestAnalyzeRecognizesAndGate(t *testing.T) {
	f := buildFormula(3, [][]int{
		{1},
		{-1, 2},
		{-1, 3},
		{1, -2, -3},
	})
	idx := cnfindex.NewOccurrence(f)
	gf := NewFormula(f.NumVars)
	a := NewAnalyzer(idx, gf, nil, Config{Patterns: true, Semantic: false, MaxPasses: 1})
	if err := a.Analyze(); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	g, ok := gf.Gate(1)
	if !ok {
		t.Fatalf("variable 1 was not recognised as a gate output")
	}
	if g.Type != AND {
		t.Fatalf("gate type = %v, want AND", g.Type)
	}
	wantInputs := map[cnf.Variable]bool{2: true, 3: true}
	if len(g.Inputs) != 2 {
		t.Fatalf("gate inputs = %v, want 2 literals over {2,3}", g.Inputs)
	}
	for _, l := range g.Inputs {
		if !wantInputs[l.Var()] {
			t.Errorf("unexpected input literal %v", l)
		}
	}
	if len(gf.Remainder) != 0 {
		t.Errorf("remainder = %v, want empty", gf.Remainder)
	}
}

// TestAnalyzeFindsNoGateWhenUnblocked is spec.md S8 scenario (c): p cnf 2 2
// / 1 2 0 / 1 -2 0 - the blocked-set precondition fails for every candidate,
// so both clauses must end up in the remainder untouched.
func TestAnalyzeFindsNoGateWhenUnblocked(t *testing.T) {
	f := buildFormula(2, [][]int{
		{1, 2},
		{1, -2},
	})
	idx := cnfindex.NewOccurrence(f)
	gf := NewFormula(f.NumVars)
	a := NewAnalyzer(idx, gf, nil, Config{Patterns: true, Semantic: false, MaxPasses: 1})
	if err := a.Analyze(); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(gf.Gates()) != 0 {
		t.Fatalf("Gates() = %v, want none", gf.Gates())
	}
	if len(gf.Remainder) != 2 {
		t.Fatalf("remainder has %d clauses, want 2", len(gf.Remainder))
	}
}

// TestAnalyzeWithPatternsAndSemanticOffFindsNothing is spec.md S8 scenario
// (f): even on a formula with a genuine AND gate, disabling both
// classification strategies must yield zero gates and the whole formula as
// remainder.
func TestAnalyzeWithPatternsAndSemanticOffFindsNothing(t *testing.T) {
	f := buildFormula(3, [][]int{
		{1},
		{-1, 2},
		{-1, 3},
		{1, -2, -3},
	})
	idx := cnfindex.NewOccurrence(f)
	gf := NewFormula(f.NumVars)
	a := NewAnalyzer(idx, gf, nil, Config{Patterns: false, Semantic: false, MaxPasses: 1})
	if err := a.Analyze(); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(gf.Gates()) != 0 {
		t.Fatalf("Gates() = %v, want none", gf.Gates())
	}
	if len(gf.Remainder) != len(f.Clauses) {
		t.Fatalf("remainder has %d clauses, want %d", len(gf.Remainder), len(f.Clauses))
	}
}

// TestAnalyzeMultiPassRecoversSecondComponent builds two disconnected AND
// gates: one rooted at a unit clause (variable 1), one with no unit clause
// of its own (variable 6, rooted only at its defining length-3 clause). A
// single pass's EstimateRoots sees the unit clause and returns only it (spec
// md S4.1: units dominate the root estimate whenever any remain), so the
// second component is never reached in pass one. Only after the first
// component's variables are removed does a second pass's root estimate fall
// back to the second component's longest clause, discovering the nested
// gate there too (spec.md S4.2: "after each pass, re-estimate roots").
func TestAnalyzeMultiPassRecoversSecondComponent(t *testing.T) {
	rows := [][]int{
		{1},
		{-1, 2},
		{-1, 3},
		{1, -2, -3},
		{-6, 4},
		{-6, 5},
		{6, -4, -5},
	}

	f := buildFormula(6, rows)
	onePass := cnfindex.NewOccurrence(f)
	gfOne := NewFormula(f.NumVars)
	a1 := NewAnalyzer(onePass, gfOne, nil, Config{Patterns: true, Semantic: false, MaxPasses: 1})
	if err := a1.Analyze(); err != nil {
		t.Fatalf("Analyze (1 pass): %v", err)
	}
	if _, ok := gfOne.Gate(1); !ok {
		t.Fatalf("first component's gate (var 1) not recognised in pass 1")
	}
	if _, ok := gfOne.Gate(6); ok {
		t.Fatalf("second component's gate (var 6) was recognised in a single pass, want it deferred")
	}
	if len(gfOne.Remainder) != 3 {
		t.Fatalf("remainder after 1 pass = %d clauses, want 3 (second component untouched)", len(gfOne.Remainder))
	}

	f2 := buildFormula(6, rows)
	twoPass := cnfindex.NewOccurrence(f2)
	gfTwo := NewFormula(f2.NumVars)
	a2 := NewAnalyzer(twoPass, gfTwo, nil, Config{Patterns: true, Semantic: false, MaxPasses: 2})
	if err := a2.Analyze(); err != nil {
		t.Fatalf("Analyze (2 passes): %v", err)
	}
	if _, ok := gfTwo.Gate(1); !ok {
		t.Fatalf("first component's gate (var 1) not recognised in 2 passes")
	}
	g6, ok := gfTwo.Gate(6)
	if !ok {
		t.Fatalf("second component's gate (var 6) not recognised in 2 passes")
	}
	if g6.Type != AND {
		t.Fatalf("second component gate type = %v, want AND", g6.Type)
	}
	if len(gfTwo.Remainder) != 0 {
		t.Fatalf("remainder after 2 passes = %v, want empty", gfTwo.Remainder)
	}
}

// TestAnalyzeIsDeterministic is spec.md S8 property 5: two runs over equal
// input and configuration produce equal gate formulas (same gates, same
// order, same remainder size).
func TestAnalyzeIsDeterministic(t *testing.T) {
	rows := [][]int{
		{1},
		{-1, 2},
		{-1, 3},
		{1, -2, -3},
	}
	run := func() *Formula {
		f := buildFormula(3, rows)
		idx := cnfindex.NewOccurrence(f)
		gf := NewFormula(f.NumVars)
		a := NewAnalyzer(idx, gf, nil, Config{Patterns: true, Semantic: false, MaxPasses: 1})
		if err := a.Analyze(); err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		return gf
	}
	a1, a2 := run(), run()
	if len(a1.Gates()) != len(a2.Gates()) {
		t.Fatalf("gate counts differ: %d vs %d", len(a1.Gates()), len(a2.Gates()))
	}
	for i, g1 := range a1.Gates() {
		g2 := a2.Gates()[i]
		if g1.Output != g2.Output || g1.Type != g2.Type {
			t.Fatalf("gate %d differs: %+v vs %+v", i, g1, g2)
		}
	}
	if len(a1.Remainder) != len(a2.Remainder) {
		t.Fatalf("remainder sizes differ: %d vs %d", len(a1.Remainder), len(a2.Remainder))
	}
}
