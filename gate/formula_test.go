package gate

import (
	"testing"

	"github.com/cnftools/gbdc/cnf"
)

func clauseLiteral(v int) cnf.Literal {
	return cnf.FromDimacs(v)
}

func TestAddGateRejectsDuplicateOutput(t *testing.T) {
	gf := NewFormula(4)
	forward := []*cnf.Clause{clause(0, -1, 2)}
	backward := []*cnf.Clause{clause(1, 1, -2)}
	if !gf.AddGate(clauseLiteral(1), forward, backward, OR) {
		t.Fatalf("first AddGate should succeed")
	}
	if gf.AddGate(clauseLiteral(1), forward, backward, OR) {
		t.Fatalf("second AddGate for the same output variable should fail")
	}
	if len(gf.Gates()) != 1 {
		t.Fatalf("Gates() = %v, want exactly one gate", gf.Gates())
	}
}

func TestAddGateComputesDepthFromInputs(t *testing.T) {
	gf := NewFormula(4)
	// gate on variable 2 first, depth 1, no recognised inputs.
	gf.AddGate(clauseLiteral(2), nil, []*cnf.Clause{clause(0, 2, -3)}, OR)
	// gate on variable 1 uses variable 2 as an input: depth = 1 + 1 = 2.
	forward := []*cnf.Clause{clause(1, -1, 2)}
	backward := []*cnf.Clause{clause(2, 1, -2)}
	gf.AddGate(clauseLiteral(1), forward, backward, OR)
	g, ok := gf.Gate(1)
	if !ok {
		t.Fatalf("variable 1 not recorded as a gate")
	}
	if g.Depth != 2 {
		t.Fatalf("depth = %d, want 2", g.Depth)
	}
}

// TestIsNestedMonotonicRequiresAllInputsAlreadyOutputs uses a forward/
// backward pair where variable 2 appears only positively across both
// buckets (an artificial fixture - real forward/backward clause pairs
// usually flip an input's sign between the two buckets, which is exactly
// why MONO is a narrow, cheap-to-check special case rather than the usual
// path; see TestIsNestedMonotonicFalseWhenSignFlipsBetweenBuckets).
func TestIsNestedMonotonicRequiresAllInputsAlreadyOutputs(t *testing.T) {
	gf := NewFormula(4)
	forward := []*cnf.Clause{clause(0, -1, 2)}
	backward := []*cnf.Clause{clause(1, 1, 2)}
	if gf.IsNestedMonotonic(clauseLiteral(1), forward, backward) {
		t.Fatalf("variable 2 is not yet a gate output, IsNestedMonotonic should be false")
	}
	gf.AddGate(clauseLiteral(2), nil, []*cnf.Clause{clause(2, 2, -3)}, OR)
	if !gf.IsNestedMonotonic(clauseLiteral(1), forward, backward) {
		t.Fatalf("all inputs are now gate outputs with single consistent polarity, want true")
	}
}

// TestIsNestedMonotonicFalseWhenSignFlipsBetweenBuckets shows the ordinary
// case: an AND/OR-shaped gate whose input appears positively in one bucket
// and negatively in the other is never nested-monotonic, regardless of
// whether that input is already a recognised gate output.
func TestIsNestedMonotonicFalseWhenSignFlipsBetweenBuckets(t *testing.T) {
	gf := NewFormula(4)
	gf.AddGate(clauseLiteral(2), nil, []*cnf.Clause{clause(0, 2, -3)}, OR)
	forward := []*cnf.Clause{clause(1, -1, 2)}
	backward := []*cnf.Clause{clause(2, 1, -2)}
	if gf.IsNestedMonotonic(clauseLiteral(1), forward, backward) {
		t.Fatalf("variable 2 flips polarity between forward and backward, IsNestedMonotonic must be false")
	}
}
