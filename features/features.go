// Package features computes the statistical descriptor vector of spec.md
// S4.4, ported from original_source/src/util/CNFStats.h's BaseFeatures and
// BaseFeatureNames (the "Base" extractor named in spec.md S9's open
// question; see DESIGN.md for why "Base" was chosen over the older
// "Satzilla" ordering). Gate-derived descriptors are a domain extension,
// always present at the end of the vector and all zero unless a
// gate.Formula is supplied.
package features

import (
	"math"

	"github.com/cnftools/gbdc/cnf"
	"github.com/cnftools/gbdc/gate"
)

var baseNames = []string{
	"clauses", "variables",
	"vcg_vdegrees_mean", "vcg_vdegrees_variance", "vcg_vdegrees_min", "vcg_vdegrees_max", "vcg_vdegrees_entropy",
	"vcg_cdegrees_mean", "vcg_cdegrees_variance", "vcg_cdegrees_min", "vcg_cdegrees_max", "vcg_cdegrees_entropy",
	"vg_degrees_mean", "vg_degrees_variance", "vg_degrees_min", "vg_degrees_max", "vg_degrees_entropy",
	"vg_jwdegrees_mean", "vg_jwdegrees_variance", "vg_jwdegrees_min", "vg_jwdegrees_max", "vg_jwdegrees_entropy",
	"cg_degrees_mean", "cg_degrees_variance", "cg_degrees_min", "cg_degrees_max", "cg_degrees_entropy",
	"balance_clause_mean", "balance_clause_variance", "balance_clause_min", "balance_clause_max", "balance_clause_entropy",
	"balance_vars_mean", "balance_vars_variance", "balance_vars_min", "balance_vars_max", "balance_vars_entropy",
	"clause_size_1", "clause_size_2", "clause_size_3", "clause_size_4", "clause_size_5",
	"clause_size_6", "clause_size_7", "clause_size_8", "clause_size_9",
	"horn_clauses", "horn_vars_mean", "horn_vars_variance", "horn_vars_min", "horn_vars_max", "horn_vars_entropy",
	"inv_horn_clauses", "inv_horn_vars_mean", "inv_horn_vars_variance", "inv_horn_vars_min", "inv_horn_vars_max", "inv_horn_vars_entropy",
}

var gateNames = []string{
	"gates", "gates_max_depth",
	"gate_depth_mean", "gate_depth_variance", "gate_depth_min", "gate_depth_max", "gate_depth_entropy",
}

// Names returns the fixed, ordered descriptor names Extract produces.
func Names() []string {
	out := make([]string, 0, len(baseNames)+len(gateNames))
	out = append(out, baseNames...)
	out = append(out, gateNames...)
	return out
}

// Extract computes the descriptor vector for f, and for gf when gf is not
// nil (a gate formula recovered from f by the analyzer); when gf is nil the
// gate-derived descriptors are all zero. len(Extract(...)) == len(Names()).
func Extract(f *cnf.Formula, gf *gate.Formula) []float64 {
	record := baseFeatures(f)
	return append(record, gateFeatures(gf)...)
}

func baseFeatures(f *cnf.Formula) []float64 {
	nVars := f.NumVars
	nClauses := len(f.Clauses)

	variableOccurrences := make([]float64, nVars+1)
	variableDegree := make([]float64, nVars+1)
	variableJWDegree := make([]float64, nVars+1)
	variableHorn := make([]float64, nVars+1)
	variableInvHorn := make([]float64, nVars+1)
	literalOccurrences := make(map[cnf.Literal]float64, 2*(nVars+1))
	clauseOccurrences := make([]float64, 0, nClauses)
	posNegPerClause := make([]float64, 0, nClauses)
	var clauseSizes [10]float64
	horn, invHorn := 0.0, 0.0

	for _, c := range f.Clauses {
		size := c.Len()
		if size >= 1 && size <= 9 {
			clauseSizes[size]++
		}
		clauseOccurrences = append(clauseOccurrences, float64(size))

		neg := 0.0
		for _, l := range c.Literals {
			variableOccurrences[l.Var()]++
			literalOccurrences[l]++
			variableDegree[l.Var()] += float64(size - 1)
			variableJWDegree[l.Var()] += float64(size) / math.Pow(2, float64(size))
			if l.Negated() {
				neg++
			}
		}
		pos := float64(size) - neg
		posNegPerClause = append(posNegPerClause, minOverMax(pos, neg))

		if neg <= 1 {
			horn++
			for _, l := range c.Literals {
				variableHorn[l.Var()]++
			}
		}
		if pos <= 1 {
			invHorn++
			for _, l := range c.Literals {
				variableInvHorn[l.Var()]++
			}
		}
	}

	posNegPerVariable := make([]float64, 0, nVars)
	for v := 1; v <= nVars; v++ {
		pos := literalOccurrences[cnf.NewLiteral(cnf.Variable(v), false)]
		neg := literalOccurrences[cnf.NewLiteral(cnf.Variable(v), true)]
		posNegPerVariable = append(posNegPerVariable, minOverMax(pos, neg))
	}

	clauseDegree := make([]float64, nClauses)
	for i, c := range f.Clauses {
		var degree float64
		for _, l := range c.Literals {
			degree += variableOccurrences[l.Var()]
		}
		clauseDegree[i] = degree - float64(c.Len())
	}

	// variableOccurrences and its siblings are sized nVars+1 with index 0
	// always zero (there is no variable 0); pushed whole, including that
	// leading zero, to match CNFStats.h's own BaseFeatures exactly.
	record := []float64{float64(nClauses), float64(nVars)}
	pushDistribution(&record, variableOccurrences)
	pushDistribution(&record, clauseOccurrences)
	pushDistribution(&record, variableDegree)
	pushDistribution(&record, variableJWDegree)
	pushDistribution(&record, clauseDegree)
	pushDistribution(&record, posNegPerClause)
	pushDistribution(&record, posNegPerVariable)
	for size := 1; size <= 9; size++ {
		record = append(record, clauseSizes[size])
	}
	record = append(record, horn)
	pushDistribution(&record, variableHorn)
	record = append(record, invHorn)
	pushDistribution(&record, variableInvHorn)
	return record
}

func gateFeatures(gf *gate.Formula) []float64 {
	if gf == nil {
		return make([]float64, len(gateNames))
	}
	gates := gf.Gates()
	depths := make([]float64, len(gates))
	maxDepth := 0
	for i, g := range gates {
		depths[i] = float64(g.Depth)
		if g.Depth > maxDepth {
			maxDepth = g.Depth
		}
	}
	record := []float64{float64(len(gates)), float64(maxDepth)}
	pushDistribution(&record, depths)
	return record
}

// minOverMax divides the smaller of pos/neg by the larger, or returns 0 when
// both are zero - CNFStats.h's balance ratio ("divide min by max, not pos by
// neg as in satzilla").
func minOverMax(pos, neg float64) float64 {
	hi, lo := pos, neg
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi <= 0 {
		return 0
	}
	return lo / hi
}
