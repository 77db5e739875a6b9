package gate

import (
	"github.com/cnftools/gbdc"
	"github.com/cnftools/gbdc/cnf"
	"github.com/cnftools/gbdc/cnfindex"
)

// Config selects which classification strategies the analyzer attempts and
// bounds how many outer passes (root-estimation rounds) it runs.
type Config struct {
	Patterns  bool
	Semantic  bool
	MaxPasses int // spec.md S7 Configuration: invalid (<=0) clamps to 1
}

// Analyzer runs the breadth-first gate recognition loop of spec.md S4.2
// against one Index and one Formula. It holds exclusive logical ownership
// of both for the duration of Analyze: no other component may observe
// intermediate state mid-run (spec.md S5).
type Analyzer struct {
	Index   cnfindex.Index
	Formula *Formula
	Oracle  Oracle // nil unless Config.Semantic is true
	Config  Config

	nextProxyVar cnf.Variable
}

// NewAnalyzer builds an Analyzer. oc may be nil when cfg.Semantic is false.
func NewAnalyzer(idx cnfindex.Index, gf *Formula, oc Oracle, cfg Config) *Analyzer {
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = 1
	}
	return &Analyzer{
		Index:        idx,
		Formula:      gf,
		Oracle:       oc,
		Config:       cfg,
		nextProxyVar: cnf.Variable(gf.NumVars + 1),
	}
}

// Analyze runs up to Config.MaxPasses outer passes: each pass estimates the
// current root frontier, records those clauses as roots, and breadth-first
// expands their literals as gate-output candidates. It stops early once
// EstimateRoots returns empty. Whatever clauses remain in the index once
// the loop stops become Formula.Remainder (spec.md S4.2.6).
func (a *Analyzer) Analyze() error {
	for pass := 0; pass < a.Config.MaxPasses; pass++ {
		roots := a.Index.EstimateRoots()
		if len(roots) == 0 {
			break
		}
		var candidates []cnf.Literal
		for _, c := range roots {
			a.Formula.AddRoot(c)
			candidates = append(candidates, c.Literals...)
		}
		if err := a.recognize(candidates); err != nil {
			return err
		}
	}
	a.Formula.Remainder = a.Index.Remaining()
	return nil
}

// recognize implements the breadth-first expansion of spec.md S4.2.1: the
// frontier is deduplicated in place (a literal already tested this run is
// never retested, since its variable can be claimed as a gate output at
// most once), each surviving candidate is tested with isGate, and any gate
// found contributes its input literals to the next pass's frontier.
func (a *Analyzer) recognize(frontier []cnf.Literal) error {
	visited := make(map[cnf.Literal]bool)
	for len(frontier) > 0 {
		var next []cnf.Literal
		for _, o := range frontier {
			if visited[o] {
				continue
			}
			visited[o] = true
			found, inputs, err := a.isGate(o)
			if err != nil {
				return err
			}
			if found {
				next = append(next, inputs...)
			}
		}
		frontier = next
	}
	return nil
}

// isGate implements spec.md S4.2.2: preconditions, then nested-monotonic,
// then pattern, then semantic classification in priority order. On success
// it records the gate, removes var(o) from the index, and returns the
// gate's input literals as the next frontier contribution.
func (a *Analyzer) isGate(o cnf.Literal) (bool, []cnf.Literal, error) {
	backward := a.Index.Buckets(o)
	if len(backward) == 0 {
		return false, nil, nil
	}
	if !a.Index.IsBlockedSet(o) {
		return false, nil, nil
	}
	forward := a.Index.Buckets(o.Negate())

	t := NONE
	switch {
	case a.Formula.IsNestedMonotonic(o, forward, backward):
		t = MONO
	case a.Config.Patterns:
		t = Classify(o, forward, backward)
	}

	if t == NONE && a.Config.Semantic {
		if a.Oracle == nil {
			return false, nil, gbdc.NewError("gate.Analyzer.isGate", "semantic classification enabled but no oracle was configured")
		}
		proxy := a.nextProxyVar
		a.nextProxyVar++
		t = classifySemantic(o, forward, backward, a.Oracle, proxy)
	}
	if t == NONE {
		return false, nil, nil
	}

	inputs := gateInputs(forward, backward, o.Var())
	if !a.Formula.AddGate(o, forward, backward, t) {
		return false, nil, nil
	}
	a.Index.Remove(o.Var())
	return true, inputs, nil
}
