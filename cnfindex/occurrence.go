package cnfindex

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/cnftools/gbdc/cnf"
)

// Occurrence is the flat-bucket Index variant: one slice of clauses per
// literal, with no further partitioning. Blocked-set checks are a full
// Cartesian product over the forward and backward buckets.
type Occurrence struct {
	numVars int
	buckets [][]*cnf.Clause
	removed *bitset.BitSet
}

// NewOccurrence builds a flat occurrence-list index over every clause of f.
func NewOccurrence(f *cnf.Formula) *Occurrence {
	idx := &Occurrence{
		numVars: f.NumVars,
		buckets: make([][]*cnf.Clause, 2*(f.NumVars+1)),
		removed: bitset.New(uint(f.NumVars + 1)),
	}
	for _, c := range f.Clauses {
		for _, l := range c.Literals {
			b := litBucket(l)
			idx.buckets[b] = append(idx.buckets[b], c)
		}
	}
	return idx
}

func (o *Occurrence) Size() int {
	return len(o.buckets)
}

func (o *Occurrence) Buckets(l cnf.Literal) []*cnf.Clause {
	return o.buckets[litBucket(l)]
}

func (o *Occurrence) Remove(v cnf.Variable) {
	if int(v) < 0 || int(v) >= int(o.removed.Len()) {
		return
	}
	if o.removed.Test(uint(v)) {
		return // idempotent
	}
	o.removed.Set(uint(v))
	pos := cnf.NewLiteral(v, false)
	neg := cnf.NewLiteral(v, true)
	doomed := make(map[int]bool)
	for _, c := range o.buckets[litBucket(pos)] {
		doomed[c.ID] = true
	}
	for _, c := range o.buckets[litBucket(neg)] {
		doomed[c.ID] = true
	}
	if len(doomed) == 0 {
		return
	}
	for i := range o.buckets {
		o.buckets[i] = filterOut(o.buckets[i], doomed)
	}
}

func filterOut(clauses []*cnf.Clause, doomed map[int]bool) []*cnf.Clause {
	kept := clauses[:0]
	for _, c := range clauses {
		if !doomed[c.ID] {
			kept = append(kept, c)
		}
	}
	return kept
}

func (o *Occurrence) IsBlockedSet(out cnf.Literal) bool {
	return isBlockedSet(o.Buckets(out.Negate()), o.Buckets(out), out)
}

// EstimateRoots prefers unit clauses (the strongest, most determined
// constraints) when any remain; otherwise it returns the currently longest
// clauses still present, on the theory that a circuit's final output
// constraint is usually among its largest clauses. Ties are broken by
// clause ID (insertion order) for determinism (spec.md S4.1, S8 property 5).
func (o *Occurrence) EstimateRoots() []*cnf.Clause {
	return estimateRoots(o.Remaining())
}

// Remaining returns every distinct clause still present in any bucket.
func (o *Occurrence) Remaining() []*cnf.Clause {
	seen := make(map[int]bool)
	var out []*cnf.Clause
	for _, bucket := range o.buckets {
		for _, c := range bucket {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func estimateRoots(remaining []*cnf.Clause) []*cnf.Clause {
	if len(remaining) == 0 {
		return nil
	}
	units := make([]*cnf.Clause, 0)
	maxLen := 0
	for _, c := range remaining {
		if c.Len() == 1 {
			units = append(units, c)
		}
		if c.Len() > maxLen {
			maxLen = c.Len()
		}
	}
	var out []*cnf.Clause
	if len(units) > 0 {
		out = units
	} else {
		for _, c := range remaining {
			if c.Len() == maxLen {
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
