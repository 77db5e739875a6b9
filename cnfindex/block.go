package cnfindex

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cnftools/gbdc/cnf"
)

// partition groups the clauses of one literal bucket that mention the exact
// same set of "other" variables (the clause's variables minus the bucket's
// own literal's variable).
type partition struct {
	vars    map[cnf.Variable]bool
	clauses []*cnf.Clause
}

// Block is the block-stratified Index variant: within each literal's
// bucket, clauses are additionally grouped by the set of other variables
// they mention. IsBlockedSet uses this grouping to reject quickly whenever
// an entire partition of the backward bucket shares no variable at all with
// a partition of the forward bucket - such a pair can never resolve to a
// tautology, so the blocked-set test can fail without enumerating every
// individual clause pair, which is the large win on dense indices described
// by the reference implementation (spec.md S4.1).
type Block struct {
	numVars    int
	buckets    [][]*cnf.Clause // same flat view as Occurrence, for Buckets()/Remove()
	partitions [][]*partition  // per-literal partitions of buckets[l]
	removed    *bitset.BitSet
}

// NewBlock builds a block-partitioned index over every clause of f.
func NewBlock(f *cnf.Formula) *Block {
	idx := &Block{
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
	idx.partitions = make([][]*partition, len(idx.buckets))
	for l, bucket := range idx.buckets {
		idx.partitions[l] = partitionBucket(bucket, cnf.Literal(l).Var())
	}
	return idx
}

func partitionBucket(bucket []*cnf.Clause, self cnf.Variable) []*partition {
	byKey := make(map[string]*partition)
	var order []string
	for _, c := range bucket {
		vs := otherVars(c, self)
		key := signature(vs)
		p, ok := byKey[key]
		if !ok {
			p = &partition{vars: vs}
			byKey[key] = p
			order = append(order, key)
		}
		p.clauses = append(p.clauses, c)
	}
	out := make([]*partition, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

func otherVars(c *cnf.Clause, self cnf.Variable) map[cnf.Variable]bool {
	out := make(map[cnf.Variable]bool, c.Len())
	for _, l := range c.Literals {
		if l.Var() != self {
			out[l.Var()] = true
		}
	}
	return out
}

func signature(vs map[cnf.Variable]bool) string {
	ids := make([]int, 0, len(vs))
	for v := range vs {
		ids = append(ids, int(v))
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func intersects(a, b map[cnf.Variable]bool) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for v := range small {
		if large[v] {
			return true
		}
	}
	return false
}

func (bl *Block) Size() int {
	return len(bl.buckets)
}

func (bl *Block) Buckets(l cnf.Literal) []*cnf.Clause {
	return bl.buckets[litBucket(l)]
}

func (bl *Block) Remove(v cnf.Variable) {
	if int(v) < 0 || int(v) >= int(bl.removed.Len()) {
		return
	}
	if bl.removed.Test(uint(v)) {
		return
	}
	bl.removed.Set(uint(v))
	pos := cnf.NewLiteral(v, false)
	neg := cnf.NewLiteral(v, true)
	doomed := make(map[int]bool)
	for _, c := range bl.buckets[litBucket(pos)] {
		doomed[c.ID] = true
	}
	for _, c := range bl.buckets[litBucket(neg)] {
		doomed[c.ID] = true
	}
	if len(doomed) == 0 {
		return
	}
	for i := range bl.buckets {
		bl.buckets[i] = filterOut(bl.buckets[i], doomed)
		bl.partitions[i] = partitionBucket(bl.buckets[i], cnf.Literal(i).Var())
	}
}

// IsBlockedSet checks partitions of the backward bucket against partitions
// of the forward bucket: a disjoint pair of partitions fails the blocked-set
// test immediately; overlapping partitions fall back to the exact
// per-clause tautology check.
func (bl *Block) IsBlockedSet(out cnf.Literal) bool {
	fwdPartitions := bl.partitions[litBucket(out.Negate())]
	bwdPartitions := bl.partitions[litBucket(out)]
	if len(fwdPartitions) == 0 {
		return false
	}
	for _, fp := range fwdPartitions {
		for _, bp := range bwdPartitions {
			if !intersects(fp.vars, bp.vars) {
				return false // disjoint partitions can never resolve tautologically
			}
			for _, f := range fp.clauses {
				for _, b := range bp.clauses {
					if !resolventIsTautological(f, b, out) {
						return false
					}
				}
			}
		}
	}
	return true
}

// EstimateRoots uses the same policy as Occurrence (spec.md S4.1: ties
// broken by clause ID / insertion order, deterministic across runs).
func (bl *Block) EstimateRoots() []*cnf.Clause {
	return estimateRoots(bl.Remaining())
}

// Remaining returns every distinct clause still present in any bucket.
func (bl *Block) Remaining() []*cnf.Clause {
	seen := make(map[int]bool)
	var out []*cnf.Clause
	for _, bucket := range bl.buckets {
		for _, c := range bucket {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}
	return out
}
