package decay

import "math"

// Branch pairs a shared decay type with its branching weight. Weights are
// mutable only while the table is under construction.
type Branch struct {
	typ    *Type
	weight float64
}

// Type returns the decay type of this branch.
func (b *Branch) Type() *Type { return b.typ }

// Weight returns the branching weight.
func (b *Branch) Weight() float64 { return b.weight }

// Table is the ordered decay-branch collection of one species. After
// database construction it is immutable and safe for concurrent reads.
type Table struct {
	branches []*Branch
}

// IsEmpty reports whether the table has no branches.
func (t *Table) IsEmpty() bool { return len(t.branches) == 0 }

// Branches returns the decay branches in construction order. The slice
// must not be modified.
func (t *Table) Branches() []*Branch { return t.branches }

// addMode accumulates ratio onto an existing branch of the same decay
// type, or appends a new branch. Type identity, not value equality,
// decides the match.
func (t *Table) addMode(typ *Type, ratio float64) {
	for _, b := range t.branches {
		if b.typ == typ {
			b.weight += ratio
			return
		}
	}
	t.branches = append(t.branches, &Branch{typ: typ, weight: ratio})
}

// renormalize scales the weights to sum to one. If the sum is already
// within ReallySmall of one it is left untouched to avoid numerical
// noise. Reports whether the correction exceeded 1%.
func (t *Table) renormalize(name string) bool {
	sum := 0.0
	for _, b := range t.branches {
		sum += b.weight
	}
	if math.Abs(sum-1) < reallySmall {
		logf("particle %s: skipping tiny renormalization (sum %g)", name, sum)
		return false
	}
	large := math.Abs(sum-1) > 0.01
	logf("particle %s: renormalizing decay modes with %g", name, sum)
	for _, b := range t.branches {
		b.weight /= sum
	}
	return large
}
