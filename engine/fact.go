package engine

import (
	"github.com/arrowcoil/trilog"
	"github.com/emirpasic/gods/lists/arraylist"
)

// Fact is the data record holding one atom's current tri-valued
// resolution state. There is exactly one Fact per atom seen by the
// parser; every Node referencing that atom shares this instance.
type Fact struct {
	Repr     trilog.Atom
	Value    trilog.Truth
	Resolved bool

	// Rules holds the rule-root Nodes (in rule registration order)
	// whose conclusion mentions Repr — the right-hand side of an
	// Implies, or either side of an IfAndOnlyIf (§3).
	Rules *arraylist.List
}

// newFact creates an unresolved Fact, initially False, per §3's
// lifecycle note (Facts are created lazily on first sighting).
func newFact(a trilog.Atom) *Fact {
	return &Fact{
		Repr:     a,
		Value:    trilog.False,
		Resolved: false,
		Rules:    arraylist.New(),
	}
}

// register appends rule (a rule-root Node) to this Fact's rule list,
// preserving parse order (§3, §5 ordering guarantees).
func (f *Fact) register(rule *Node) {
	f.Rules.Add(rule)
}

// RuleAt returns the rule-root Node at index i.
func (f *Fact) RuleAt(i int) *Node {
	v, ok := f.Rules.Get(i)
	if !ok {
		return nil
	}
	return v.(*Node)
}

// reset clears resolution state back to the initial-facts assertion:
// Resolved/Value are set from isInitial (§4.5's reset operation, §8
// invariant "after reset, every Fact has Resolved == (repr ∈
// initial_facts)").
func (f *Fact) reset(isInitial bool) {
	f.Resolved = isInitial
	if isInitial {
		f.Value = trilog.True
	} else {
		f.Value = trilog.False
	}
}
