package engine

import (
	"fmt"

	"github.com/arrowcoil/trilog"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Store holds everything parsed from a configuration: the fact table,
// the ordered rule list, the initial facts, the queries, and
// diagnostic warnings (§3). It exposes the parse entry points used by
// engine/parser and the reset operation used between resolutions.
type Store struct {
	facts map[trilog.Atom]*Fact

	Rules        *arraylist.List // of *Node (rule roots), parse order
	InitialFacts *arraylist.List // of trilog.Atom, declaration order
	Queries      *arraylist.List // of trilog.Atom, declaration order
	Warnings     *arraylist.List // of string, emission order
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		facts:        make(map[trilog.Atom]*Fact),
		Rules:        arraylist.New(),
		InitialFacts: arraylist.New(),
		Queries:      arraylist.New(),
		Warnings:     arraylist.New(),
	}
}

// Fact returns the atom's Fact, creating it lazily if this is its
// first sighting (§3 lifecycle). Facts persist for the Store's
// lifetime once created.
func (s *Store) Fact(a trilog.Atom) *Fact {
	if f, ok := s.facts[a]; ok {
		return f
	}
	f := newFact(a)
	s.facts[a] = f
	return f
}

// LookupFact returns the atom's Fact without creating one.
func (s *Store) LookupFact(a trilog.Atom) (*Fact, bool) {
	f, ok := s.facts[a]
	return f, ok
}

// Facts returns every Fact currently known to the store, in no
// particular order.
func (s *Store) Facts() []*Fact {
	out := make([]*Fact, 0, len(s.facts))
	for _, f := range s.facts {
		out = append(out, f)
	}
	return out
}

// AddRule appends a parsed rule root to Rules and registers it on
// every Fact its conclusion mentions: the right-hand side always, and
// for IfAndOnlyIf rules, the left-hand side too (§4.2).
func (s *Store) AddRule(rule *Node) {
	s.Rules.Add(rule)
	seen := make(map[*Fact]bool)
	registerAll := func(subtree *Node) {
		for _, f := range subtree.AllFacts() {
			if !seen[f] {
				seen[f] = true
				f.register(rule)
			}
		}
	}
	registerAll(rule.Right)
	if rule.OperatorIs(trilog.IfAndOnlyIf) {
		registerAll(rule.Left)
	}
}

// Warn appends a diagnostic warning. Warnings never fail a parse (§7).
func (s *Store) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.Warnings.Add(msg)
	T().Infof("warning: %s", msg)
}

// AssertInitial records atom as an initial fact: it is appended to
// InitialFacts (unless already present, which only emits a warning)
// and its Fact is set True/Resolved (§4.4).
func (s *Store) AssertInitial(a trilog.Atom) {
	for _, v := range s.InitialFacts.Values() {
		if v.(trilog.Atom) == a {
			s.Warn("duplicate initial fact for symbol %s", a)
			return
		}
	}
	s.InitialFacts.Add(a)
	f := s.Fact(a)
	f.Value = trilog.True
	f.Resolved = true
}

// AddQuery records atom as a query. Duplicates warn rather than fail;
// an atom never seen by a rule or initial fact is still added to the
// fact table (as an unresolved Fact) and warns (§4.4).
func (s *Store) AddQuery(a trilog.Atom) {
	for _, v := range s.Queries.Values() {
		if v.(trilog.Atom) == a {
			s.Warn("duplicate query for symbol %s", a)
			return
		}
	}
	s.Queries.Add(a)
	if _, known := s.LookupFact(a); !known {
		s.Warn("query for unknown symbol %s", a)
		s.Fact(a) // register it anyway, so resolution has something to walk
	}
}

// ReparseInitialFacts clears InitialFacts and the collected warnings,
// then re-applies the given atoms (§4.4 reparse_initial_facts). It does
// not touch Queries or Rules.
func (s *Store) ReparseInitialFacts(atoms []trilog.Atom) {
	s.InitialFacts.Clear()
	s.Warnings.Clear()
	for f := range s.facts {
		s.facts[f].Resolved = false
		s.facts[f].Value = trilog.False
	}
	for _, a := range atoms {
		s.AssertInitial(a)
	}
}

// ReparseQueries clears Queries and re-applies the given atoms (§4.4
// reparse_queries).
func (s *Store) ReparseQueries(atoms []trilog.Atom) {
	s.Queries.Clear()
	for _, a := range atoms {
		s.AddQuery(a)
	}
}

// Reset clears all Fact resolution state back to the initial-facts
// assertion and clears every rule's Visited flag, enabling repeated
// queries (§3 lifecycle, §5 shared-resource policy, §8 invariant).
func (s *Store) Reset() {
	initial := make(map[trilog.Atom]bool)
	for _, v := range s.InitialFacts.Values() {
		initial[v.(trilog.Atom)] = true
	}
	for a, f := range s.facts {
		f.reset(initial[a])
	}
	s.cleanupVisited()
}

// cleanupVisited walks every rule root and clears Visited on every
// reachable Node. It is the recovery walk named in §5: if an error
// short-circuits a resolution mid-way, Visited flags may be left set;
// this restores the invariant.
func (s *Store) cleanupVisited() {
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		n.Visited = false
		walk(n.Left)
		walk(n.Right)
	}
	for _, v := range s.Rules.Values() {
		walk(v.(*Node))
	}
}

// Validate runs the rule-set-level checks of SPEC_FULL.md's
// supplemented-features section: a rule that is trivially
// self-referential (the same atom appears on both the premise and the
// conclusion of the very same rule) is rejected; a rule whose
// conclusion contains Or only warns ("ambiguous rule"), since the
// resolver can still prove such a conclusion true or false depending
// on other rules (§4.5.3, scenario 6). This is a diagnostic pre-pass,
// not a substitute for the resolver's general multi-rule cycle guard
// (§4.5.2).
func (s *Store) Validate() error {
	for _, v := range s.Rules.Values() {
		rule := v.(*Node)
		if ruleIsSelfReferential(rule) {
			return fmt.Errorf("rule %q is infinite", rule.String())
		}
		if ruleHasOr(rule) {
			s.Warn("rule %q is ambiguous", rule.String())
		}
	}
	s.warnUnusedInitialFacts()
	return nil
}

// warnUnusedInitialFacts implements §4.4's "initial facts referencing
// an unused atom emit a warning": an atom asserted in the initial
// -facts line that no rule mentions anywhere (premise or conclusion)
// contributes nothing to any query.
func (s *Store) warnUnusedInitialFacts() {
	mentioned := make(map[*Fact]bool)
	for _, v := range s.Rules.Values() {
		rule := v.(*Node)
		for _, f := range rule.AllFacts() {
			mentioned[f] = true
		}
	}
	for _, v := range s.InitialFacts.Values() {
		a := v.(trilog.Atom)
		f, ok := s.LookupFact(a)
		if ok && !mentioned[f] {
			s.Warn("initial fact %s is not used by any rule", a)
		}
	}
}

func ruleIsSelfReferential(rule *Node) bool {
	left := factSet(rule.Left)
	for _, f := range rule.Right.AllFacts() {
		if left[f] {
			return true
		}
	}
	return false
}

func factSet(n *Node) map[*Fact]bool {
	set := make(map[*Fact]bool)
	for _, f := range n.AllFacts() {
		set[f] = true
	}
	return set
}

func ruleHasOr(rule *Node) bool {
	if nodeHasOperator(rule.Right, trilog.Or) {
		return true
	}
	if rule.OperatorIs(trilog.IfAndOnlyIf) && nodeHasOperator(rule.Left, trilog.Or) {
		return true
	}
	return false
}

func nodeHasOperator(n *Node, op trilog.Operator) bool {
	if n == nil {
		return false
	}
	if n.OperatorIs(op) {
		return true
	}
	return nodeHasOperator(n.Left, op) || nodeHasOperator(n.Right, op)
}
