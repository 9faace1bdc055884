// Package resolve implements the backward-chaining resolver (§4.5): for
// a queried atom, it walks rules and facts to produce a Truth value and
// a human-readable trace, per the Fact/Node shapes built by
// engine/parser and held in an engine.Store.
package resolve

import (
	"fmt"
	"strings"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Trace is the out-parameter path described in §4.5.4: a loss-less,
// human-readable log of every Node and Fact visited while resolving one
// query. It carries no semantic weight of its own.
type Trace struct {
	lines []string
	depth int
}

func (t *Trace) add(format string, args ...interface{}) {
	indent := strings.Repeat("  ", t.depth)
	t.lines = append(t.lines, indent+fmt.Sprintf(format, args...))
}

func (t *Trace) enter(format string, args ...interface{}) {
	t.add(format, args...)
	t.depth++
}

func (t *Trace) exit() {
	if t.depth > 0 {
		t.depth--
	}
}

// String renders the trace as one line per visited Node/Fact.
func (t *Trace) String() string {
	return strings.Join(t.lines, "\n")
}

// Lines returns the recorded trace lines, one per visited Node/Fact,
// in visitation order. Used by cli's --visualize tree rendering.
func (t *Trace) Lines() []string {
	return t.lines
}

// Resolve resolves atom against store, returning its Truth and a trace
// of the resolution path. It does not reset the Store first; callers
// that want a clean slate should call store.Reset() beforehand (§5).
func Resolve(store *engine.Store, atom trilog.Atom) (trilog.Truth, *Trace, error) {
	trace := &Trace{}
	fact := store.Fact(atom)
	t, err := factResolve(fact, trace)
	if err != nil {
		store.Reset()
		return 0, trace, err
	}
	return t, trace, nil
}

// factResolve implements §4.5.1.
func factResolve(f *engine.Fact, trace *Trace) (trilog.Truth, error) {
	if f.Resolved {
		trace.add("%s: already resolved to %s", f.Repr, f.Value)
		return f.Value, nil
	}

	n := f.Rules.Size()
	if n == 0 {
		f.Value = trilog.False
		f.Resolved = true
		trace.add("%s: no rules conclude it, defaults to false", f.Repr)
		return trilog.False, nil
	}

	trace.enter("%s: trying %d rule(s)", f.Repr, n)
	defer trace.exit()

	haveCandidate := false
	var candidate trilog.Truth

	for i := 0; i < n; i++ {
		rule := f.RuleAt(i)
		isLast := i == n-1
		if rule.Visited && !isLast {
			trace.add("rule %s: skipped (already on the resolution path)", rule.String())
			continue
		}

		t, err := nodeResolve(rule, f, trace)
		if err != nil {
			if _, ok := err.(*engine.ResolutionError); ok && rule.OperatorIs(trilog.IfAndOnlyIf) {
				trace.add("rule %s: cyclical biconditional, treated as false", rule.String())
				t = trilog.False
			} else {
				return 0, err
			}
		}

		if t.IsTrue() {
			f.Value = trilog.True
			f.Resolved = true
			trace.add("%s: proved true by rule %s", f.Repr, rule.String())
			return trilog.True, nil
		}

		if !haveCandidate {
			haveCandidate = true
			candidate = t
		} else if candidate.IsAmbiguous() && t.IsFalse() {
			candidate = t
		}
	}

	if haveCandidate {
		trace.add("%s: no rule proved true, best candidate is %s", f.Repr, candidate)
		return candidate, nil
	}
	return f.Value, nil
}

// nodeResolve implements §4.5.2's rule-root dispatch together with the
// Kleene composition rules for pure-premise/conclusion subtrees, since
// the grammar guarantees Implies/IfAndOnlyIf appear only at a rule's
// own root: recursing into Left/Right of such a Node always lands on
// one of the non-root branches below.
func nodeResolve(n *engine.Node, forQuery *engine.Fact, trace *Trace) (trilog.Truth, error) {
	if n.Visited {
		return 0, &engine.ResolutionError{Atom: forQuery.Repr}
	}
	n.Visited = true
	defer func() { n.Visited = false }()

	switch {
	case n.IsRuleRoot() && n.OperatorIs(trilog.Implies):
		return resolveImplies(n, trace)

	case n.IsRuleRoot() && n.OperatorIs(trilog.IfAndOnlyIf):
		return resolveIff(n, forQuery, trace)

	case n.HasFact() && n.OperatorIs(trilog.Not):
		t, err := factResolve(n.Fact, trace)
		if err != nil {
			return 0, err
		}
		return t.Not(), nil

	case n.HasFact():
		return factResolve(n.Fact, trace)

	case n.OperatorIs(trilog.Not) && n.HasLeft():
		t, err := nodeResolve(n.Left, forQuery, trace)
		if err != nil {
			return 0, err
		}
		return t.Not(), nil

	case n.OperatorIs(trilog.And):
		lt, err := nodeResolve(n.Left, forQuery, trace)
		if err != nil {
			return 0, err
		}
		rt, err := nodeResolve(n.Right, forQuery, trace)
		if err != nil {
			return 0, err
		}
		return kleeneAnd(lt, rt), nil

	case n.OperatorIs(trilog.Or):
		lt, err := nodeResolve(n.Left, forQuery, trace)
		if err != nil {
			return 0, err
		}
		rt, err := nodeResolve(n.Right, forQuery, trace)
		if err != nil {
			return 0, err
		}
		return kleeneOr(lt, rt), nil

	case n.OperatorIs(trilog.Xor):
		lt, err := nodeResolve(n.Left, forQuery, trace)
		if err != nil {
			return 0, err
		}
		rt, err := nodeResolve(n.Right, forQuery, trace)
		if err != nil {
			return 0, err
		}
		return kleeneXor(lt, rt), nil

	case !n.HasOperator() && n.HasLeft():
		// Pure wrapper node (parenthesisation with no operator of its
		// own): delegate straight through.
		return nodeResolve(n.Left, forQuery, trace)

	default:
		return 0, &engine.EmptyNodeError{Where: "resolve"}
	}
}

// resolveImplies implements the Implies arm of §4.5.2.
func resolveImplies(n *engine.Node, trace *Trace) (trilog.Truth, error) {
	lt, err := nodeResolve(n.Left, nil, trace)
	if err != nil {
		return 0, err
	}
	if !lt.IsTrue() {
		trace.add("premise %s is %s, rule conveys nothing", n.Left.String(), lt)
		return lt, nil
	}

	var collected []*engine.Fact
	pt, err := propagate(n.Right, trilog.True, &collected, trace)
	if err != nil {
		return 0, err
	}
	applyPropagation(collected, pt)
	return pt, nil
}

// resolveIff implements the IfAndOnlyIf arm of §4.5.2.
func resolveIff(n *engine.Node, forQuery *engine.Fact, trace *Trace) (trilog.Truth, error) {
	var driveSide, targetSide *engine.Node
	if forQuery != nil && n.Left.Mentions(forQuery) {
		driveSide, targetSide = n.Right, n.Left
	} else {
		driveSide, targetSide = n.Left, n.Right
	}

	dt, err := nodeResolve(driveSide, nil, trace)
	if err != nil {
		return 0, err
	}
	if !dt.IsTrue() {
		trace.add("biconditional side %s is %s", driveSide.String(), dt)
		return dt, nil
	}

	var collected []*engine.Fact
	pt, err := propagate(targetSide, trilog.True, &collected, trace)
	if err != nil {
		return 0, err
	}
	if pt.IsTrue() {
		for _, f := range collected {
			f.Value = trilog.True
			f.Resolved = true
		}
		return trilog.True, nil
	}
	return pt, nil
}

// applyPropagation implements the per-Fact update rule named in the
// Implies arm of §4.5.2.
func applyPropagation(collected []*engine.Fact, propagated trilog.Truth) {
	for _, f := range collected {
		switch {
		case propagated.IsTrue():
			f.Value = trilog.True
			f.Resolved = true
		case !f.Resolved:
			f.Value = propagated
		case f.Value.IsAmbiguous() && propagated.IsFalse():
			f.Value = propagated
		}
	}
}

// propagate implements §4.5.3.
func propagate(n *engine.Node, result trilog.Truth, collected *[]*engine.Fact, trace *Trace) (trilog.Truth, error) {
	switch {
	case n.HasFact() && n.OperatorIs(trilog.Not):
		*collected = append(*collected, n.Fact)
		trace.add("propagate %s into %s (negated)", result, n.Fact.Repr)
		return result.Not(), nil

	case n.HasFact():
		*collected = append(*collected, n.Fact)
		trace.add("propagate %s into %s", result, n.Fact.Repr)
		return result, nil

	case n.OperatorIs(trilog.Not) && n.HasLeft():
		t, err := propagate(n.Left, result, collected, trace)
		if err != nil {
			return 0, err
		}
		return t.Not(), nil

	case n.OperatorIs(trilog.And):
		if _, err := propagate(n.Left, result, collected, trace); err != nil {
			return 0, err
		}
		if _, err := propagate(n.Right, result, collected, trace); err != nil {
			return 0, err
		}
		return result, nil

	case n.OperatorIs(trilog.Or) || n.OperatorIs(trilog.Xor):
		if _, err := propagate(n.Left, trilog.Ambiguous, collected, trace); err != nil {
			return 0, err
		}
		if _, err := propagate(n.Right, trilog.Ambiguous, collected, trace); err != nil {
			return 0, err
		}
		return trilog.Ambiguous, nil

	case n.IsRuleRoot():
		return 0, &engine.ParseError{Kind: engine.DisallowedInConclusion, Detail: "implication/biconditional cannot appear inside a conclusion"}

	case !n.HasOperator() && n.HasLeft():
		return propagate(n.Left, result, collected, trace)

	default:
		return 0, &engine.EmptyNodeError{Where: "propagate"}
	}
}

func kleeneAnd(a, b trilog.Truth) trilog.Truth {
	if a.IsTrue() && b.IsTrue() {
		return trilog.True
	}
	if a.IsAmbiguous() || b.IsAmbiguous() {
		return trilog.Ambiguous
	}
	return trilog.False
}

func kleeneOr(a, b trilog.Truth) trilog.Truth {
	if a.IsTrue() || b.IsTrue() {
		return trilog.True
	}
	if a.IsAmbiguous() || b.IsAmbiguous() {
		return trilog.Ambiguous
	}
	return trilog.False
}

func kleeneXor(a, b trilog.Truth) trilog.Truth {
	if a.IsAmbiguous() || b.IsAmbiguous() {
		return trilog.Ambiguous
	}
	if a.IsTrue() != b.IsTrue() {
		return trilog.True
	}
	return trilog.False
}
