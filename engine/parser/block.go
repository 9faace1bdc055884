// Package parser turns validated rule/fact/query lines into mutations
// on an engine.Store: the line classifier (§4.1), the rule splitter
// (§4.2), the precedence-aware block parser (§4.3), and the
// initial-facts/query line parsers (§4.4).
package parser

import (
	"fmt"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// validBlockChars is the character class a rule's left/right textual
// block must be restricted to after whitespace stripping (§4.2).
func validBlockChars(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c == '!' || c == '+' || c == '|' || c == '^' || c == '(' || c == ')':
		default:
			return &engine.ParseError{
				Kind:   engine.InvalidCharacter,
				Block:  s,
				Column: i + 1,
				Detail: fmt.Sprintf("character %q is not allowed", c),
			}
		}
	}
	return nil
}

// nodeStack is a thin typed wrapper over gods' array-backed stack,
// used for the ancestor-Node chain the block parser descends through
// while crossing '(' / operator-rotation boundaries (§4.3 `stack`).
type nodeStack struct {
	s *arraystack.Stack
}

func newNodeStack() *nodeStack {
	return &nodeStack{s: arraystack.New()}
}

func (ns *nodeStack) push(n *engine.Node) {
	ns.s.Push(n)
}

func (ns *nodeStack) pop() (*engine.Node, bool) {
	v, ok := ns.s.Pop()
	if !ok {
		return nil, false
	}
	return v.(*engine.Node), true
}

func (ns *nodeStack) empty() bool {
	return ns.s.Empty()
}

func (ns *nodeStack) peek() *engine.Node {
	v, ok := ns.s.Peek()
	if !ok {
		return nil
	}
	return v.(*engine.Node)
}

// bottom returns the bottom-most (first-pushed) ancestor — the true
// root of the tree when ancestors remain at end of scan (§4.3 end-of
// -scan check: "the root of the tree is the bottom-most ancestor").
// gods' arraystack.Values() reports elements top-of-stack (most
// recently pushed) first, so the bottom-most, first-pushed ancestor is
// the last entry, not the first.
func (ns *nodeStack) bottom() *engine.Node {
	values := ns.s.Values()
	if len(values) == 0 {
		return nil
	}
	return values[len(values)-1].(*engine.Node)
}

// looksEmpty reports whether n carries neither a fact nor either
// child, irrespective of whether an operator has been set on it. This
// is distinct from Node.IsEmpty (which also requires no operator) and
// matches the ')' "unused context" check of §4.3.
func looksEmpty(n *engine.Node) bool {
	return !n.HasFact() && !n.HasLeft() && !n.HasRight()
}

// ParseBlock converts a parenthesised, whitespace-free expression over
// atoms, '!', '+', '|', '^' into a Node tree, per §4.3's incremental
// shift/reduce scan with operator precedence. conclusion gates whether
// '|'/'^' are permitted (§4.3, DisallowedInConclusion).
//
// Facts referenced by atoms are resolved through store, so that every
// occurrence of the same atom shares one Fact instance (§3 invariant).
func ParseBlock(store *engine.Store, block string, conclusion bool) (*engine.Node, error) {
	openedCtx := 0
	stack := newNodeStack()
	current := engine.NewEmpty()

	fail := func(kind engine.ParseKind, col int, detail string) error {
		return &engine.ParseError{Kind: kind, Block: block, Column: col, Detail: detail}
	}

	for i := 0; i < len(block); i++ {
		c := block[i]
		col := i + 1
		switch {
		case c == '(':
			openedCtx++
			switch {
			case !current.HasLeft():
				child := engine.NewEmpty()
				current.Left = child
				stack.push(current)
				current = child
			case !current.HasRight() && current.HasOperator():
				child := engine.NewEmpty()
				current.Right = child
				stack.push(current)
				current = child
			default:
				return nil, fail(engine.UnexpectedContextOpen, col, "opening context on a full or incomplete symbol")
			}

		case c == ')':
			if stack.empty() {
				return nil, fail(engine.CloseOnRoot, col, "closing context on root symbol")
			}
			if current.HasLeft() && current.HasOperator() && !current.HasRight() {
				return nil, fail(engine.IncompleteInsideContext, col, "closing context on incomplete symbol")
			}
			if looksEmpty(current) {
				return nil, fail(engine.UnusedContext, col, "unused context")
			}
			openedCtx--
			current, _ = stack.pop()

		case c == '!':
			switch {
			case !current.HasLeft():
				child := engine.NewOperator(trilog.Not)
				current.Left = child
				stack.push(current)
				current = child
			case !current.HasRight() && current.HasOperator():
				child := engine.NewOperator(trilog.Not)
				current.Right = child
				stack.push(current)
				current = child
			default:
				return nil, fail(engine.OperatorOnFullNode, col, "! operator on a full or incomplete symbol")
			}

		case c == '+' || c == '|' || c == '^':
			if conclusion && (c == '|' || c == '^') {
				return nil, fail(engine.DisallowedInConclusion, col, "operator not allowed in a conclusion")
			}
			newOp, _ := trilog.OperatorForChar(c)
			if err := applyBinaryOperator(&current, stack, newOp, block, col); err != nil {
				return nil, err
			}

		case c >= 'A' && c <= 'Z':
			if err := applyAtom(store, &current, stack, trilog.Atom(c), block, col); err != nil {
				return nil, err
			}

		default:
			return nil, fail(engine.InvalidCharacter, col, fmt.Sprintf("character %q is not allowed", c))
		}
	}

	// §4.3 end-of-scan checks. stackEmpty mirrors the original
	// implementation's case split between a nested fragment (ancestors
	// remain) and the true top-level symbol (no ancestors remain).
	stackEmpty := stack.empty()
	nestedIncomplete := !stackEmpty && current.HasLeft() && !current.HasOperator()
	nestedEmpty := !stackEmpty && looksEmpty(current)
	rootIncomplete := stackEmpty && current.HasLeft() && !current.HasRight() && current.HasOperator()
	if nestedIncomplete || nestedEmpty || rootIncomplete {
		return nil, fail(engine.IncompleteRoot, 0, "incomplete symbol")
	}

	if openedCtx != 0 {
		return nil, fail(engine.UnclosedContext, 0, "unclosed context")
	}

	root := current
	if !stackEmpty {
		root = stack.bottom()
	}
	return root, nil
}

// applyBinaryOperator implements the '+'/'|'/'^' transition of §4.3,
// including the rotate-vs-wrap precedence decision.
func applyBinaryOperator(currentPtr **engine.Node, stack *nodeStack, newOp trilog.Operator, block string, col int) error {
	current := *currentPtr
	fail := func(kind engine.ParseKind, detail string) error {
		return &engine.ParseError{Kind: kind, Block: block, Column: col, Detail: detail}
	}

	if !current.HasOperator() {
		if !current.HasLeft() {
			if !current.HasFact() {
				return fail(engine.OperatorOnEmpty, "operator applied to an empty symbol")
			}
			leaf := engine.NewLeaf(current.Fact)
			current.Fact = nil
			current.Left = leaf
		}
		current.SetOperator(newOp)
		*currentPtr = current
		return nil
	}

	if !current.HasLeft() || !current.HasRight() {
		return fail(engine.OperatorOnFullNode, "operator applied to an already-partial symbol")
	}

	if newOp.TighterThan(current.Operator()) {
		// Rotate: descend into a fresh node that takes over
		// current's right child, binding more tightly.
		fresh := engine.NewOperator(newOp)
		fresh.Left = current.Right
		current.Right = fresh
		stack.push(current)
		*currentPtr = fresh
		return nil
	}

	// Wrap: the whole current fragment becomes the left child of a new,
	// more loosely (or equally) binding node. The ancestor, if any,
	// keeps its place on the stack — its slot is merely repointed at
	// the fresh node, mirroring the original's peek-without-pop.
	fresh := engine.NewOperator(newOp)
	fresh.Left = current
	if parent := stack.peek(); parent != nil {
		switch {
		case parent.HasRight():
			parent.Right = fresh
		case parent.HasLeft():
			parent.Left = fresh
		default:
			return fail(engine.UnexpectedContextOpen, "new nested symbol on a full operator with an empty context")
		}
	}
	*currentPtr = fresh
	return nil
}

// applyAtom implements the atom-character transition of §4.3.
func applyAtom(store *engine.Store, currentPtr **engine.Node, stack *nodeStack, atom trilog.Atom, block string, col int) error {
	current := *currentPtr
	fail := func(kind engine.ParseKind, detail string) error {
		return &engine.ParseError{Kind: kind, Block: block, Column: col, Detail: detail}
	}

	switch {
	case current.OperatorIs(trilog.Not) && !current.HasLeft():
		current.Fact = store.Fact(atom)
		if !stack.empty() {
			parent, _ := stack.pop()
			*currentPtr = parent
		}
		return nil

	case current.IsEmpty():
		current.Fact = store.Fact(atom)
		return nil

	case !current.HasLeft():
		current.Left = engine.NewLeaf(store.Fact(atom))
		return nil

	case !current.HasRight() && current.HasOperator():
		current.Right = engine.NewLeaf(store.Fact(atom))
		return nil

	case !current.HasRight():
		return fail(engine.MissingOperator, "missing operator between symbols")

	default:
		return fail(engine.Extraneous, "extraneous symbol with no operator or context to attach to")
	}
}
