package engine

import (
	"strings"

	"github.com/arrowcoil/trilog"
)

// Node is a binary expression-tree element: either a leaf referencing
// a Fact, a unary negation, or a binary operator with left/right
// children. A rule root is a Binary Node whose Operator is Implies or
// IfAndOnlyIf (§3).
type Node struct {
	// Visited is an interior flag used by the resolver for cycle
	// detection (§4.5.2). It must be false whenever no resolution of
	// this Node is currently on the call stack.
	Visited bool

	Fact *Fact // set for a leaf node

	Left  *Node
	Right *Node

	hasOperator bool
	operator    trilog.Operator
}

// NewLeaf creates a leaf Node referencing fact.
func NewLeaf(fact *Fact) *Node {
	return &Node{Fact: fact}
}

// NewOperator creates an empty Node with its Operator already set —
// used while a rule is still being assembled (see engine/parser).
func NewOperator(op trilog.Operator) *Node {
	return &Node{hasOperator: true, operator: op}
}

// NewEmpty creates an entirely empty Node (no fact, no operator, no
// children). This is the "current" node during block parsing before
// anything has been installed into it.
func NewEmpty() *Node {
	return &Node{}
}

// HasFact reports whether n is a leaf node.
func (n *Node) HasFact() bool { return n.Fact != nil }

// HasLeft reports whether n.Left is set.
func (n *Node) HasLeft() bool { return n.Left != nil }

// HasRight reports whether n.Right is set.
func (n *Node) HasRight() bool { return n.Right != nil }

// HasOperator reports whether n carries an Operator.
func (n *Node) HasOperator() bool { return n.hasOperator }

// Operator returns n's operator. Only valid when HasOperator() is
// true.
func (n *Node) Operator() trilog.Operator { return n.operator }

// SetOperator installs op as n's operator.
func (n *Node) SetOperator(op trilog.Operator) {
	n.hasOperator = true
	n.operator = op
}

// OperatorIs reports whether n carries exactly op.
func (n *Node) OperatorIs(op trilog.Operator) bool {
	return n.hasOperator && n.operator == op
}

// IsEmpty reports whether n has neither fact, operator, nor children —
// the defensive EmptyNode case of §7, which should be unreachable in a
// well-formed tree.
func (n *Node) IsEmpty() bool {
	return n.Fact == nil && !n.hasOperator && n.Left == nil && n.Right == nil
}

// IsRuleRoot reports whether n is a valid rule root: a binary node
// with both children and an Implies/IfAndOnlyIf operator.
func (n *Node) IsRuleRoot() bool {
	return n.hasOperator && n.operator.IsRuleRoot() && n.Left != nil && n.Right != nil
}

// AllFacts collects every Fact reachable from n, in left-to-right,
// pre-order traversal. Duplicates are preserved (a rule mentioning the
// same atom twice yields it twice); callers that need a set should
// dedupe by Fact pointer identity.
func (n *Node) AllFacts() []*Fact {
	var facts []*Fact
	var walk func(*Node)
	walk = func(m *Node) {
		if m == nil {
			return
		}
		if m.Fact != nil {
			facts = append(facts, m.Fact)
		}
		walk(m.Left)
		walk(m.Right)
	}
	walk(n)
	return facts
}

// Mentions reports whether n's subtree contains a leaf referencing
// fact.
func (n *Node) Mentions(fact *Fact) bool {
	if n == nil {
		return false
	}
	if n.Fact == fact {
		return true
	}
	return n.Left.Mentions(fact) || n.Right.Mentions(fact)
}

// String renders n back out in source-ish short form (e.g. "A + B"),
// used for warnings and --visualize output. Grounded on the original
// implementation's Node::print_short / Display impl.
func (n *Node) String() string {
	var b strings.Builder
	n.writeShort(&b, true)
	return b.String()
}

func (n *Node) writeShort(b *strings.Builder, isRoot bool) {
	switch {
	case n == nil:
		return
	case n.HasFact():
		if n.OperatorIs(trilog.Not) {
			b.WriteByte('!')
		}
		b.WriteString(n.Fact.Repr.String())
	case n.hasOperator:
		wrap := !isRoot && n.operator != trilog.Not && n.operator != trilog.Implies && n.operator != trilog.IfAndOnlyIf
		if wrap {
			b.WriteByte('(')
		}
		if n.operator == trilog.Not {
			b.WriteByte('!')
			n.Left.writeShort(b, false)
		} else {
			n.Left.writeShort(b, false)
			b.WriteByte(' ')
			b.WriteString(n.operator.String())
			if n.Right != nil {
				b.WriteByte(' ')
				n.Right.writeShort(b, false)
			}
		}
		if wrap {
			b.WriteByte(')')
		}
	default:
		n.Left.writeShort(b, isRoot)
		if n.Right != nil {
			b.WriteByte(' ')
			n.Right.writeShort(b, isRoot)
		}
	}
}
