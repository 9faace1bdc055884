package engine

import (
	"fmt"

	"github.com/arrowcoil/trilog"
)

// ParseKind enumerates the block-level parse failures of §4.3/§4.2.
type ParseKind int

const (
	UnexpectedContextOpen ParseKind = iota
	CloseOnRoot
	IncompleteInsideContext
	UnusedContext
	Extraneous
	UnclosedContext
	IncompleteRoot
	MissingOperator
	OperatorOnFullNode
	OperatorOnEmpty
	DisallowedInConclusion
	InvalidCharacter
)

func (k ParseKind) String() string {
	switch k {
	case UnexpectedContextOpen:
		return "UnexpectedContextOpen"
	case CloseOnRoot:
		return "CloseOnRoot"
	case IncompleteInsideContext:
		return "IncompleteInsideContext"
	case UnusedContext:
		return "UnusedContext"
	case Extraneous:
		return "Extraneous"
	case UnclosedContext:
		return "UnclosedContext"
	case IncompleteRoot:
		return "IncompleteRoot"
	case MissingOperator:
		return "MissingOperator"
	case OperatorOnFullNode:
		return "OperatorOnFullNode"
	case OperatorOnEmpty:
		return "OperatorOnEmpty"
	case DisallowedInConclusion:
		return "DisallowedInConclusion"
	case InvalidCharacter:
		return "InvalidCharacter"
	default:
		return fmt.Sprintf("ParseKind(%d)", int(k))
	}
}

// ParseError is a block-level parse failure (§7), optionally annotated
// with the line and column at which it occurred.
type ParseError struct {
	Kind   ParseKind
	Block  string
	Line   int // 1-based; 0 if unknown
	Column int // 1-based; 0 if unknown
	Detail string
}

func (e *ParseError) Error() string {
	loc := ""
	if e.Line > 0 {
		if e.Column > 0 {
			loc = fmt.Sprintf(" (line %d, column %d)", e.Line, e.Column)
		} else {
			loc = fmt.Sprintf(" (line %d)", e.Line)
		}
	}
	if e.Block != "" {
		return fmt.Sprintf("%s in block `%s`%s: %s", e.Kind, e.Block, loc, e.Detail)
	}
	return fmt.Sprintf("%s%s: %s", e.Kind, loc, e.Detail)
}

// StructureKind enumerates file-level structural failures (§7).
type StructureKind int

const (
	MissingInitialFacts StructureKind = iota
	MissingQueries
	QueriesNotLast
	RuleOrFactsAfterInitialFacts
)

func (k StructureKind) String() string {
	switch k {
	case MissingInitialFacts:
		return "MissingInitialFacts"
	case MissingQueries:
		return "MissingQueries"
	case QueriesNotLast:
		return "QueriesNotLast"
	case RuleOrFactsAfterInitialFacts:
		return "RuleOrFactsAfterInitialFacts"
	default:
		return fmt.Sprintf("StructureKind(%d)", int(k))
	}
}

// StructureError is a file-level structural failure (§7).
type StructureError struct {
	Kind StructureKind
	Line int
}

func (e *StructureError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d", e.Kind, e.Line)
	}
	return e.Kind.String()
}

// ResolutionError reports a cycle detected during resolution (§4.5.2,
// §7). It is scoped to a single query; the Store remains usable for
// further queries once cleanup has run.
type ResolutionError struct {
	Atom trilog.Atom
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("infinite rule while resolving %s", e.Atom)
}

// EmptyNodeError is defensive: a Node with neither fact, operator nor
// children should be unreachable in a well-formed tree. Seeing one
// means the parser produced (or the resolver walked into) a malformed
// subtree.
type EmptyNodeError struct {
	Where string
}

func (e *EmptyNodeError) Error() string {
	return fmt.Sprintf("empty node encountered in %s", e.Where)
}
