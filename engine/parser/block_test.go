package parser_test

import (
	"testing"

	"github.com/arrowcoil/trilog/engine"
	"github.com/arrowcoil/trilog/engine/parser"
	"github.com/stretchr/testify/require"
)

func TestParseBlockRejections(t *testing.T) {
	cases := []struct {
		name  string
		block string
		kind  engine.ParseKind
	}{
		{"empty parens", "()", engine.UnusedContext},
		{"trailing operator", "A+", engine.IncompleteRoot},
		{"leading operator", "+A", engine.OperatorOnEmpty},
		{"bare negation", "!", engine.IncompleteRoot},
		{"unclosed paren", "(A", engine.UnclosedContext},
		{"double binary", "A++B", engine.OperatorOnFullNode},
		{"incomplete inside context", "(A+)", engine.IncompleteInsideContext},
		{"negated empty parens", "!()", engine.UnusedContext},
		{"negated incomplete", "!(A+)", engine.IncompleteInsideContext},
		{"close on root", ")", engine.CloseOnRoot},
		{"missing operator", "ABC", engine.MissingOperator},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := engine.NewStore()
			_, err := parser.ParseBlock(store, tc.block, false)
			require.Error(t, err)
			var pe *engine.ParseError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, tc.kind, pe.Kind)
		})
	}
}

func TestParseBlockSpacesRejected(t *testing.T) {
	store := engine.NewStore()
	_, err := parser.ParseBlock(store, "A | B", false)
	require.Error(t, err)
	var pe *engine.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, engine.InvalidCharacter, pe.Kind)
}

// TestParseBlockAccepted checks not just that each block parses, but
// that it builds the precedence-correct tree shape, by comparing the
// parsed root's short-form rendering (Node.String) against the
// expected, fully-parenthesised form. A tree-shape bug (e.g. returning
// the wrong ancestor as the root after several precedence rotations)
// would still leave root non-nil, so asserting shape here — not just
// non-nilness — is what actually catches it.
func TestParseBlockAccepted(t *testing.T) {
	cases := []struct {
		block    string
		expected string
	}{
		{"A", "A"},
		{"A+B", "A + B"},
		{"(A)", "A"},
		{"!A", "!A"},
		{"!!A", "!!A"},
		{"!!!!!!!!!!!!!!!!!!!!A", "!!!!!!!!!!!!!!!!!!!!A"},
		{"!(A)", "!A"},
		{"(A+B)^C", "(A + B) ^ C"},
		{"A^B+C", "A ^ (B + C)"},
		{"A+(B+C)+D", "(A + (B + C)) + D"},
		// Three operators of three different precedence levels,
		// closing with two ancestors still unclosed on the stack:
		// the root must be the bottom-most (first-pushed) ancestor,
		// not whichever one a LIFO read of the stack happens to
		// return last.
		{"A^B|C+D", "A ^ (B | (C + D))"},
	}
	for _, tc := range cases {
		t.Run(tc.block, func(t *testing.T) {
			store := engine.NewStore()
			root, err := parser.ParseBlock(store, tc.block, false)
			require.NoError(t, err)
			require.NotNil(t, root)
			require.Equal(t, tc.expected, root.String())
		})
	}
}

func TestParseBlockDisallowedInConclusion(t *testing.T) {
	store := engine.NewStore()
	_, err := parser.ParseBlock(store, "A|B", true)
	require.Error(t, err)
	var pe *engine.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, engine.DisallowedInConclusion, pe.Kind)

	_, err = parser.ParseBlock(store, "A^B", true)
	require.Error(t, err)
	require.ErrorAs(t, err, &pe)
	require.Equal(t, engine.DisallowedInConclusion, pe.Kind)

	store2 := engine.NewStore()
	_, err = parser.ParseBlock(store2, "A+B", true)
	require.NoError(t, err)
}

func TestParseBlockSharesFactInstances(t *testing.T) {
	store := engine.NewStore()
	root, err := parser.ParseBlock(store, "A+A", false)
	require.NoError(t, err)
	facts := root.AllFacts()
	require.Len(t, facts, 2)
	require.Same(t, facts[0], facts[1])
	require.Same(t, facts[0], store.Fact('A'))
}
