package parser_test

import (
	"testing"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
	"github.com/arrowcoil/trilog/engine/parser"
	"github.com/stretchr/testify/require"
)

func TestParseRuleLineImplies(t *testing.T) {
	store := engine.NewStore()
	require.NoError(t, parser.ParseRuleLine(store, "A+B=>C"))
	require.Equal(t, 1, store.Rules.Size())
	c, ok := store.LookupFact('C')
	require.True(t, ok)
	require.Equal(t, 1, c.Rules.Size())
}

func TestParseRuleLineBiconditionalRegistersBothSides(t *testing.T) {
	store := engine.NewStore()
	require.NoError(t, parser.ParseRuleLine(store, "A<=>B"))
	a, _ := store.LookupFact('A')
	b, _ := store.LookupFact('B')
	require.Equal(t, 1, a.Rules.Size())
	require.Equal(t, 1, b.Rules.Size())
}

func TestParseRuleLineWhitespaceStripped(t *testing.T) {
	store := engine.NewStore()
	require.NoError(t, parser.ParseRuleLine(store, "A + B  =>  C"))
	require.Equal(t, 1, store.Rules.Size())
}

func TestParseRuleLineRejectsDisallowedConclusionOperator(t *testing.T) {
	store := engine.NewStore()
	err := parser.ParseRuleLine(store, "A=>B|C")
	require.Error(t, err)
	var pe *engine.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, engine.DisallowedInConclusion, pe.Kind)
}

func TestParseRuleLinePrefersLongBiconditionalSeparator(t *testing.T) {
	store := engine.NewStore()
	require.NoError(t, parser.ParseRuleLine(store, "A<=>B"))
	rule, ok := store.Rules.Get(0)
	require.True(t, ok)
	require.True(t, rule.(*engine.Node).OperatorIs(trilog.IfAndOnlyIf))
}

func TestParseRuleLineInvalidCharacter(t *testing.T) {
	store := engine.NewStore()
	err := parser.ParseRuleLine(store, "A.B=>C")
	require.Error(t, err)
	var pe *engine.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, engine.InvalidCharacter, pe.Kind)
}
