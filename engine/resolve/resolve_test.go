package resolve_test

import (
	"testing"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
	"github.com/arrowcoil/trilog/engine/parser"
	"github.com/arrowcoil/trilog/engine/resolve"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, text string) *engine.Store {
	t.Helper()
	store := engine.NewStore()
	require.NoError(t, parser.ParseConfiguration(store, text))
	return store
}

func resolveAtom(t *testing.T, store *engine.Store, a byte) trilog.Truth {
	t.Helper()
	truth, trace, err := resolve.Resolve(store, trilog.Atom(a))
	require.NoError(t, err)
	require.NotNil(t, trace)
	return truth
}

// Scenario 1: A => B / (no initial facts) / ?B ⇒ B = false.
func TestScenarioVacuousPremise(t *testing.T) {
	store := load(t, "A => B\n=\n?B\n")
	require.Equal(t, trilog.False, resolveAtom(t, store, 'B'))
}

// Scenario 2: A => B / =A / ?B ⇒ B = true.
func TestScenarioSimpleImplication(t *testing.T) {
	store := load(t, "A => B\n=A\n?B\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'B'))
}

// Scenario 3: A | B => C, with no/one initial fact.
func TestScenarioOrPremise(t *testing.T) {
	store := load(t, "A | B => C\n=\n?C\n")
	require.Equal(t, trilog.False, resolveAtom(t, store, 'C'))

	store = load(t, "A | B => C\n=A\n?C\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'C'))

	store = load(t, "A | B => C\n=B\n?C\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'C'))
}

// Scenario 4: A ^ B => C.
func TestScenarioXorPremise(t *testing.T) {
	store := load(t, "A ^ B => C\n=AB\n?C\n")
	require.Equal(t, trilog.False, resolveAtom(t, store, 'C'))

	store = load(t, "A ^ B => C\n=A\n?C\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'C'))

	store = load(t, "A ^ B => C\n=B\n?C\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'C'))
}

// Scenario 5: a disjunctive conclusion cannot attribute truth to a
// single disjunct.
func TestScenarioOrConclusionAmbiguous(t *testing.T) {
	store := load(t, "A => C | D\n=A\n?CD\n")
	require.Equal(t, trilog.Ambiguous, resolveAtom(t, store, 'C'))
	require.Equal(t, trilog.Ambiguous, resolveAtom(t, store, 'D'))
}

// Scenario 6: additional direct rules resolve the disjunctive
// ambiguity.
func TestScenarioOrConclusionResolvedByOtherRules(t *testing.T) {
	store := load(t, "A => C | D\nA => C\nC => D\n=A\n?CD\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'C'))
	require.Equal(t, trilog.True, resolveAtom(t, store, 'D'))
}

// Scenario 7: biconditional, with and without the driving fact.
func TestScenarioBiconditional(t *testing.T) {
	store := load(t, "A <=> B\n=A\n?AB\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'A'))
	require.Equal(t, trilog.True, resolveAtom(t, store, 'B'))

	store = load(t, "A <=> B\n=\n?AB\n")
	require.Equal(t, trilog.False, resolveAtom(t, store, 'A'))
	require.Equal(t, trilog.False, resolveAtom(t, store, 'B'))
}

// Scenario 8: a multi-stage propagation chain, all four queries true.
func TestScenarioMultiStageChain(t *testing.T) {
	text := "B=>A\nD+E=>B\nG+H=>F\nI+J=>G\nG=>H\nL+M=>K\nO+P=>L+N\nN=>M\n=DEIJOP\n?AFKP\n"
	store := load(t, text)
	require.Equal(t, trilog.True, resolveAtom(t, store, 'A'))
	require.Equal(t, trilog.True, resolveAtom(t, store, 'F'))
	require.Equal(t, trilog.True, resolveAtom(t, store, 'K'))
	// P is an initial fact, so it resolves true without needing any rule.
	require.Equal(t, trilog.True, resolveAtom(t, store, 'P'))
}

// The negation law of §8: !!B resolves identically to B.
func TestNegationLaw(t *testing.T) {
	store := load(t, "A => !!B\n=A\n?B\n")
	require.Equal(t, trilog.True, resolveAtom(t, store, 'B'))
}

// Idempotence law of §8: reset; resolve(q) equals
// reset; resolve(q); reset; resolve(q).
func TestIdempotence(t *testing.T) {
	store := load(t, "A => B\n=A\n?B\n")
	store.Reset()
	first := resolveAtom(t, store, 'B')
	store.Reset()
	resolveAtom(t, store, 'B')
	store.Reset()
	second := resolveAtom(t, store, 'B')
	require.Equal(t, first, second)
}

// A cyclical biconditional chain must not hang and must report a
// stable, non-crashing result (§4.5.1's InfiniteRule-as-false policy
// for IfAndOnlyIf).
func TestCyclicalBiconditionalDoesNotHang(t *testing.T) {
	store := load(t, "A <=> B\nB <=> A\n=\n?AB\n")
	require.Equal(t, trilog.False, resolveAtom(t, store, 'A'))
	require.Equal(t, trilog.False, resolveAtom(t, store, 'B'))
}

// A rule set with a genuine premise cycle through Implies surfaces an
// InfiniteRule error rather than looping forever.
func TestImpliesCycleFails(t *testing.T) {
	store := load(t, "A => B\nB => A\n=\n?A\n")
	_, _, err := resolve.Resolve(store, trilog.Atom('A'))
	require.Error(t, err)
	var resErr *engine.ResolutionError
	require.ErrorAs(t, err, &resErr)
}
