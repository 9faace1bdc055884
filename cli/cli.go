package cli

import (
	"fmt"
	"os"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
	"github.com/arrowcoil/trilog/engine/parser"
	"github.com/arrowcoil/trilog/engine/resolve"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

// T traces to the global syntax tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}

// InitDisplay wires up pterm's prefixed printers the way gorgo's T.REPL
// does it, and installs a log-backed tracer if none has been installed
// yet. Called once from cmd/trilog's root command.
func InitDisplay() {
	if gtrace.SyntaxTracer == nil {
		gtrace.SyntaxTracer = gologadapter.New()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " INFO ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  " WARN ",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// LoadFile reads path and parses it into a fresh Store (§4.1's file
// grammar, via engine/parser.ParseConfiguration).
func LoadFile(path string) (*engine.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	store := engine.NewStore()
	if err := parser.ParseConfiguration(store, string(data)); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	T().Infof("loaded %s: %d rule(s), %d quer(y/ies)", path, store.Rules.Size(), store.Queries.Size())
	return store, nil
}

// ShowWarnings prints every warning collected while loading store,
// grounded on the original's show_warnings (yellow-on-red text,
// carried here as pterm.Warning).
func ShowWarnings(store *engine.Store) {
	for _, w := range store.Warnings.Values() {
		pterm.Warning.Println(w.(string))
	}
}

// ShowRules prints every loaded rule in its short source-ish form
// (Node.String), grounded on the original's show_rules.
func ShowRules(store *engine.Store) {
	for _, v := range store.Rules.Values() {
		rule := v.(*engine.Node)
		pterm.Println(rule.String())
	}
}

// ShowInitialFacts prints the declared initial-facts list, grounded on
// the original's show_initial_facts.
func ShowInitialFacts(store *engine.Store) {
	line := ""
	for _, v := range store.InitialFacts.Values() {
		line += v.(trilog.Atom).String()
	}
	pterm.Println("= " + line)
}

// Show prints the full loaded state (rules, initial facts, warnings)
// the way the REPL's "show" command and the pre-query dump do.
func Show(store *engine.Store) {
	pterm.DefaultSection.Println("rules")
	ShowRules(store)
	pterm.DefaultSection.Println("initial facts")
	ShowInitialFacts(store)
	if store.Warnings.Size() > 0 {
		pterm.DefaultSection.Println("warnings")
		ShowWarnings(store)
	}
}

// FormatTruth colours a Truth the way the original does: cyan for
// true, yellow for false, and (an addition, since the original has no
// third colour) magenta for ambiguous.
func FormatTruth(t trilog.Truth) string {
	switch t {
	case trilog.True:
		return pterm.FgCyan.Sprint(t.String())
	case trilog.False:
		return pterm.FgYellow.Sprint(t.String())
	default:
		return pterm.FgMagenta.Sprint(t.String())
	}
}

// RunQueries resolves every query recorded on store, printing one line
// per query ("<atom> <coloured truth>", §6 per-query output). When
// visualize is set, the resolution trace for each query is rendered as
// a tree (the REPL's and CLI's --visualize flag, §6). A query whose
// resolution errors prints the error next to its atom and continues
// with the rest of the batch (§7 user-visible behaviour); the returned
// error is non-nil only to signal that at least one query failed, for
// the caller's exit-status decision.
func RunQueries(store *engine.Store, visualize bool) error {
	var failed bool
	for _, v := range store.Queries.Values() {
		atom := v.(trilog.Atom)
		store.Reset()
		truth, trace, err := resolve.Resolve(store, atom)
		if err != nil {
			pterm.Error.Println(fmt.Sprintf("%s: %v", atom, err))
			failed = true
			continue
		}
		fmt.Printf("%s %s\n", atom, FormatTruth(truth))
		if visualize {
			renderTrace(atom, trace)
		}
	}
	if failed {
		return fmt.Errorf("one or more queries failed to resolve")
	}
	return nil
}

// renderTrace renders a resolution trace as a pterm tree, grounded on
// trepl's indentedListFrom/pterm.DefaultTree.WithRoot usage — one leaf
// per recorded trace line.
func renderTrace(atom trilog.Atom, trace *resolve.Trace) {
	root := pterm.TreeNode{Text: atom.String()}
	for _, line := range trace.Lines() {
		root.Children = append(root.Children, pterm.TreeNode{Text: line})
	}
	pterm.DefaultTree.WithRoot(root).Render()
}
