package cli

import (
	"fmt"
	"strings"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
	"github.com/arrowcoil/trilog/engine/parser"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
)

// REPL is the interactive shell of §6: after a file's queries have
// been resolved, commands may rule/facts/queries-edit the loaded Store
// in place and re-run resolution, grounded on trepl.Intp's
// readline-driven loop (terex/terexlang/trepl/repl.go).
type REPL struct {
	store     *engine.Store
	rl        *readline.Instance
	visualize bool
}

// NewREPL builds a REPL over an already-loaded store.
func NewREPL(store *engine.Store, visualize bool) (*REPL, error) {
	rl, err := readline.New("trilog> ")
	if err != nil {
		return nil, fmt.Errorf("starting REPL: %w", err)
	}
	return &REPL{store: store, rl: rl, visualize: visualize}, nil
}

// Run drives the read-eval-print loop until "quit" or EOF (ctrl-D),
// mirroring trepl.Intp.REPL's loop shape.
func (r *REPL) Run() {
	pterm.Info.Println("entering interactive mode — type \"help\" for commands, \"quit\" to leave")
	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF on ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		quit, err := r.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Println("bye")
}

// Eval dispatches one REPL command line (§6): exec, show, rule <line>,
// facts <line>, queries <line>, next, visualize, help, quit.
func (r *REPL) Eval(line string) (quit bool, err error) {
	cmd, rest := splitCommand(line)
	switch cmd {
	case "quit", "exit":
		return true, nil

	case "help":
		r.help()
		return false, nil

	case "show":
		Show(r.store)
		return false, nil

	case "visualize":
		r.visualize = !r.visualize
		pterm.Info.Println(fmt.Sprintf("visualize is now %v", r.visualize))
		return false, nil

	case "exec", "next":
		if err := RunQueries(r.store, r.visualize); err != nil {
			return false, err
		}
		return false, nil

	case "rule":
		if rest == "" {
			return false, fmt.Errorf("rule requires a rule-line argument")
		}
		if err := parser.ParseRuleLine(r.store, rest); err != nil {
			return false, err
		}
		return false, nil

	case "facts":
		if rest == "" {
			return false, fmt.Errorf("facts requires a \"=ATOMS\" argument")
		}
		atoms, err := parseAtomArgument(rest, '=')
		if err != nil {
			return false, err
		}
		r.store.ReparseInitialFacts(atoms)
		return false, nil

	case "queries":
		if rest == "" {
			return false, fmt.Errorf("queries requires a \"?ATOMS\" argument")
		}
		atoms, err := parseAtomArgument(rest, '?')
		if err != nil {
			return false, err
		}
		r.store.ReparseQueries(atoms)
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (r *REPL) help() {
	pterm.Println(strings.Join([]string{
		"exec, next      resolve every loaded query and print results",
		"show            dump rules, initial facts and warnings",
		"rule <line>     parse and add one more rule",
		"facts <line>    replace the initial-facts list (\"=ABC\" form accepted)",
		"queries <line>  replace the query list (\"?ABC\" form accepted)",
		"visualize       toggle trace-tree output for subsequent exec/next",
		"help            show this text",
		"quit            leave the shell",
	}, "\n"))
}

// splitCommand splits "cmd rest of line" into its command word and the
// remaining argument text.
func splitCommand(line string) (cmd, rest string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = parts[0]
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return cmd, rest
}

// parseAtomArgument accepts either a bare atom list or one already
// prefixed with want ('=' or '?'), for the "facts"/"queries" REPL
// commands. It accepts the same blank-and-uppercase-letter mix as
// §4.4's atom-list grammar, with its own scan of the text.
func parseAtomArgument(s string, want byte) ([]trilog.Atom, error) {
	if len(s) > 0 && s[0] == want {
		s = s[1:]
	}
	var atoms []trilog.Atom
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
		case c >= 'A' && c <= 'Z':
			atoms = append(atoms, trilog.Atom(c))
		default:
			return nil, fmt.Errorf("character %q is not an uppercase letter", c)
		}
	}
	return atoms, nil
}
