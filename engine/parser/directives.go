package parser

import (
	"fmt"
	"strings"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
)

// parseAtomList reads the body of an initial-facts or query line (the
// text after the prefix character): any whitespace-and-uppercase-letter
// mix, trailing comment already stripped by the caller (§4.4). Any
// other character fails with InvalidCharacter.
func parseAtomList(body string) ([]trilog.Atom, error) {
	var atoms []trilog.Atom
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
		case c >= 'A' && c <= 'Z':
			atoms = append(atoms, trilog.Atom(c))
		default:
			return nil, &engine.ParseError{
				Kind:   engine.InvalidCharacter,
				Block:  body,
				Column: i + 1,
				Detail: fmt.Sprintf("character %q is not an uppercase letter", c),
			}
		}
	}
	return atoms, nil
}

// ParseInitialFactsLine parses a "=ABC" line (§4.4): every listed atom
// is asserted True/Resolved on the Store, with duplicates warned rather
// than rejected.
func ParseInitialFactsLine(store *engine.Store, line string) error {
	body := strings.TrimPrefix(line, "=")
	atoms, err := parseAtomList(body)
	if err != nil {
		return err
	}
	for _, a := range atoms {
		store.AssertInitial(a)
	}
	return nil
}

// ParseQueriesLine parses a "?ABC" line (§4.4): every listed atom is
// recorded as a query, with duplicates and unknown atoms warned rather
// than rejected.
func ParseQueriesLine(store *engine.Store, line string) error {
	body := strings.TrimPrefix(line, "?")
	atoms, err := parseAtomList(body)
	if err != nil {
		return err
	}
	for _, a := range atoms {
		store.AddQuery(a)
	}
	return nil
}
