package parser

import (
	"strings"

	"github.com/arrowcoil/trilog/engine"
)

type lineKind int

const (
	blankLine lineKind = iota
	ruleLine
	factsLine
	queriesLine
	unknownLine
)

// classifyLine routes an already comment-stripped, trimmed line by
// syntactic shape, in the priority order of §4.1: a line containing a
// rule separator is a rule even if it starts with '=' or '?'; otherwise
// a leading '=' marks initial facts and a leading '?' marks queries.
// Any other line is unknownLine.
func classifyLine(line string) lineKind {
	if line == "" {
		return blankLine
	}
	if strings.Contains(line, "=>") || strings.Contains(line, "<=>") {
		return ruleLine
	}
	if strings.HasPrefix(line, "=") {
		return factsLine
	}
	if strings.HasPrefix(line, "?") {
		return queriesLine
	}
	return unknownLine
}

// stripComment removes everything from the first unescaped '#' to the
// end of the line (§4.1), unescaping "\#" to a literal '#'.
func stripComment(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}
		if c == '#' {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

// withLine stamps a parse/structure error with the originating
// line number, for reporting. Errors produced deeper in the block
// parser already carry column information; this only ever fills in
// Line, which those constructors cannot know.
func withLine(err error, line int) error {
	switch e := err.(type) {
	case *engine.ParseError:
		e.Line = line
		return e
	case *engine.StructureError:
		if e.Line == 0 {
			e.Line = line
		}
		return e
	default:
		return err
	}
}

// ParseConfiguration reads an entire configuration document (rules,
// then one initial-facts line, then one queries line, §4.1) and
// applies every line to store. It stops at the first error.
func ParseConfiguration(store *engine.Store, text string) error {
	seenFacts := false
	seenQueries := false

	for idx, raw := range strings.Split(text, "\n") {
		lineNo := idx + 1
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		if seenQueries {
			return &engine.StructureError{Kind: engine.QueriesNotLast, Line: lineNo}
		}

		kind := classifyLine(line)

		// Once the initial-facts line has been seen, only the queries
		// line may follow it (§4.1: initial facts come "after all
		// rules" and immediately precede the queries line) — a rule or
		// a second facts line here is out of order.
		if seenFacts && (kind == ruleLine || kind == factsLine) {
			return &engine.StructureError{Kind: engine.RuleOrFactsAfterInitialFacts, Line: lineNo}
		}

		switch kind {
		case ruleLine:
			if err := ParseRuleLine(store, line); err != nil {
				return withLine(err, lineNo)
			}

		case factsLine:
			if err := ParseInitialFactsLine(store, line); err != nil {
				return withLine(err, lineNo)
			}
			seenFacts = true

		case queriesLine:
			if !seenFacts {
				return &engine.StructureError{Kind: engine.MissingInitialFacts, Line: lineNo}
			}
			if err := ParseQueriesLine(store, line); err != nil {
				return withLine(err, lineNo)
			}
			seenQueries = true

		default:
			return &engine.ParseError{
				Kind:   engine.InvalidCharacter,
				Line:   lineNo,
				Block:  line,
				Detail: "line matches neither a rule, an initial-facts line, nor a query line",
			}
		}
	}

	if !seenFacts {
		return &engine.StructureError{Kind: engine.MissingInitialFacts}
	}
	if !seenQueries {
		return &engine.StructureError{Kind: engine.MissingQueries}
	}
	if store.Rules.Size() == 0 {
		store.Warn("no rules were loaded")
	}
	return store.Validate()
}
