package parser

import (
	"strings"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/engine"
)

// splitRule finds the first "=>" or "<=>" token in line, preferring
// "<=>" wherever the two could be confused (a "=>" substring embedded
// inside a "<=>" token, §4.2 "longest-match"). It returns the trimmed
// left/right textual blocks and the separator's operator.
func splitRule(line string) (left, right string, op trilog.Operator, ok bool) {
	for i := 0; i < len(line); i++ {
		if strings.HasPrefix(line[i:], "<=>") {
			return line[:i], line[i+3:], trilog.IfAndOnlyIf, true
		}
		if strings.HasPrefix(line[i:], "=>") {
			return line[:i], line[i+2:], trilog.Implies, true
		}
	}
	return "", "", 0, false
}

// ParseRuleLine parses one rule line (§4.2): split at the first
// separator, strip whitespace from each block, validate the allowed
// character class, parse each block (the right block under the
// conclusion flag), and register the resulting rule on the Store.
func ParseRuleLine(store *engine.Store, line string) error {
	leftText, rightText, op, ok := splitRule(line)
	if !ok {
		return &engine.ParseError{Detail: "no => or <=> separator found", Block: line}
	}
	leftText = stripWhitespace(leftText)
	rightText = stripWhitespace(rightText)

	if err := validBlockChars(leftText); err != nil {
		return err
	}
	if err := validBlockChars(rightText); err != nil {
		return err
	}

	left, err := ParseBlock(store, leftText, false)
	if err != nil {
		return err
	}
	right, err := ParseBlock(store, rightText, true)
	if err != nil {
		return err
	}

	rule := engine.NewOperator(op)
	rule.Left = left
	rule.Right = right
	store.AddRule(rule)
	T().Infof("parsed rule: %s", rule.String())
	return nil
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
