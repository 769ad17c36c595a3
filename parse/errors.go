package parse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"strings"
)

// IncompleteParseError reports that no derivation covers the complete
// input. Index is the furthest input position where a terminal failed to
// match, Expected the patterns that would have been accepted there.
type IncompleteParseError struct {
	Index    int
	Expected []string
}

func (e *IncompleteParseError) Error() string {
	return fmt.Sprintf("syntax error at token %d, expected one of %s",
		e.Index, patternList(e.Expected))
}

// OutOfInputError reports that the input ended although every surviving
// derivation expected more tokens.
type OutOfInputError struct {
	Expected []string
}

func (e *OutOfInputError) Error() string {
	return fmt.Sprintf("unexpected end of input, expected one of %s",
		patternList(e.Expected))
}

// UnknownRuleError reports a reference to a rule name which is not part
// of the grammar. Dangling references are legal in a rule set and
// surface at parse time, when an engine first tries to expand them.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("grammar has no rule %q", e.Name)
}

// AmbiguousParseError reports that more than one derivation covers the
// complete input. Only the GSS engine detects this condition.
type AmbiguousParseError struct{}

func (e *AmbiguousParseError) Error() string {
	return "ambiguous parse: more than one derivation covers the input"
}

// InternalError reports a structural violation inside an engine, e.g. a
// malformed rule-expression shape. It always indicates a bug.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal: " + e.Message
}

// Internalf creates an InternalError with a formatted message.
func Internalf(format string, args ...interface{}) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

func patternList(patterns []string) string {
	if len(patterns) == 0 {
		return "{}"
	}
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}
